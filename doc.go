/*
Package rgb2spec recovers smooth reflectance spectra from RGB colours.

Reflectances are described by three coefficients of a sigmoid of a
quadratic polynomial in wavelength. The coefficients for a colour are found
by minimising the CIE 1976 colour difference between the colour of the
modelled spectrum under an illuminant and the target colour, see Solver.
The lut sub-package caches solver output in a 4D table for fast lookups.
*/
package rgb2spec

import "fmt"

type LibraryVersion struct {
	Major, Minor, Patch uint
}

func (v LibraryVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

var Version = LibraryVersion{0, 3, 0}
