package colorimetry

import (
	"fmt"
)

var _ = fmt.Print

// SDToXYZ integrates the reflectance sd lit by illuminant against cmfs. The
// result is scaled so that a perfect reflector has Y = 1. The illuminant
// and reflectance are aligned to the CMFS shape if needed.
func SDToXYZ(sd *SpectralDistribution, cmfs *CMFS, illuminant *SpectralDistribution) (Vec3, error) {
	var err error
	if !sd.Shape.Equal(cmfs.Shape) {
		if sd, err = sd.Align(cmfs.Shape); err != nil {
			return Vec3{}, err
		}
	}
	if !illuminant.Shape.Equal(cmfs.Shape) {
		if illuminant, err = illuminant.Align(cmfs.Shape); err != nil {
			return Vec3{}, err
		}
	}
	var xyz Vec3
	k := 0.0
	for i, c := range cmfs.Values {
		s := illuminant.Values[i]
		r := sd.Values[i]
		k += c[1] * s
		xyz[0] += c[0] * s * r
		xyz[1] += c[1] * s * r
		xyz[2] += c[2] * s * r
	}
	if k == 0 {
		return Vec3{}, fmt.Errorf("illuminant %q has no luminance under %q", illuminant.Name, cmfs.Name)
	}
	return xyz.Scale(1 / k), nil
}

// IlluminantXYZ returns the tristimulus values of the light source
// illuminant itself, normalised so that Y = 1. The shapes must match.
func IlluminantXYZ(cmfs *CMFS, illuminant *SpectralDistribution) (Vec3, error) {
	if !illuminant.Shape.Equal(cmfs.Shape) {
		return Vec3{}, fmt.Errorf("illuminant %s does not match CMFS %s", illuminant.Shape, cmfs.Shape)
	}
	var xyz Vec3
	for i, c := range cmfs.Values {
		s := illuminant.Values[i]
		xyz[0] += c[0] * s
		xyz[1] += c[1] * s
		xyz[2] += c[2] * s
	}
	if xyz[1] == 0 {
		return Vec3{}, fmt.Errorf("illuminant %q has no luminance under %q", illuminant.Name, cmfs.Name)
	}
	return xyz.Scale(1 / xyz[1]), nil
}
