package rgb2spec

import (
	"fmt"
	"math"

	"github.com/kovidgoyal/rgb2spec/colorimetry"
)

var _ = fmt.Print

// Coefficients parametrise one reflectance curve, see Model.
type Coefficients [3]float64

func (c Coefficients) String() string {
	return fmt.Sprintf("[%g %g %g]", c[0], c[1], c[2])
}

// DefaultShape is the wavelength range used when none is specified.
var DefaultShape = colorimetry.DefaultShape

// Reflectance evaluates the model at wavelength wl:
//
//	U = c0·wl² + c1·wl + c2
//	R = 1/2 + U / (2·sqrt(1 + U²))
func (c Coefficients) Reflectance(wl float64) float64 {
	u := (c[0]*wl+c[1])*wl + c[2]
	return 0.5 + u/(2*math.Sqrt(1+u*u))
}

// Model returns the reflectance described by dimensionful coefficients c,
// sampled over shape. Every value lies in (0, 1).
func Model(c Coefficients, shape colorimetry.SpectralShape) *colorimetry.SpectralDistribution {
	wl := shape.Range()
	values := make([]float64, len(wl))
	for i, w := range wl {
		values[i] = c.Reflectance(w)
	}
	return &colorimetry.SpectralDistribution{Name: c.String() + " (coefficients)", Shape: shape, Values: values}
}

// DimensionaliseCoefficients converts coefficients fitted on wavelengths
// normalised to [0, 1] into coefficients for wavelengths in nanometers over
// shape, with units of 1/nm², 1/nm and 1. It substitutes
// (wl - Start)/(End - Start) for the normalised wavelength.
func DimensionaliseCoefficients(c Coefficients, shape colorimetry.SpectralShape) Coefficients {
	span := shape.Span()
	start := shape.Start
	return Coefficients{
		c[0] / (span * span),
		c[1]/span - 2*c[0]*start/(span*span),
		c[0]*start*start/(span*span) - c[1]*start/span + c[2],
	}
}

func smoothstep(x float64) float64 { return x * x * (3 - 2*x) }

// LightnessScale returns steps values in [0, 1], from 0 to 1 inclusive,
// that are spaced more tightly near the ends than in the middle. It is the
// double smoothstep of a linear ramp.
func LightnessScale(steps int) []float64 {
	ans := make([]float64, max(steps, 0))
	if steps == 1 {
		return ans
	}
	for i := range ans {
		ans[i] = smoothstep(smoothstep(float64(i) / float64(steps-1)))
	}
	return ans
}
