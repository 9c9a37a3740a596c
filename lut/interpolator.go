package lut

import (
	"fmt"

	"github.com/kovidgoyal/go-parallel"
	"github.com/kovidgoyal/rgb2spec"
	"github.com/kovidgoyal/rgb2spec/colorimetry"
)

// Coefficients returns the interpolated dimensionful model coefficients
// for the linear rgb colour the table was baked for. Coordinates outside
// the table are clamped to its edges.
func (t *Interpolator) Coefficients(rgb colorimetry.Vec3) rgb2spec.Coefficients {
	imax, value, x, y := Coordinates(rgb)
	return rgb2spec.Coefficients(t.trilinear(imax, value, x, y))
}

// ToSpectrum returns the reflectance of rgb sampled over shape.
func (t *Interpolator) ToSpectrum(rgb colorimetry.Vec3, shape colorimetry.SpectralShape) *colorimetry.SpectralDistribution {
	sd := rgb2spec.Model(t.Coefficients(rgb), shape)
	sd.Name = fmt.Sprintf("%v (interpolated)", [3]float64(rgb))
	return sd
}

// CoefficientsBatch runs Coefficients for every colour, in parallel.
func (t *Interpolator) CoefficientsBatch(rgbs []colorimetry.Vec3) ([]rgb2spec.Coefficients, error) {
	ans := make([]rgb2spec.Coefficients, len(rgbs))
	err := parallel.Run_in_parallel_over_range(0, func(start, limit int) {
		for i := start; i < limit; i++ {
			ans[i] = t.Coefficients(rgbs[i])
		}
	}, 0, len(rgbs))
	if err != nil {
		return nil, fmt.Errorf("batch lookup failed: %w", err)
	}
	return ans, nil
}

// ToSpectrumBatch runs ToSpectrum for every colour, in parallel.
func (t *Interpolator) ToSpectrumBatch(rgbs []colorimetry.Vec3, shape colorimetry.SpectralShape) ([]*colorimetry.SpectralDistribution, error) {
	ans := make([]*colorimetry.SpectralDistribution, len(rgbs))
	err := parallel.Run_in_parallel_over_range(0, func(start, limit int) {
		for i := start; i < limit; i++ {
			ans[i] = t.ToSpectrum(rgbs[i], shape)
		}
	}, 0, len(rgbs))
	if err != nil {
		return nil, fmt.Errorf("batch lookup failed: %w", err)
	}
	return ans, nil
}
