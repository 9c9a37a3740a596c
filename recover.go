package rgb2spec

import (
	"fmt"
	"slices"

	"github.com/kovidgoyal/go-parallel"
	"github.com/kovidgoyal/rgb2spec/colorimetry"
)

var _ = fmt.Print

// Recover returns the reflectance reproducing the linear rgb colour of cs,
// sampled over the CMFS shape, along with the achieved colour difference.
// Dimensionalise options are ignored, the coefficients of the returned
// distribution are always in nanometers.
func (s *Solver) Recover(rgb colorimetry.Vec3, cs *colorimetry.RGBColourspace, opts ...Option) (*colorimetry.SpectralDistribution, float64) {
	c, e := s.FindCoefficients(rgb, cs, append(slices.Clip(opts), Dimensionalise(true))...)
	sd := Model(c, s.Shape())
	sd.Name = fmt.Sprintf("%s - %v", cs.Name, [3]float64(rgb))
	return sd, e
}

// RecoverBatch runs Recover for every colour, in parallel. Results are in
// input order.
func (s *Solver) RecoverBatch(rgbs []colorimetry.Vec3, cs *colorimetry.RGBColourspace, opts ...Option) (sds []*colorimetry.SpectralDistribution, deltas []float64, err error) {
	sds = make([]*colorimetry.SpectralDistribution, len(rgbs))
	deltas = make([]float64, len(rgbs))
	err = parallel.Run_in_parallel_over_range(0, func(start, limit int) {
		for i := start; i < limit; i++ {
			sds[i], deltas[i] = s.Recover(rgbs[i], cs, opts...)
		}
	}, 0, len(rgbs))
	if err != nil {
		return nil, nil, fmt.Errorf("batch recovery failed: %w", err)
	}
	return
}

// FindCoefficients is a shortcut for creating a Solver and calling its
// FindCoefficients method once.
func FindCoefficients(rgb colorimetry.Vec3, cs *colorimetry.RGBColourspace, cmfs *colorimetry.CMFS, illuminant *colorimetry.SpectralDistribution, opts ...Option) (Coefficients, float64, error) {
	s, err := NewSolver(cmfs, illuminant, nil)
	if err != nil {
		return Coefficients{}, 0, err
	}
	c, e := s.FindCoefficients(rgb, cs, opts...)
	return c, e, nil
}

// Recover is a shortcut for creating a Solver and calling its Recover
// method once.
func Recover(rgb colorimetry.Vec3, cs *colorimetry.RGBColourspace, cmfs *colorimetry.CMFS, illuminant *colorimetry.SpectralDistribution, opts ...Option) (*colorimetry.SpectralDistribution, float64, error) {
	s, err := NewSolver(cmfs, illuminant, nil)
	if err != nil {
		return nil, 0, err
	}
	sd, e := s.Recover(rgb, cs, opts...)
	return sd, e, nil
}
