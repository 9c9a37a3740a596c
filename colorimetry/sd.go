package colorimetry

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/interp"
)

var _ = fmt.Print

// SpectralDistribution is a single valued function of wavelength sampled
// over a SpectralShape. Values[i] is the value at Shape.Range()[i].
type SpectralDistribution struct {
	Name   string
	Shape  SpectralShape
	Values []float64
}

// NewSpectralDistribution wraps values sampled over shape. The number of
// values must match the number of samples in the shape.
func NewSpectralDistribution(name string, shape SpectralShape, values []float64) (*SpectralDistribution, error) {
	if len(values) != shape.Len() {
		return nil, fmt.Errorf("spectral distribution %q has %d values but %s has %d samples", name, len(values), shape, shape.Len())
	}
	return &SpectralDistribution{Name: name, Shape: shape, Values: values}, nil
}

func (sd *SpectralDistribution) String() string {
	return fmt.Sprintf("SpectralDistribution{%q %s}", sd.Name, sd.Shape)
}

func (sd *SpectralDistribution) Wavelengths() []float64 { return sd.Shape.Range() }

func (sd *SpectralDistribution) Copy() *SpectralDistribution {
	return &SpectralDistribution{Name: sd.Name, Shape: sd.Shape, Values: slices.Clone(sd.Values)}
}

// Align returns a copy of sd resampled onto shape. Samples inside the
// original range are interpolated linearly, samples outside it take the
// value of the nearest end.
func (sd *SpectralDistribution) Align(shape SpectralShape) (*SpectralDistribution, error) {
	if sd.Shape.Equal(shape) {
		return sd.Copy(), nil
	}
	values, err := resample(sd.Shape.Range(), sd.Values, shape.Range())
	if err != nil {
		return nil, fmt.Errorf("cannot align %q to %s: %w", sd.Name, shape, err)
	}
	return &SpectralDistribution{Name: sd.Name, Shape: shape, Values: values}, nil
}

// CMFS holds the three colour matching functions of a standard observer
// sampled over a common shape.
type CMFS struct {
	Name   string
	Shape  SpectralShape
	Values [][3]float64
}

func (c *CMFS) String() string {
	return fmt.Sprintf("CMFS{%q %s}", c.Name, c.Shape)
}

func (c *CMFS) Wavelengths() []float64 { return c.Shape.Range() }

func (c *CMFS) Copy() *CMFS {
	return &CMFS{Name: c.Name, Shape: c.Shape, Values: slices.Clone(c.Values)}
}

// Channel returns a copy of one of the x̄, ȳ, z̄ functions.
func (c *CMFS) Channel(i int) []float64 {
	ans := make([]float64, len(c.Values))
	for j, v := range c.Values {
		ans[j] = v[i]
	}
	return ans
}

// Align returns a copy of the CMFS resampled onto shape, see
// SpectralDistribution.Align.
func (c *CMFS) Align(shape SpectralShape) (*CMFS, error) {
	if c.Shape.Equal(shape) {
		return c.Copy(), nil
	}
	xs, ws := c.Shape.Range(), shape.Range()
	ans := &CMFS{Name: c.Name, Shape: shape, Values: make([][3]float64, len(ws))}
	for i := range 3 {
		values, err := resample(xs, c.Channel(i), ws)
		if err != nil {
			return nil, fmt.Errorf("cannot align %q to %s: %w", c.Name, shape, err)
		}
		for j, v := range values {
			ans.Values[j][i] = v
		}
	}
	return ans, nil
}

func resample(xs, ys, at []float64) ([]float64, error) {
	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return nil, err
	}
	ans := make([]float64, len(at))
	for i, x := range at {
		ans[i] = pl.Predict(x)
	}
	return ans, nil
}
