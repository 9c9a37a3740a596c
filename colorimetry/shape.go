package colorimetry

import (
	"errors"
	"fmt"
	"math"
)

var _ = fmt.Print

var ErrInvalidShape = errors.New("invalid spectral shape")

// SpectralShape describes a uniform wavelength sampling in nanometers. The
// zero value is not a valid shape, use NewSpectralShape or one of the
// predefined shapes.
type SpectralShape struct {
	Start, End, Interval float64
}

// NewSpectralShape returns the shape sampling [start, end] every interval
// nanometers. It fails unless start < end and interval > 0.
func NewSpectralShape(start, end, interval float64) (SpectralShape, error) {
	if !(start < end) || !(interval > 0) || math.IsInf(end-start, 0) {
		return SpectralShape{}, fmt.Errorf("%w: start=%v end=%v interval=%v", ErrInvalidShape, start, end, interval)
	}
	return SpectralShape{Start: start, End: end, Interval: interval}, nil
}

func (s SpectralShape) String() string {
	return fmt.Sprintf("SpectralShape(%v, %v, %v)", s.Start, s.End, s.Interval)
}

// Len is the number of wavelength samples in the shape.
func (s SpectralShape) Len() int {
	return int(math.Round((s.End-s.Start)/s.Interval)) + 1
}

// Range returns the wavelength samples of the shape, in increasing order.
func (s SpectralShape) Range() []float64 {
	ans := make([]float64, s.Len())
	for i := range ans {
		ans[i] = s.Start + float64(i)*s.Interval
	}
	return ans
}

// Span is End - Start.
func (s SpectralShape) Span() float64 { return s.End - s.Start }

func (s SpectralShape) Equal(o SpectralShape) bool {
	return s.Start == o.Start && s.End == o.End && s.Interval == o.Interval
}
