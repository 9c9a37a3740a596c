package lut

import (
	"fmt"
	"sync/atomic"

	"github.com/kovidgoyal/go-parallel"
	"github.com/kovidgoyal/rgb2spec"
	"github.com/kovidgoyal/rgb2spec/colorimetry"
)

// Progress is called from worker goroutines after every completed row of
// the table, with the number of rows done and the total number of rows.
type Progress func(done, total int)

// Bake computes a table of resolution res for colourspace cs by running the
// solver at every grid point. The value axis is sampled at
// rgb2spec.LightnessScale(res). Along it, every row of the table is solved
// from a fifth of the way up, first upwards and then downwards, with each
// solution seeding the search at the next sample. Rows are solved in
// parallel. progress may be nil.
func Bake(s *rgb2spec.Solver, cs *colorimetry.RGBColourspace, res int, progress Progress) (*Interpolator, error) {
	if res < 2 || res > MaxResolution {
		return nil, fmt.Errorf("%w: %d", ErrBadResolution, res)
	}
	scale := rgb2spec.LightnessScale(res)
	t := &Interpolator{res: res, scale: make([]float32, res), coeffs: make([]float32, num_values(res))}
	for i, v := range scale {
		t.scale[i] = float32(v)
	}
	shape := s.Shape()
	total := 3 * res
	var done atomic.Int64
	solve := func(l, k, a2, a3 int, seed rgb2spec.Coefficients) rgb2spec.Coefficients {
		z := scale[k]
		var rgb colorimetry.Vec3
		rgb[l] = z
		rgb[(l+2)%3] = float64(a2) / float64(res-1) * z
		rgb[(l+1)%3] = float64(a3) / float64(res-1) * z
		c, _ := s.FindCoefficients(rgb, cs, rgb2spec.UseFeedback(false), rgb2spec.Dimensionalise(false), rgb2spec.InitialCoefficients(seed))
		d := rgb2spec.DimensionaliseCoefficients(c, shape)
		off := t.offset(l, k, a2, a3)
		for i, v := range d {
			t.coeffs[off+i] = float32(v)
		}
		return c
	}
	start := res / 5
	err := parallel.Run_in_parallel_over_range(0, func(first, limit int) {
		for row := first; row < limit; row++ {
			l, a2 := row/res, row%res
			for a3 := range res {
				var c rgb2spec.Coefficients
				for k := start; k < res; k++ {
					c = solve(l, k, a2, a3, c)
				}
				c = rgb2spec.Coefficients{}
				for k := start; k >= 0; k-- {
					c = solve(l, k, a2, a3, c)
				}
			}
			n := done.Add(1)
			if progress != nil {
				progress(int(n), total)
			}
		}
	}, 0, total)
	if err != nil {
		return nil, fmt.Errorf("baking coefficient table failed: %w", err)
	}
	return t, nil
}
