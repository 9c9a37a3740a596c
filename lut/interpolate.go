package lut

import (
	"fmt"
	"sort"

	"github.com/kovidgoyal/rgb2spec/colorimetry"
)

var _ = fmt.Print

// Added to the dominant channel before dividing by it, so that black does
// not divide by zero.
const chromaEpsilon = 1e-10

// Coordinates maps rgb to the table coordinates used for lookup: the index
// of the largest channel, its value and the ratios of the two other
// channels to it. The ratios are taken in the order (imax+2)%3,
// (imax+1)%3. Ties pick the lowest index.
func Coordinates(rgb colorimetry.Vec3) (imax int, value, x, y float64) {
	for i := 1; i < 3; i++ {
		if rgb[i] > rgb[imax] {
			imax = i
		}
	}
	value = rgb[imax]
	d := value + chromaEpsilon
	return imax, value, rgb[(imax+2)%3] / d, rgb[(imax+1)%3] / d
}

// uniform_cell returns the lower grid index and the weight of the upper
// grid point for x sampled at res points evenly spaced over [0, 1]. Values
// outside [0, 1] are clamped, NaN maps to 0.
func uniform_cell(x float64, res int) (int, float64) {
	if !(x > 0) {
		return 0, 0
	}
	pos := min(x, 1) * float64(res-1)
	idx := int(pos)
	if idx >= res-1 {
		return res - 2, 1
	}
	return idx, pos - float64(idx)
}

// scale_cell is uniform_cell for the ascending, unevenly spaced samples of
// scale. Values outside the sampled range are clamped to it.
func scale_cell(x float64, scale []float32) (int, float64) {
	n := len(scale)
	if !(x > float64(scale[0])) {
		return 0, 0
	}
	if x >= float64(scale[n-1]) {
		return n - 2, 1
	}
	// first sample strictly above x, at least 1 because x > scale[0]
	hi := sort.Search(n, func(i int) bool { return float64(scale[i]) > x })
	lo := hi - 1
	a, b := float64(scale[lo]), float64(scale[hi])
	if b <= a {
		return lo, 0
	}
	return lo, (x - a) / (b - a)
}

// trilinear interpolates the coefficients of the (value, x, y) cube of
// dominant channel l, iterating over the 2³ corners of the cell.
func (t *Interpolator) trilinear(l int, value, x, y float64) (ans [3]float64) {
	var indices [3]int
	var weights [3]float64
	indices[0], weights[0] = scale_cell(value, t.scale)
	indices[1], weights[1] = uniform_cell(x, t.res)
	indices[2], weights[2] = uniform_cell(y, t.res)
	for corner := range 1 << 3 {
		w := 1.0
		var idx [3]int
		for j := range 3 {
			if (corner>>j)&1 == 1 {
				w *= weights[j]
				idx[j] = indices[j] + 1
			} else {
				w *= 1 - weights[j]
				idx[j] = indices[j]
			}
		}
		if w == 0 {
			continue
		}
		off := t.offset(l, idx[0], idx[1], idx[2])
		for c, v := range t.coeffs[off : off+3] {
			ans[c] += w * float64(v)
		}
	}
	return
}
