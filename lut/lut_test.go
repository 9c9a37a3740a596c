package lut

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kovidgoyal/rgb2spec"
	"github.com/kovidgoyal/rgb2spec/colorimetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ = fmt.Print

func synthetic(t *testing.T, res int, f func(l, k, a2, a3, c int) float64) *Interpolator {
	t.Helper()
	scale := make([]float32, res)
	for i, v := range rgb2spec.LightnessScale(res) {
		scale[i] = float32(v)
	}
	coeffs := make([]float32, 0, num_values(res))
	for l := range 3 {
		for k := range res {
			for a2 := range res {
				for a3 := range res {
					for c := range 3 {
						coeffs = append(coeffs, float32(f(l, k, a2, a3, c)))
					}
				}
			}
		}
	}
	ans, err := New(res, scale, coeffs)
	require.NoError(t, err)
	return ans
}

func encoded(t *testing.T, table *Interpolator) []byte {
	t.Helper()
	var buf bytes.Buffer
	n, err := table.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(buf.Len()), n)
	return buf.Bytes()
}

func TestCoordinates(t *testing.T) {
	type tc struct {
		rgb         colorimetry.Vec3
		imax        int
		value, x, y float64
	}
	for _, c := range []tc{
		{colorimetry.Vec3{0.9, 0.3, 0.6}, 0, 0.9, 0.6 / 0.9, 0.3 / 0.9},
		{colorimetry.Vec3{0.2, 0.5, 0.1}, 1, 0.5, 0.2 / 0.5, 0.1 / 0.5},
		{colorimetry.Vec3{0.1, 0.2, 0.8}, 2, 0.8, 0.2 / 0.8, 0.1 / 0.8},
		{colorimetry.Vec3{0.5, 0.5, 0.1}, 0, 0.5, 0.1 / 0.5, 1},
		{colorimetry.Vec3{0.3, 0.7, 0.7}, 1, 0.7, 0.3 / 0.7, 1},
		{colorimetry.Vec3{}, 0, 0, 0, 0},
	} {
		t.Run(fmt.Sprint(c.rgb), func(t *testing.T) {
			imax, value, x, y := Coordinates(c.rgb)
			assert.Equal(t, c.imax, imax)
			assert.Equal(t, c.value, value)
			assert.InDelta(t, c.x, x, 1e-9)
			assert.InDelta(t, c.y, y, 1e-9)
		})
	}
}

func TestCells(t *testing.T) {
	idx, w := uniform_cell(0.5, 5)
	assert.Equal(t, 2, idx)
	assert.Equal(t, 0.0, w)
	idx, w = uniform_cell(1, 5)
	assert.Equal(t, 3, idx)
	assert.Equal(t, 1.0, w)
	idx, w = uniform_cell(-3, 5)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 0.0, w)
	for _, x := range []float64{math.NaN(), math.Inf(-1)} {
		idx, w = uniform_cell(x, 5)
		assert.Equal(t, 0, idx)
		assert.Equal(t, 0.0, w)
	}
	idx, w = uniform_cell(math.Inf(1), 5)
	assert.Equal(t, 3, idx)
	assert.Equal(t, 1.0, w)

	scale := []float32{0, 0.25, 0.5, 1}
	idx, w = scale_cell(0.3, scale)
	assert.Equal(t, 1, idx)
	assert.InDelta(t, 0.2, w, 1e-9)
	idx, w = scale_cell(0.25, scale)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 0.0, w)
	idx, w = scale_cell(7, scale)
	assert.Equal(t, 2, idx)
	assert.Equal(t, 1.0, w)
	idx, w = scale_cell(-1, scale)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 0.0, w)
	idx, w = scale_cell(math.NaN(), scale)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 0.0, w)
}

func TestGridPointsAreExact(t *testing.T) {
	const res = 6
	table := synthetic(t, res, func(l, k, a2, a3, c int) float64 {
		return float64(l*1000+k*100+a2*10+a3) + float64(c)/4
	})
	scale := table.Scale()
	for l := range 3 {
		for _, k := range []int{1, 3, res - 1} {
			for _, a2 := range []int{0, 2, res - 2, res - 1} {
				for _, a3 := range []int{0, 3, res - 2, res - 1} {
					// a chroma of 1 ties with the dominant channel, and ties
					// resolve to the lowest channel index
					if (a2 == res-1 && (l+2)%3 < l) || (a3 == res-1 && (l+1)%3 < l) {
						continue
					}
					z := float64(scale[k])
					var rgb colorimetry.Vec3
					rgb[l] = z
					rgb[(l+2)%3] = float64(a2) / (res - 1) * z
					rgb[(l+1)%3] = float64(a3) / (res - 1) * z
					got := table.Coefficients(rgb)
					want := table.At(l, k, a2, a3)
					for c := range 3 {
						require.InDelta(t, float64(want[c]), got[c], 1e-5, "l=%d k=%d a2=%d a3=%d", l, k, a2, a3)
					}
				}
			}
		}
	}
	// every chroma is zero at the bottom of the value axis
	got, want := table.Coefficients(colorimetry.Vec3{}), table.At(0, 0, 0, 0)
	for c := range 3 {
		assert.Equal(t, float64(want[c]), got[c])
	}
}

func TestLinearChromaIsReproduced(t *testing.T) {
	const res = 5
	table := synthetic(t, res, func(l, k, a2, a3, c int) float64 {
		return float64(c+1) * (float64(a2)/(res-1)*2 - float64(a3)/(res-1)*3)
	})
	for _, rgb := range []colorimetry.Vec3{{0.8, 0.33, 0.17}, {0.05, 0.6, 0.41}, {0.2, 0.3, 0.35}} {
		_, _, x, y := Coordinates(rgb)
		got := table.Coefficients(rgb)
		for c := range 3 {
			assert.InDelta(t, float64(c+1)*(2*x-3*y), got[c], 1e-5)
		}
	}
}

func TestOutOfRangeClamps(t *testing.T) {
	table := synthetic(t, 4, func(l, k, a2, a3, c int) float64 {
		return float64(k*16+a2*4+a3) * float64(c+1)
	})
	top, beyond := table.Coefficients(colorimetry.Vec3{1, 0.5, 0.25}), table.Coefficients(colorimetry.Vec3{2, 1, 0.5})
	for c := range 3 {
		assert.InDelta(t, top[c], beyond[c], 1e-6)
	}
	nan, inf := math.NaN(), math.Inf(1)
	for _, rgb := range []colorimetry.Vec3{
		{-1, -2, -3}, {5, -1, 0}, {0, 0, 1e9},
		{inf, inf, 0}, {nan, 0.5, 0.2}, {0.5, nan, 0.2}, {0.1, 0.2, nan}, {nan, nan, nan}, {inf, inf, inf}, {-inf, 0.3, 0.2},
	} {
		for _, v := range table.Coefficients(rgb) {
			assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "%v", rgb)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	table := synthetic(t, 3, func(l, k, a2, a3, c int) float64 { return float64(l-k+a2*a3) * 0.37 * float64(c) })
	data := encoded(t, table)
	require.Equal(t, 4+4+3*4+3*27*3*4, len(data))
	assert.Equal(t, Magic, string(data[:4]))
	assert.Equal(t, uint32(3), binary.LittleEndian.Uint32(data[4:]))
	got, err := Read(bytes.NewReader(data))
	require.NoError(t, err)
	if diff := cmp.Diff(table, got, cmp.AllowUnexported(Interpolator{})); diff != "" {
		t.Fatalf("table changed on round trip (-want +got):\n%s", diff)
	}

	path := filepath.Join(t.TempDir(), "srgb.coeff")
	require.NoError(t, table.Save(path))
	loaded, err := Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff(table, loaded, cmp.AllowUnexported(Interpolator{})); diff != "" {
		t.Fatalf("table changed on save and load (-want +got):\n%s", diff)
	}
	_, err = Load(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

type counting_reader struct {
	r io.Reader
	n int
}

func (c *counting_reader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}

func TestBadMagic(t *testing.T) {
	table := synthetic(t, 2, func(l, k, a2, a3, c int) float64 { return 1 })
	data := encoded(t, table)
	copy(data, "CEPS")
	r := &counting_reader{r: bytes.NewReader(data)}
	_, err := Read(r)
	require.ErrorIs(t, err, ErrBadMagic)
	assert.Equal(t, 4, r.n)
}

func TestMalformed(t *testing.T) {
	table := synthetic(t, 2, func(l, k, a2, a3, c int) float64 { return 1 })
	data := encoded(t, table)
	for _, n := range []int{0, 2, 4, 6, 8, 10, 12, len(data) - 1} {
		t.Run(fmt.Sprintf("truncated at %d", n), func(t *testing.T) {
			_, err := Read(bytes.NewReader(data[:n]))
			require.ErrorIs(t, err, io.ErrUnexpectedEOF)
		})
	}
	for _, res := range []int32{-1, 0, 1, MaxResolution + 1} {
		t.Run(fmt.Sprintf("resolution %d", res), func(t *testing.T) {
			bad := bytes.Clone(data)
			binary.LittleEndian.PutUint32(bad[4:], uint32(res))
			_, err := Read(bytes.NewReader(bad))
			require.ErrorIs(t, err, ErrBadResolution)
		})
	}
	_, err := New(3, make([]float32, 2), make([]float32, num_values(3)))
	require.Error(t, err)
	_, err = New(3, make([]float32, 3), make([]float32, 5))
	require.Error(t, err)
}

func TestSpectrumBatch(t *testing.T) {
	table := synthetic(t, 4, func(l, k, a2, a3, c int) float64 {
		return []float64{1e-4, -0.08, 16}[c] * float64(k+a2-a3) / 4
	})
	rgbs := []colorimetry.Vec3{{0.1, 0.2, 0.3}, {0.9, 0.1, 0.4}, {0.5, 0.5, 0.5}}
	coeffs, err := table.CoefficientsBatch(rgbs)
	require.NoError(t, err)
	sds, err := table.ToSpectrumBatch(rgbs, rgb2spec.DefaultShape)
	require.NoError(t, err)
	for i, rgb := range rgbs {
		assert.Equal(t, table.Coefficients(rgb), coeffs[i])
		sd := table.ToSpectrum(rgb, rgb2spec.DefaultShape)
		assert.Equal(t, rgb2spec.DefaultShape, sd.Shape)
		assert.Equal(t, rgb2spec.Model(coeffs[i], rgb2spec.DefaultShape).Values, sd.Values)
		assert.Equal(t, sd.Values, sds[i].Values)
	}
}

func TestBake(t *testing.T) {
	if testing.Short() {
		t.Skip("baking is slow")
	}
	s, err := rgb2spec.NewSolver(rgb2spec.DefaultCMFS(), rgb2spec.DefaultIlluminant(), nil)
	require.NoError(t, err)
	const res = 5
	var calls atomic.Int64
	var finished atomic.Bool
	table, err := Bake(s, colorimetry.SRGB, res, func(done, total int) {
		calls.Add(1)
		assert.Equal(t, 3*res, total)
		if done == total {
			finished.Store(true)
		}
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3*res), calls.Load())
	assert.True(t, finished.Load())
	assert.Equal(t, res, table.Resolution())
	for _, v := range table.coeffs {
		require.False(t, math.IsNaN(float64(v)) || math.IsInf(float64(v), 0))
	}

	// a grid point, scale[2] is 0.5 at this resolution
	rgb := colorimetry.Vec3{0.5, 0.125, 0.25}
	sd := table.ToSpectrum(rgb, s.Shape())
	xyz, err := colorimetry.SDToXYZ(sd, s.CMFS, s.Illuminant)
	require.NoError(t, err)
	delta := colorimetry.DeltaE76(s.RGBToLab(rgb, colorimetry.SRGB), colorimetry.XYZToLab(xyz, s.IlluminantXY))
	assert.Less(t, delta, 0.1)

	_, err = Bake(s, colorimetry.SRGB, 1, nil)
	require.True(t, errors.Is(err, ErrBadResolution))
}
