package rgb2spec

import (
	"fmt"
	"math"

	"github.com/kovidgoyal/rgb2spec/colorimetry"
)

var _ = fmt.Print

// Below this the colour difference is treated as zero and its gradient,
// which is 0/0 at the exact target, is reported as the zero vector.
const zeroErrorThreshold = 1e-12

// Intermediates are the quantities computed on the way to the colour
// difference, exposed for verification.
type Intermediates struct {
	Error    float64
	Gradient Coefficients
	// Reflectance over the normalised wavelength domain
	R   []float64
	XYZ colorimetry.Vec3
	Lab colorimetry.Vec3
}

// ErrorFunction returns the CIE 1976 colour difference between target
// (L*a*b* relative to the solver's illuminant) and the colour of the
// reflectance described by the dimensionless coefficients c, together with
// its gradient with respect to c.
func (s *Solver) ErrorFunction(c Coefficients, target colorimetry.Vec3) (float64, Coefficients) {
	return s.evaluate(c, target, nil)
}

// ErrorIntermediates is ErrorFunction also returning the reflectance, XYZ
// and L*a*b* values of the modelled colour.
func (s *Solver) ErrorIntermediates(c Coefficients, target colorimetry.Vec3) Intermediates {
	ans := Intermediates{R: make([]float64, len(s.wv))}
	ans.Error, ans.Gradient = s.evaluate(c, target, &ans)
	return ans
}

func (s *Solver) evaluate(c Coefficients, target colorimetry.Vec3, im *Intermediates) (float64, Coefficients) {
	var xyz colorimetry.Vec3
	var dxyz [3]Coefficients
	for i, w := range s.wv {
		u := (c[0]*w+c[1])*w + c[2]
		t1 := math.Sqrt(1 + u*u)
		r := 0.5 + u/(2*t1)
		// dR/dU
		t2 := 1 / (2 * t1 * t1 * t1)
		dr := Coefficients{w * w * t2, w * t2, t2}
		if im != nil {
			im.R[i] = r
		}
		for j := range 3 {
			wj := s.weights[j][i]
			xyz[j] += r * wj
			dxyz[j][0] += dr[0] * wj
			dxyz[j][1] += dr[1] * wj
			dxyz[j][2] += dr[2] * wj
		}
	}

	var f colorimetry.Vec3
	var df [3]Coefficients
	for j := range 3 {
		white := s.IlluminantXYZ[j]
		n := xyz[j] / white
		if n > colorimetry.LabEpsilon {
			f[j] = math.Cbrt(n)
			// d(cbrt(n))/dn = 1/(3·n^(2/3))
			scale := 1 / (3 * f[j] * f[j] * white)
			for k := range 3 {
				df[j][k] = scale * dxyz[j][k]
			}
		} else {
			f[j] = colorimetry.LabKappa*n + 16.0/116
			for k := range 3 {
				df[j][k] = colorimetry.LabKappa * dxyz[j][k] / white
			}
		}
	}

	lab := colorimetry.Vec3{116*f[1] - 16, 500 * (f[0] - f[1]), 200 * (f[1] - f[2])}
	var dlab [3]Coefficients
	for k := range 3 {
		dlab[0][k] = 116 * df[1][k]
		dlab[1][k] = 500 * (df[0][k] - df[1][k])
		dlab[2][k] = 200 * (df[1][k] - df[2][k])
	}

	diff := colorimetry.Vec3{lab[0] - target[0], lab[1] - target[1], lab[2] - target[2]}
	e := math.Sqrt(diff[0]*diff[0] + diff[1]*diff[1] + diff[2]*diff[2])
	var grad Coefficients
	if e >= zeroErrorThreshold {
		for k := range 3 {
			grad[k] = (dlab[0][k]*diff[0] + dlab[1][k]*diff[1] + dlab[2][k]*diff[2]) / e
		}
	}
	if im != nil {
		im.XYZ, im.Lab = xyz, lab
	}
	return e, grad
}
