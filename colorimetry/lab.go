package colorimetry

import (
	"fmt"
	"math"
)

var _ = fmt.Print

type Vec3 [3]float64
type Mat3 [3][3]float64

// LabEpsilon is the normalised tristimulus value below which the CIE L*a*b*
// function switches from the cube root to its linear segment, (24/116)³.
const LabEpsilon = (24.0 / 116) * (24.0 / 116) * (24.0 / 116)

// LabKappa is the slope of the linear segment, 841/108.
const LabKappa = 841.0 / 108

// LabF is the CIE L*a*b* companding function applied to a tristimulus
// value normalised by the reference white.
func LabF(t float64) float64 {
	if t > LabEpsilon {
		return math.Cbrt(t)
	}
	return LabKappa*t + 16.0/116
}

func labFInv(t float64) float64 {
	const delta = 6.0 / 29.0
	if t > delta {
		return t * t * t
	}
	return 3 * delta * delta * (t - 4.0/29.0)
}

// XYZToLab converts XYZ into CIE L*a*b* relative to the reference white
// with chromaticity coordinates whitepoint.
func XYZToLab(xyz Vec3, whitepoint [2]float64) Vec3 {
	w := XyToXYZ(whitepoint)
	fx := LabF(xyz[0] / w[0])
	fy := LabF(xyz[1] / w[1])
	fz := LabF(xyz[2] / w[2])
	return Vec3{116*fy - 16, 500 * (fx - fy), 200 * (fy - fz)}
}

// LabToXYZ is the inverse of XYZToLab.
func LabToXYZ(lab Vec3, whitepoint [2]float64) Vec3 {
	w := XyToXYZ(whitepoint)
	fy := (lab[0] + 16) / 116
	fx := fy + lab[1]/500
	fz := fy - lab[2]/200
	return Vec3{labFInv(fx) * w[0], labFInv(fy) * w[1], labFInv(fz) * w[2]}
}

// XYZToXy returns the chromaticity coordinates of xyz. Black maps to
// (0, 0).
func XYZToXy(xyz Vec3) [2]float64 {
	s := xyz[0] + xyz[1] + xyz[2]
	if s == 0 {
		return [2]float64{}
	}
	return [2]float64{xyz[0] / s, xyz[1] / s}
}

// XyToXYZ returns the tristimulus values with Y = 1 of the chromaticity xy.
func XyToXYZ(xy [2]float64) Vec3 {
	x, y := xy[0], xy[1]
	return Vec3{x / y, 1, (1 - x - y) / y}
}

// DeltaE76 is the Euclidean distance between two L*a*b* colours.
func DeltaE76(a, b Vec3) float64 {
	dl, da, db := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return math.Sqrt(dl*dl + da*da + db*db)
}

func (m *Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

func (m *Mat3) Mul(b *Mat3) Mat3 {
	var out Mat3
	for i := range 3 {
		for j := range 3 {
			sum := 0.0
			for k := range 3 {
				sum += m[i][k] * b[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

func (v Vec3) Scale(s float64) Vec3 { return Vec3{v[0] * s, v[1] * s, v[2] * s} }

func (v Vec3) Max() float64 { return max(v[0], v[1], v[2]) }
