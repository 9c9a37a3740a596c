package colorimetry

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var _ = fmt.Print

// ChromaticAdaptationTransform maps XYZ into the cone-like response domain
// in which von Kries scaling is applied.
type ChromaticAdaptationTransform struct {
	Name    string
	M, MInv Mat3
}

func newCAT(name string, m Mat3) *ChromaticAdaptationTransform {
	inv, err := m.Inverted()
	if err != nil {
		panic(fmt.Sprintf("%s matrix is singular: %s", name, err))
	}
	return &ChromaticAdaptationTransform{Name: name, M: m, MInv: inv}
}

var (
	Bradford = newCAT("Bradford", Mat3{
		{0.8951, 0.2664, -0.1614},
		{-0.7502, 1.7135, 0.0367},
		{0.0389, -0.0685, 1.0296},
	})
	CAT02 = newCAT("CAT02", Mat3{
		{0.7328, 0.4296, -0.1624},
		{-0.7036, 1.6975, 0.0061},
		{0.0030, 0.0136, 0.9834},
	})
)

// Matrix returns the matrix adapting XYZ values viewed under sourceWhite to
// the corresponding values under targetWhite.
func (c *ChromaticAdaptationTransform) Matrix(sourceWhite, targetWhite Vec3) Mat3 {
	src := c.M.MulVec(sourceWhite)
	tgt := c.M.MulVec(targetWhite)
	diag := Mat3{
		{tgt[0] / src[0], 0, 0},
		{0, tgt[1] / src[1], 0},
		{0, 0, tgt[2] / src[2]},
	}
	tmp := diag.Mul(&c.M)
	return c.MInv.Mul(&tmp)
}

func (m *Mat3) dense() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		m[0][0], m[0][1], m[0][2],
		m[1][0], m[1][1], m[1][2],
		m[2][0], m[2][1], m[2][2],
	})
}

func mat3FromDense(d mat.Matrix) (ans Mat3) {
	for i := range 3 {
		for j := range 3 {
			ans[i][j] = d.At(i, j)
		}
	}
	return
}

// Inverted returns the inverse of m or an error if m is singular.
func (m *Mat3) Inverted() (Mat3, error) {
	var inv mat.Dense
	if err := inv.Inverse(m.dense()); err != nil {
		return Mat3{}, fmt.Errorf("matrix cannot be inverted: %w", err)
	}
	return mat3FromDense(&inv), nil
}
