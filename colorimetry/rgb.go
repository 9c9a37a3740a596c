package colorimetry

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"
)

var _ = fmt.Print

// RGBColourspace is a linear RGB colourspace defined by the chromaticities
// of its primaries and whitepoint.
type RGBColourspace struct {
	Name       string
	Primaries  [3][2]float64
	Whitepoint [2]float64
	// Converts linear RGB to XYZ relative to Whitepoint
	RGBToXYZMatrix Mat3
	XYZToRGBMatrix Mat3
}

func (cs *RGBColourspace) String() string { return cs.Name }

// NewRGBColourspace computes the normalised primary matrix of the
// colourspace and its inverse.
func NewRGBColourspace(name string, primaries [3][2]float64, whitepoint [2]float64) (*RGBColourspace, error) {
	p := mat.NewDense(3, 3, nil)
	for j, xy := range primaries {
		if xy[1] == 0 {
			return nil, fmt.Errorf("%s: primary %d has y = 0", name, j)
		}
		p.Set(0, j, xy[0])
		p.Set(1, j, xy[1])
		p.Set(2, j, 1-xy[0]-xy[1])
	}
	w := XyToXYZ(whitepoint)
	var s mat.VecDense
	if err := s.SolveVec(p, mat.NewVecDense(3, w[:])); err != nil {
		return nil, fmt.Errorf("%s: degenerate primaries: %w", name, err)
	}
	var npm mat.Dense
	npm.Mul(p, mat.NewDiagDense(3, []float64{s.AtVec(0), s.AtVec(1), s.AtVec(2)}))
	ans := &RGBColourspace{Name: name, Primaries: primaries, Whitepoint: whitepoint, RGBToXYZMatrix: mat3FromDense(&npm)}
	inv, err := ans.RGBToXYZMatrix.Inverted()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	ans.XYZToRGBMatrix = inv
	return ans, nil
}

// ToXYZMatrix returns the matrix converting linear RGB in this colourspace
// to XYZ relative to whitepoint, adapting with CAT02.
func (cs *RGBColourspace) ToXYZMatrix(whitepoint [2]float64) Mat3 {
	if whitepoint == cs.Whitepoint {
		return cs.RGBToXYZMatrix
	}
	a := CAT02.Matrix(XyToXYZ(cs.Whitepoint), XyToXYZ(whitepoint))
	return a.Mul(&cs.RGBToXYZMatrix)
}

// FromXYZMatrix is the inverse of ToXYZMatrix.
func (cs *RGBColourspace) FromXYZMatrix(whitepoint [2]float64) Mat3 {
	if whitepoint == cs.Whitepoint {
		return cs.XYZToRGBMatrix
	}
	a := CAT02.Matrix(XyToXYZ(whitepoint), XyToXYZ(cs.Whitepoint))
	return cs.XYZToRGBMatrix.Mul(&a)
}

// RGBToXYZ converts linear rgb to XYZ relative to whitepoint.
func (cs *RGBColourspace) RGBToXYZ(rgb Vec3, whitepoint [2]float64) Vec3 {
	m := cs.ToXYZMatrix(whitepoint)
	return m.MulVec(rgb)
}

// XYZToRGB converts XYZ relative to whitepoint to linear rgb.
func (cs *RGBColourspace) XYZToRGB(xyz Vec3, whitepoint [2]float64) Vec3 {
	m := cs.FromXYZMatrix(whitepoint)
	return m.MulVec(xyz)
}

var (
	WhitepointD65 = [2]float64{0.3127, 0.3290}
	WhitepointD50 = [2]float64{0.3457, 0.3585}
)

func must(cs *RGBColourspace, err error) *RGBColourspace {
	if err != nil {
		panic(err)
	}
	return cs
}

var (
	SRGB = must(NewRGBColourspace("sRGB",
		[3][2]float64{{0.64, 0.33}, {0.30, 0.60}, {0.15, 0.06}}, WhitepointD65))
	AdobeRGB1998 = must(NewRGBColourspace("Adobe RGB (1998)",
		[3][2]float64{{0.64, 0.33}, {0.21, 0.71}, {0.15, 0.06}}, WhitepointD65))
	DisplayP3 = must(NewRGBColourspace("Display P3",
		[3][2]float64{{0.680, 0.320}, {0.265, 0.690}, {0.150, 0.060}}, WhitepointD65))
	BT2020 = must(NewRGBColourspace("ITU-R BT.2020",
		[3][2]float64{{0.708, 0.292}, {0.170, 0.797}, {0.131, 0.046}}, WhitepointD65))
	ProPhotoRGB = must(NewRGBColourspace("ProPhoto RGB",
		[3][2]float64{{0.7347, 0.2653}, {0.1596, 0.8404}, {0.0366, 0.0001}}, WhitepointD50))
)

var colourspaces = map[string]*RGBColourspace{
	"srgb":      SRGB,
	"adobergb":  AdobeRGB1998,
	"displayp3": DisplayP3,
	"p3":        DisplayP3,
	"bt2020":    BT2020,
	"rec2020":   BT2020,
	"prophoto":  ProPhotoRGB,
}

func normalize_name(name string) string {
	name = strings.ToLower(name)
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_', '.', '(', ')':
			return -1
		}
		return r
	}, name)
}

// Colourspace looks up one of the predefined colourspaces by name. Case,
// spaces and punctuation are ignored, "Adobe RGB (1998)" and "adobergb1998"
// both work.
func Colourspace(name string) (*RGBColourspace, error) {
	n := normalize_name(name)
	if cs, ok := colourspaces[n]; ok {
		return cs, nil
	}
	for _, cs := range colourspaces {
		if normalize_name(cs.Name) == n {
			return cs, nil
		}
	}
	return nil, fmt.Errorf("unknown RGB colourspace: %q", name)
}

// ColourspaceNames lists the names accepted by Colourspace.
func ColourspaceNames() []string {
	ans := make([]string, 0, len(colourspaces))
	for k := range colourspaces {
		ans = append(ans, k)
	}
	sort.Strings(ans)
	return ans
}
