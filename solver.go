package rgb2spec

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/kovidgoyal/rgb2spec/colorimetry"
	"gonum.org/v1/gonum/optimize"
)

var _ = fmt.Print

// Added to the target maximum when walking the lightness scale so that a
// scale value equal to the target does not count as overshooting it.
const feedbackEpsilon = 1e-10

// SolverSettings tune the quasi-Newton minimisation run for every target.
type SolverSettings struct {
	// Stop when the largest gradient component is below this
	GradientThreshold float64
	// Stop when the error has not improved by more than FunctionTolerance
	// for FunctionIterations consecutive iterations
	FunctionTolerance  float64
	FunctionIterations int
	MajorIterations    int
	FuncEvaluations    int
	// Number of past updates stored by L-BFGS
	Memory int
}

var DefaultSolverSettings = SolverSettings{
	GradientThreshold:  1e-10,
	FunctionTolerance:  1e-12,
	FunctionIterations: 20,
	MajorIterations:    1000,
	FuncEvaluations:    20000,
	Memory:             10,
}

// Solver finds model coefficients reproducing colours under a fixed
// illuminant and observer. It is immutable after construction and safe for
// concurrent use.
type Solver struct {
	CMFS *colorimetry.CMFS
	// Illuminant aligned to the CMFS shape
	Illuminant *colorimetry.SpectralDistribution
	// Tristimulus values of the illuminant with Y = 1
	IlluminantXYZ colorimetry.Vec3
	IlluminantXY  [2]float64
	Settings      SolverSettings

	logger *slog.Logger
	// normalised wavelengths, 0 to 1
	wv []float64
	// k·Δλ·S(λ)·cmfs_j(λ)
	weights [3][]float64
}

// DefaultCMFS returns a fresh copy of the CIE 1931 2° standard observer.
func DefaultCMFS() *colorimetry.CMFS { return colorimetry.CIE1931_2Degree() }

// DefaultIlluminant returns a fresh copy of CIE illuminant D65.
func DefaultIlluminant() *colorimetry.SpectralDistribution { return colorimetry.D65() }

// NewSolver prepares a Solver for the given observer and illuminant. If
// the illuminant is sampled differently from the CMFS it is resampled onto
// the CMFS shape and a warning is logged. A nil logger means slog.Default().
func NewSolver(cmfs *colorimetry.CMFS, illuminant *colorimetry.SpectralDistribution, logger *slog.Logger) (*Solver, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if len(cmfs.Values) < 2 {
		return nil, fmt.Errorf("CMFS %q needs at least two samples", cmfs.Name)
	}
	if !illuminant.Shape.Equal(cmfs.Shape) {
		logger.Warn("aligning illuminant shape to colour matching functions shape",
			"illuminant", illuminant.Name, "cmfs", cmfs.Name, "shape", cmfs.Shape.String())
		var err error
		if illuminant, err = illuminant.Align(cmfs.Shape); err != nil {
			return nil, err
		}
	} else {
		illuminant = illuminant.Copy()
	}
	wxyz, err := colorimetry.IlluminantXYZ(cmfs, illuminant)
	if err != nil {
		return nil, err
	}
	s := &Solver{
		CMFS: cmfs, Illuminant: illuminant, IlluminantXYZ: wxyz, IlluminantXY: colorimetry.XYZToXy(wxyz),
		Settings: DefaultSolverSettings, logger: logger,
	}
	n := len(cmfs.Values)
	s.wv = make([]float64, n)
	for i := range n {
		s.wv[i] = float64(i) / float64(n-1)
	}
	dw := cmfs.Shape.Interval
	ysum := 0.0
	for i, c := range cmfs.Values {
		ysum += c[1] * illuminant.Values[i]
	}
	k := 1 / (ysum * dw)
	for j := range 3 {
		s.weights[j] = make([]float64, n)
		for i, c := range cmfs.Values {
			s.weights[j][i] = k * dw * illuminant.Values[i] * c[j]
		}
	}
	return s, nil
}

// Shape is the wavelength sampling the solver integrates over.
func (s *Solver) Shape() colorimetry.SpectralShape { return s.CMFS.Shape }

// RGBToLab converts linear rgb in colourspace cs to L*a*b* relative to the
// solver's illuminant.
func (s *Solver) RGBToLab(rgb colorimetry.Vec3, cs *colorimetry.RGBColourspace) colorimetry.Vec3 {
	return colorimetry.XYZToLab(cs.RGBToXYZ(rgb, s.IlluminantXY), s.IlluminantXY)
}

type findConfig struct {
	coefficients0  Coefficients
	dimensionalise bool
	useFeedback    bool
	lightnessSteps int
}

var defaultFindConfig = findConfig{dimensionalise: true, useFeedback: true, lightnessSteps: 64}

// Option sets an optional parameter of FindCoefficients and Recover.
type Option func(*findConfig)

// InitialCoefficients sets the dimensionless coefficients the search
// starts from. Defaults to zero, a flat 50% reflectance.
func InitialCoefficients(c Coefficients) Option {
	return func(f *findConfig) { f.coefficients0 = c }
}

// Dimensionalise controls whether FindCoefficients returns coefficients
// for wavelengths in nanometers (the default) or the dimensionless
// coefficients the solver works with.
func Dimensionalise(enabled bool) Option {
	return func(f *findConfig) { f.dimensionalise = enabled }
}

// UseFeedback controls the lightness continuation. When enabled (the
// default) a sequence of colours of increasing or decreasing lightness,
// ending at the target, is solved in turn with every solution seeding the
// next search. This makes convergence much more reliable for very dark and
// very bright colours.
func UseFeedback(enabled bool) Option {
	return func(f *findConfig) { f.useFeedback = enabled }
}

// LightnessSteps sets the length of the lightness scale walked when
// feedback is enabled. Defaults to 64, values below 2 are raised to 2.
func LightnessSteps(n int) Option {
	return func(f *findConfig) { f.lightnessSteps = max(2, n) }
}

// FindCoefficients returns the model coefficients whose reflectance best
// reproduces the linear rgb colour of cs, along with the achieved colour
// difference. Non-convergence is not reported separately, callers wanting
// a quality guarantee should threshold the returned error.
func (s *Solver) FindCoefficients(rgb colorimetry.Vec3, cs *colorimetry.RGBColourspace, opts ...Option) (Coefficients, float64) {
	cfg := defaultFindConfig
	for _, o := range opts {
		o(&cfg)
	}
	c := cfg.coefficients0
	if cfg.useFeedback {
		c = s.feedback(rgb, cs, c, cfg.lightnessSteps)
	}
	c, e := s.Minimize(s.RGBToLab(rgb, cs), c)
	if cfg.dimensionalise {
		c = DimensionaliseCoefficients(c, s.Shape())
	}
	return c, e
}

// LightnessWalk returns the indices into LightnessScale(steps) at which
// intermediate colours are solved when the brightest channel of the target
// is m. The walk starts at steps/3 and moves towards m, stopping before
// the next scale value would reach m + 1e-10 or at either end of the
// scale. An empty result means the target is solved directly.
func LightnessWalk(m float64, steps int) []int {
	if steps < 2 {
		return nil
	}
	scale := LightnessScale(steps)
	targetMax := m + feedbackEpsilon
	i := steps / 3
	goingUp := scale[i] < m
	var ans []int
	for {
		if goingUp {
			if i+1 == steps || scale[i+1] >= targetMax {
				break
			}
		} else {
			if i == 0 || scale[i-1] <= targetMax {
				break
			}
		}
		ans = append(ans, i)
		if goingUp {
			i++
		} else {
			i--
		}
	}
	return ans
}

// feedback solves a proportionally scaled version of rgb at every index of
// the lightness walk, seeding each search with the previous solution.
func (s *Solver) feedback(rgb colorimetry.Vec3, cs *colorimetry.RGBColourspace, c Coefficients, steps int) Coefficients {
	m := rgb.Max()
	targetMax := m + feedbackEpsilon
	scale := LightnessScale(steps)
	for _, i := range LightnessWalk(m, steps) {
		f := scale[i] / targetMax
		intermediate := colorimetry.Vec3{(rgb[0] + feedbackEpsilon) * f, (rgb[1] + feedbackEpsilon) * f, (rgb[2] + feedbackEpsilon) * f}
		c, _ = s.Minimize(s.RGBToLab(intermediate, cs), c)
	}
	return c
}

// caches the last evaluation as gonum asks for the value and the gradient
// at the same point separately
type objective struct {
	s      *Solver
	target colorimetry.Vec3
	at     Coefficients
	f      float64
	grad   Coefficients
	valid  bool
}

func (o *objective) eval(x []float64) {
	c := Coefficients{x[0], x[1], x[2]}
	if o.valid && c == o.at {
		return
	}
	o.at, o.valid = c, true
	o.f, o.grad = o.s.ErrorFunction(c, o.target)
}

// Minimize runs one unconstrained L-BFGS minimisation of the colour
// difference to target starting at the dimensionless coefficients c0. The
// best point found is returned even when the optimiser stops abnormally.
func (s *Solver) Minimize(target colorimetry.Vec3, c0 Coefficients) (Coefficients, float64) {
	o := &objective{s: s, target: target}
	p := optimize.Problem{
		Func: func(x []float64) float64 {
			o.eval(x)
			return o.f
		},
		Grad: func(grad, x []float64) {
			o.eval(x)
			copy(grad, o.grad[:])
		},
	}
	st := s.Settings
	settings := &optimize.Settings{
		GradientThreshold: st.GradientThreshold,
		Converger: &optimize.FunctionConverge{
			Absolute:   st.FunctionTolerance,
			Relative:   st.FunctionTolerance,
			Iterations: st.FunctionIterations,
		},
		MajorIterations: st.MajorIterations,
		FuncEvaluations: st.FuncEvaluations,
	}
	result, err := optimize.Minimize(p, slices.Clone(c0[:]), settings, &optimize.LBFGS{Store: st.Memory})
	if result == nil {
		s.logger.Debug("minimisation failed to start", "error", err)
		e, _ := s.ErrorFunction(c0, target)
		return c0, e
	}
	if err != nil {
		s.logger.Debug("minimisation stopped early", "status", result.Status.String(), "error", err, "F", result.F)
	}
	var c Coefficients
	copy(c[:], result.X)
	return c, result.F
}
