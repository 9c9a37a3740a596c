package lut

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
)

// Magic is the literal every table file starts with.
const Magic = "SPEC"

// MaxResolution bounds the resolution accepted when reading a table, a
// table of this resolution occupies 4.5GB.
const MaxResolution = 512

var ErrBadMagic = errors.New("bad magic number, this likely is not a spectral coefficient table")
var ErrBadResolution = errors.New("invalid coefficient table resolution")

// Interpolator approximates solver output for arbitrary RGB values by
// multilinear interpolation in a precomputed coefficient table. The table
// has shape (3, res, res, res, 3): the dominant RGB channel, its value
// sampled at Scale, the two chroma ratios sampled uniformly over [0, 1], and
// the three dimensionful coefficients. It is immutable and safe for
// concurrent use.
type Interpolator struct {
	res    int
	scale  []float32
	coeffs []float32
}

// New creates an Interpolator from its raw data. scale must have res
// values and coeffs 3·res³·3 values in row major order. The slices are
// copied.
func New(res int, scale, coeffs []float32) (*Interpolator, error) {
	if res < 2 || res > MaxResolution {
		return nil, fmt.Errorf("%w: %d", ErrBadResolution, res)
	}
	if len(scale) != res {
		return nil, fmt.Errorf("scale has %d values but resolution is %d", len(scale), res)
	}
	if len(coeffs) != num_values(res) {
		return nil, fmt.Errorf("coefficient table has %d values, expected %d", len(coeffs), num_values(res))
	}
	return &Interpolator{res: res, scale: slices.Clone(scale), coeffs: slices.Clone(coeffs)}, nil
}

func num_values(res int) int { return 3 * res * res * res * 3 }

func (t *Interpolator) String() string {
	return fmt.Sprintf("Interpolator{ res:%d scale:[%v..%v] }", t.res, t.scale[0], t.scale[t.res-1])
}

// Resolution is the number of samples along each of the value and chroma
// axes.
func (t *Interpolator) Resolution() int { return t.res }

// Scale returns a copy of the sample points of the value axis.
func (t *Interpolator) Scale() []float32 { return slices.Clone(t.scale) }

func (t *Interpolator) offset(l, k, a2, a3 int) int {
	return (((l*t.res+k)*t.res+a2)*t.res + a3) * 3
}

// At returns the coefficients stored at a grid point: dominant channel l,
// value index k and chroma indices a2, a3.
func (t *Interpolator) At(l, k, a2, a3 int) (ans [3]float32) {
	copy(ans[:], t.coeffs[t.offset(l, k, a2, a3):])
	return
}

func short_read(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// Read decodes a table. The magic literal is checked before anything else
// is read.
func Read(r io.Reader) (*Interpolator, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("failed to read coefficient table header: %w", short_read(err))
	}
	if string(magic[:]) != Magic {
		return nil, fmt.Errorf("%w: %q", ErrBadMagic, magic[:])
	}
	var res int32
	if err := binary.Read(r, binary.LittleEndian, &res); err != nil {
		return nil, fmt.Errorf("failed to read coefficient table resolution: %w", short_read(err))
	}
	if res < 2 || res > MaxResolution {
		return nil, fmt.Errorf("%w: %d", ErrBadResolution, res)
	}
	ans := &Interpolator{res: int(res), scale: make([]float32, res), coeffs: make([]float32, num_values(int(res)))}
	if err := binary.Read(r, binary.LittleEndian, ans.scale); err != nil {
		return nil, fmt.Errorf("failed to read coefficient table scale: %w", short_read(err))
	}
	if err := binary.Read(r, binary.LittleEndian, ans.coeffs); err != nil {
		return nil, fmt.Errorf("failed to read coefficient table values: %w", short_read(err))
	}
	return ans, nil
}

// Load reads a table from the file at path.
func Load(path string) (*Interpolator, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ans, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ans, nil
}

// WriteTo encodes the table in the format understood by Read.
func (t *Interpolator) WriteTo(w io.Writer) (n int64, err error) {
	bw := bufio.NewWriter(w)
	cw := &counting_writer{w: bw}
	if _, err = cw.Write([]byte(Magic)); err != nil {
		return cw.n, err
	}
	if err = binary.Write(cw, binary.LittleEndian, int32(t.res)); err != nil {
		return cw.n, err
	}
	if err = binary.Write(cw, binary.LittleEndian, t.scale); err != nil {
		return cw.n, err
	}
	if err = binary.Write(cw, binary.LittleEndian, t.coeffs); err != nil {
		return cw.n, err
	}
	return cw.n, bw.Flush()
}

// Save writes the table to the file at path, replacing it.
func (t *Interpolator) Save(path string) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o666)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	_, err = t.WriteTo(f)
	return
}

type counting_writer struct {
	w io.Writer
	n int64
}

func (c *counting_writer) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
