package main

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"log/slog"
	"os"

	"github.com/kovidgoyal/go-parallel"
	"github.com/kovidgoyal/rgb2spec"
	"github.com/kovidgoyal/rgb2spec/colorimetry"
	"github.com/kovidgoyal/rgb2spec/lut"
	"github.com/kovidgoyal/rgb2spec/srgb"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type PreviewCmd struct {
	Table  string `short:"t" required:"" type:"existingfile" help:"Coefficient table created by the bake command"`
	Input  string `arg:"" type:"existingfile" help:"Image to upsample"`
	Output string `arg:"" type:"path" help:"PNG file to write the re-rendered image to"`
}

func decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode image %q: %w", path, err)
	}
	return img, nil
}

// render converts every pixel of img to a spectrum using table, integrates
// it under the solver's illuminant and converts back to cs. Returns the
// re-rendered image and the colour difference of every row.
func render(img image.Image, table *lut.Interpolator, s *rgb2spec.Solver, cs *colorimetry.RGBColourspace) (*image.NRGBA, []float64, error) {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	row_errors := make([]float64, b.Dy())
	shape := s.Shape()
	err := parallel.Run_in_parallel_over_range(0, func(start, limit int) {
		for y := start; y < limit; y++ {
			total := 0.0
			for x := range b.Dx() {
				c := color.NRGBA64Model.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA64)
				rgb := colorimetry.Vec3{srgb.From16Bit(c.R), srgb.From16Bit(c.G), srgb.From16Bit(c.B)}
				xyz, err := colorimetry.SDToXYZ(table.ToSpectrum(rgb, shape), s.CMFS, s.Illuminant)
				if err != nil {
					panic(err)
				}
				total += colorimetry.DeltaE76(s.RGBToLab(rgb, cs), colorimetry.XYZToLab(xyz, s.IlluminantXY))
				r := cs.XYZToRGB(xyz, s.IlluminantXY)
				out.SetNRGBA(x, y, color.NRGBA{srgb.To8Bit(r[0]), srgb.To8Bit(r[1]), srgb.To8Bit(r[2]), uint8(c.A >> 8)})
			}
			row_errors[y] = total
		}
	}, 0, b.Dy())
	if err != nil {
		return nil, nil, err
	}
	return out, row_errors, nil
}

func (c *PreviewCmd) Run(g *Globals, logger *slog.Logger) (err error) {
	cs, err := g.colourspace()
	if err != nil {
		return err
	}
	s, err := g.solver(logger)
	if err != nil {
		return err
	}
	table, err := lut.Load(c.Table)
	if err != nil {
		return err
	}
	img, err := decode(c.Input)
	if err != nil {
		return err
	}
	out, row_errors, err := render(img, table, s, cs)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(c.Output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o666)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err = png.Encode(f, out); err != nil {
		return err
	}
	total := 0.0
	for _, e := range row_errors {
		total += e
	}
	n := img.Bounds().Dx() * img.Bounds().Dy()
	logger.Info("preview written", "path", c.Output, "pixels", n, "mean_delta_e", total/float64(max(n, 1)))
	return nil
}
