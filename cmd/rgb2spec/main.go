package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/kovidgoyal/rgb2spec"
	"github.com/kovidgoyal/rgb2spec/colorimetry"
	"github.com/kovidgoyal/rgb2spec/srgb"
)

var _ = fmt.Print

type Globals struct {
	Verbose     bool             `short:"v" help:"Log solver diagnostics"`
	Colourspace string           `short:"c" default:"sRGB" help:"RGB colourspace of the input values, one of: ${colourspaces}"`
	Version     kong.VersionFlag `help:"Print the version and exit"`
}

func (g *Globals) logger() *slog.Logger {
	level := slog.LevelInfo
	if g.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func (g *Globals) colourspace() (*colorimetry.RGBColourspace, error) {
	return colorimetry.Colourspace(g.Colourspace)
}

func (g *Globals) solver(logger *slog.Logger) (*rgb2spec.Solver, error) {
	return rgb2spec.NewSolver(rgb2spec.DefaultCMFS(), rgb2spec.DefaultIlluminant(), logger)
}

// RGB is a colour given on the command line.
type RGB struct {
	Values  []float64 `arg:"" name:"rgb" help:"Red, green and blue components"`
	Encoded bool      `short:"e" help:"The components are transfer function encoded, in [0, 1], rather than linear"`
}

func (r *RGB) Validate() error {
	if len(r.Values) != 3 {
		return fmt.Errorf("expected three colour components, got %d", len(r.Values))
	}
	return nil
}

func (r *RGB) linear() (ans colorimetry.Vec3) {
	for i, v := range r.Values[:3] {
		if r.Encoded {
			v = srgb.EncodedToLinear(v)
		}
		ans[i] = v
	}
	return
}

func print_spectrum(sd *colorimetry.SpectralDistribution) {
	fmt.Println("wavelength,reflectance")
	for i, wl := range sd.Wavelengths() {
		fmt.Printf("%g,%.6f\n", wl, sd.Values[i])
	}
}

type CLI struct {
	Globals

	Recover RecoverCmd `cmd:"" help:"Find the reflectance spectrum of a colour by optimisation"`
	Bake    BakeCmd    `cmd:"" help:"Precompute a coefficient table for fast lookups"`
	Lookup  LookupCmd  `cmd:"" help:"Find the reflectance spectrum of a colour using a coefficient table"`
	Preview PreviewCmd `cmd:"" help:"Re-render an image through its upsampled spectra"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("rgb2spec"),
		kong.Description("Convert RGB colours to smooth reflectance spectra"),
		kong.UsageOnError(),
		kong.Vars{
			"version":      rgb2spec.Version.String(),
			"colourspaces": strings.Join(colorimetry.ColourspaceNames(), ", "),
		},
	)
	logger := cli.Globals.logger()
	slog.SetDefault(logger)
	if err := ctx.Run(&cli.Globals, logger); err != nil {
		logger.Error("failed", "command", ctx.Command(), "error", err)
		os.Exit(1)
	}
}
