package main

import (
	"fmt"
	"log/slog"

	"github.com/kovidgoyal/rgb2spec"
)

type RecoverCmd struct {
	RGB
	NoFeedback bool `help:"Solve for the colour directly instead of walking the lightness scale towards it"`
	Steps      int  `default:"64" help:"Length of the lightness scale walked towards the colour"`
	Spectrum   bool `short:"s" help:"Print the recovered spectrum as CSV"`
}

func (c *RecoverCmd) Run(g *Globals, logger *slog.Logger) error {
	cs, err := g.colourspace()
	if err != nil {
		return err
	}
	s, err := g.solver(logger)
	if err != nil {
		return err
	}
	rgb := c.linear()
	coeffs, delta := s.FindCoefficients(rgb, cs, rgb2spec.UseFeedback(!c.NoFeedback), rgb2spec.LightnessSteps(c.Steps))
	logger.Info("recovered", "colourspace", cs.Name, "rgb", rgb, "delta_e", delta)
	fmt.Println("coefficients:", coeffs)
	fmt.Printf("delta E: %g\n", delta)
	if c.Spectrum {
		print_spectrum(rgb2spec.Model(coeffs, s.Shape()))
	}
	return nil
}
