package main

import (
	"fmt"
	"log/slog"

	"github.com/kovidgoyal/rgb2spec"
	"github.com/kovidgoyal/rgb2spec/lut"
)

type LookupCmd struct {
	RGB
	Table    string `short:"t" required:"" type:"existingfile" help:"Coefficient table created by the bake command"`
	Spectrum bool   `short:"s" help:"Print the spectrum as CSV"`
}

func (c *LookupCmd) Run(g *Globals, logger *slog.Logger) error {
	table, err := lut.Load(c.Table)
	if err != nil {
		return err
	}
	logger.Debug("loaded table", "path", c.Table, "table", table.String())
	rgb := c.linear()
	coeffs := table.Coefficients(rgb)
	fmt.Println("coefficients:", coeffs)
	if c.Spectrum {
		print_spectrum(rgb2spec.Model(coeffs, rgb2spec.DefaultShape))
	}
	return nil
}
