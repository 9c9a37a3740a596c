package main

import (
	"log/slog"
	"time"

	"github.com/kovidgoyal/rgb2spec/lut"
)

type BakeCmd struct {
	Resolution int    `short:"r" default:"64" help:"Number of samples along each table axis"`
	Output     string `short:"o" required:"" type:"path" help:"File to write the table to"`
}

func (c *BakeCmd) Run(g *Globals, logger *slog.Logger) error {
	cs, err := g.colourspace()
	if err != nil {
		return err
	}
	s, err := g.solver(logger)
	if err != nil {
		return err
	}
	st := time.Now()
	table, err := lut.Bake(s, cs, c.Resolution, func(done, total int) {
		logger.Debug("baking", "rows", done, "of", total)
	})
	if err != nil {
		return err
	}
	if err = table.Save(c.Output); err != nil {
		return err
	}
	logger.Info("table written", "path", c.Output, "colourspace", cs.Name, "resolution", c.Resolution, "time", time.Since(st))
	return nil
}
