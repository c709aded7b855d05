package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/lexica/query"
	"github.com/revelaction/lexica/render"
)

func queryCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:    "query",
		Aliases: []string{"q"},
		Usage:   "interactive prompt: complete word forms and print their verses",
		Flags: []cli.Flag{
			noPrefixFlag(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   render.Defaultformat,
				Usage:   "initial verse format: all or ref",
			},
		},
		Action: func(c *cli.Context) error {
			format := c.String("format")
			if !slices.Contains(render.SupportedFormats(), format) {
				return fmt.Errorf("unknown format %q, allowed values are %s", format, strings.Join(render.SupportedFormats(), ", "))
			}

			s, err := e.newSearch(e.ui.Progress)
			if err != nil {
				return err
			}

			r := render.NewRenderer()
			r.Out = e.ui.Out
			r.HasColor = e.cfg.Color
			r.HasPrefix = !c.Bool("no-prefix")
			r.Format = format

			// now present the REPL
			h := query.NewHandler(s, r)
			h.Out = e.ui.Out
			return h.Run()
		},
	}
}
