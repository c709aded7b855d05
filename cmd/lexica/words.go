package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/lexica/render"
)

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "output format: text, ref or json",
	}
}

func noPrefixFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "no-prefix",
		Usage: "do not print headers and verse references before the text",
	}
}

// output returns the renderer for the command format flags.
func (e *env) output(c *cli.Context) (render.Output, error) {
	format := c.String("format")
	switch format {
	case "json":
		return render.NewJSONRenderer(e.ui.Out), nil
	case "text", "ref":
	default:
		return nil, fmt.Errorf("unknown format %q, allowed values are text, ref, json", format)
	}

	r := render.NewRenderer()
	r.Out = e.ui.Out
	r.HasColor = e.cfg.Color
	r.HasPrefix = !c.Bool("no-prefix")
	if format == "ref" {
		r.Format = "ref"
	}
	return r, nil
}

// argument returns the single positional argument of a command.
func argument(c *cli.Context, name string) (string, error) {
	if c.NArg() != 1 {
		return "", fmt.Errorf("%s requires exactly one argument", name)
	}

	arg := strings.TrimSpace(c.Args().First())
	if arg == "" {
		return "", errors.New("empty argument")
	}
	return arg, nil
}

func wordsCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "words",
		Aliases:   []string{"w"},
		Usage:     "list the word forms containing a partial word, ignoring case and diacritics",
		ArgsUsage: "<partial>",
		Flags:     []cli.Flag{formatFlag(), noPrefixFlag()},
		Action: func(c *cli.Context) error {
			partial, err := argument(c, "words")
			if err != nil {
				return err
			}

			out, err := e.output(c)
			if err != nil {
				return err
			}

			s, err := e.newSearch(e.ui.Progress)
			if err != nil {
				return err
			}

			words, err := s.Words(partial)
			if err != nil {
				return err
			}

			return out.Words(partial, words)
		},
	}
}

func versesCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "verses",
		Aliases:   []string{"v"},
		Usage:     "print the verses containing a word, with every form of the word highlighted",
		ArgsUsage: "<word>",
		Flags:     []cli.Flag{formatFlag(), noPrefixFlag()},
		Action: func(c *cli.Context) error {
			word, err := argument(c, "verses")
			if err != nil {
				return err
			}

			out, err := e.output(c)
			if err != nil {
				return err
			}

			s, err := e.newSearch(e.ui.Progress)
			if err != nil {
				return err
			}

			hits, err := s.Verses(word)
			if err != nil {
				return err
			}

			return out.Verses(word, hits)
		},
	}
}
