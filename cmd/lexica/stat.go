package main

import (
	"fmt"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/lexica/stat"
	"github.com/revelaction/lexica/verse"
)

func statCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "stat",
		Usage:     "print statistics of the verses containing a word",
		ArgsUsage: "<word>",
		Action: func(c *cli.Context) error {
			word, err := argument(c, "stat")
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

			verses := make([]verse.Verse, len(hits))
			for i, h := range hits {
				verses[i] = h.Verse
			}

			hdl := stat.NewHandler()
			hdl.Aggregate(verses)

			stats := hdl.Get()
			fmt.Fprintf(e.ui.Out, "Num verses %d, num tokens per verse %d\n", stats.NumVerses, stats.TokensPerVerseMean)

			books := make([]string, 0, len(stats.Books))
			for b := range stats.Books {
				books = append(books, b)
			}
			sort.Strings(books)
			fmt.Fprintln(e.ui.Out, "Verses per book")
			for _, b := range books {
				fmt.Fprintf(e.ui.Out, "  %s %d\n", b, stats.Books[b])
			}

			lengths := make([]int, 0, len(stats.TokensPerVerseDis))
			for n := range stats.TokensPerVerseDis {
				lengths = append(lengths, n)
			}
			sort.Ints(lengths)
			fmt.Fprintln(e.ui.Out, "Verses per number of tokens")
			for _, n := range lengths {
				fmt.Fprintf(e.ui.Out, "  %d %d\n", n, stats.TokensPerVerseDis[n])
			}

			return nil
		},
	}
}
