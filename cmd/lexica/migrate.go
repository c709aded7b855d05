package main

import (
	"fmt"
	"strings"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"
)

func migrateCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "add the text_nfd column if missing and fill it from the normalized column",
		Action: func(c *cli.Context) error {
			store, err := e.sqliteTarget(false)
			if err != nil {
				return err
			}

			var cb func(current, total int)
			if e.ui.Progress {
				uiprogress.Start()
				bar := uiprogress.AddBar(1) // Placeholder, updated in callback
				bar.AppendCompleted()
				bar.PrependElapsed()

				cb = func(current, total int) {
					if bar.Total != total {
						bar.Total = total
					}
					_ = bar.Set(current)
				}
			}

			n, err := store.Migrate(cb)
			if e.ui.Progress {
				uiprogress.Stop()
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(e.ui.Out, "Updated %d rows of %s\n", n, store.Table())
			return nil
		},
	}
}

func checkCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "report the rows whose text_nfd does not match their normalized column",
		Action: func(c *cli.Context) error {
			store, err := e.sqliteTarget(false)
			if err != nil {
				return err
			}

			res, err := store.Check()
			if err != nil {
				return err
			}

			fmt.Fprintf(e.ui.Out, "%d rows, %d stale\n", res.Rows, res.Stale)
			if res.Stale == 0 {
				return nil
			}

			fmt.Fprintf(e.ui.Out, "  %s\n", strings.Join(res.Ids, "\n  "))
			return fmt.Errorf("%d stale rows in %s, run lexica migrate", res.Stale, store.Table())
		},
	}
}
