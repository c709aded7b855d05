package main

import (
	"fmt"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/lexica/storage/filesystem"
	"github.com/revelaction/lexica/storage/sqlite/zombiezen"
)

// importBatch is the number of tokens written per transaction
const importBatch = 5000

func importCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "create the token table of the SQLite database from a TSV corpus",
		ArgsUsage: "<tsv>",
		Action: func(c *cli.Context) error {
			from, err := argument(c, "import")
			if err != nil {
				return err
			}

			tokens, err := filesystem.ReadFile(from)
			if err != nil {
				return err
			}

			dst, err := e.sqliteTarget(true)
			if err != nil {
				return err
			}

			pool, err := e.pool.Open(e.cfg.DBPath)
			if err != nil {
				return err
			}

			if err := zombiezen.CreateSchema(pool, "tokens.sql", dst.Table()); err != nil {
				return fmt.Errorf("failed to create token table: %w", err)
			}

			fmt.Fprintf(e.ui.Out, "Reading tokens from %s...\n", from)

			var bar *uiprogress.Bar
			if e.ui.Progress {
				uiprogress.Start()
				bar = uiprogress.AddBar(len(tokens))
				bar.AppendCompleted()
				bar.PrependElapsed()
			}

			for start := 0; start < len(tokens); start += importBatch {
				end := min(start+importBatch, len(tokens))
				if err := dst.Write(tokens[start:end]); err != nil {
					if bar != nil {
						uiprogress.Stop()
					}
					return fmt.Errorf("failed to write tokens %s to %s: %w", tokens[start].Id, tokens[end-1].Id, err)
				}

				if bar != nil {
					_ = bar.Set(end)
				}
			}

			if bar != nil {
				uiprogress.Stop()
			}

			e.logger.Info("import done", "from", from, "table", dst.Table(), "tokens", len(tokens))
			fmt.Fprintf(e.ui.Out, "Successfully imported %d tokens from %s to %s\n", len(tokens), from, e.cfg.DBPath)
			return nil
		},
	}
}
