package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/lexica/config"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer

	// Progress enables the progress bars on stdout
	Progress bool
}

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr, Progress: true}

	if err := newApp(ui).Run(os.Args); err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "lexica: %v\n", err)
}

// env is the state shared by the commands, filled by the Before hook.
type env struct {
	ui     UI
	cfg    config.Config
	logger *slog.Logger
	pool   *Pool
}

func newApp(ui UI) *cli.App {
	e := &env{ui: ui, pool: &Pool{}}

	return &cli.App{
		Name:                 "lexica",
		Usage:                "diacritic-insensitive search of the Greek New Testament",
		Writer:               ui.Out,
		ErrWriter:            ui.Err,
		HideVersion:          true,
		EnableBashCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "SQLite database, TSV corpus file or directory of TSV files",
				EnvVars: []string{config.EnvDBPath},
			},
			&cli.StringFlag{
				Name:  "config",
				Value: config.DefaultFile,
				Usage: "YAML configuration file",
			},
			&cli.StringFlag{
				Name:  "table",
				Usage: "token table of the SQLite database",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "maximum number of word forms suggested",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "do not highlight matches",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
		},
		Before: e.setup,
		After: func(c *cli.Context) error {
			return e.pool.Close()
		},
		Commands: []*cli.Command{
			wordsCommand(e),
			versesCommand(e),
			queryCommand(e),
			importCommand(e),
			migrateCommand(e),
			checkCommand(e),
			statCommand(e),
			mcpCommand(e),
			bashCommand(e),
			versionCommand(e),
		},
	}
}

// setup loads the configuration file and applies the global flags over it.
func (e *env) setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	if c.IsSet("db") {
		cfg.DBPath = c.String("db")
	}
	if c.IsSet("table") {
		cfg.Table = c.String("table")
	}
	if c.IsSet("limit") {
		if c.Int("limit") <= 0 {
			return fmt.Errorf("--limit must be positive, got %d", c.Int("limit"))
		}
		cfg.Limit = c.Int("limit")
	}
	if c.Bool("no-color") {
		cfg.Color = false
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}

	e.cfg = cfg
	e.logger = slog.New(slog.NewTextHandler(e.ui.Err, &slog.HandlerOptions{Level: level}))
	e.logger.Debug("configuration", "db", cfg.DBPath, "table", cfg.Table, "limit", cfg.Limit)
	return nil
}
