package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// EnvDBPath overrides the default database path
	EnvDBPath = "LEXICA_DB_PATH"

	DefaultDBPath   = "lexica.sqlite3"
	DefaultFile     = "lexica.yaml"
	DefaultLimit    = 10
	DefaultLogLevel = "warn"
)

// Config holds the settings shared by all commands. Command line flags take
// precedence over it.
type Config struct {
	DBPath   string `yaml:"db_path"`
	Table    string `yaml:"table"`
	Limit    int    `yaml:"limit"`
	Color    bool   `yaml:"color"`
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	dbPath := DefaultDBPath
	if p := os.Getenv(EnvDBPath); p != "" {
		dbPath = p
	}

	return Config{
		DBPath:   dbPath,
		Limit:    DefaultLimit,
		Color:    true,
		LogLevel: DefaultLogLevel,
	}
}

// Load reads the YAML file at path over the defaults. A missing file is not
// an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Limit <= 0 {
		return cfg, fmt.Errorf("config %s: limit must be positive, got %d", path, cfg.Limit)
	}

	return cfg, nil
}
