package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lexica.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv(EnvDBPath, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Config{
		DBPath:   DefaultDBPath,
		Limit:    DefaultLimit,
		Color:    true,
		LogLevel: DefaultLogLevel,
	}, cfg)
}

func TestLoadEnvDBPath(t *testing.T) {
	t.Setenv(EnvDBPath, "/data/sblgnt.sqlite3")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "/data/sblgnt.sqlite3", cfg.DBPath)
}

func TestLoadOverridesDefaults(t *testing.T) {
	t.Setenv(EnvDBPath, "")

	path := write(t, "db_path: nt.sqlite3\ntable: tokens\nlimit: 5\ncolor: false\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "nt.sqlite3", cfg.DBPath)
	assert.Equal(t, "tokens", cfg.Table)
	assert.Equal(t, 5, cfg.Limit)
	assert.False(t, cfg.Color)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
}

func TestLoadInvalid(t *testing.T) {
	_, err := Load(write(t, "limit: [1, 2"))
	assert.Error(t, err)

	_, err = Load(write(t, "limit: 0\n"))
	assert.ErrorContains(t, err, "limit must be positive")
}
