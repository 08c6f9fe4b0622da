package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.Equal(t, 20, cfg.Arena.RoundsPerMatch)
	assert.Equal(t, time.Hour, cfg.Arena.TournamentInterval)
	assert.Zero(t, cfg.Arena.RandomSeed)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
logger:
  level: debug
  format: json
arena:
  rounds_per_match: 50
  tournament_interval: 10m
  random_seed: 1234
database:
  url: postgres://db.internal:5432/arena
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Equal(t, 50, cfg.Arena.RoundsPerMatch)
	assert.Equal(t, 10*time.Minute, cfg.Arena.TournamentInterval)
	assert.Equal(t, int64(1234), cfg.Arena.RandomSeed)
	assert.Equal(t, "postgres://db.internal:5432/arena", cfg.Database.URL)
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoadWithoutConfigFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Arena.RoundsPerMatch)
	assert.Equal(t, "console", cfg.Logger.Format)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing database url", func(c *Config) { c.Database.URL = "" }},
		{"zero rounds", func(c *Config) { c.Arena.RoundsPerMatch = 0 }},
		{"negative interval", func(c *Config) { c.Arena.TournamentInterval = -time.Second }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
