package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000", cfg.BaseURL)
	assert.Equal(t, filepath.Join(Dir(), "state.db"), cfg.DBPath)
	assert.Empty(t, cfg.StateKey)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 300*time.Millisecond, cfg.SuggestDelay)
	assert.Equal(t, "@every 30m", cfg.WatchSchedule)
	assert.Zero(t, cfg.RequestTimeout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("DEALFINDER_BASE_URL", "https://deals.example.com")
	t.Setenv("DEALFINDER_STATE_KEY", "hunter2")
	t.Setenv("DEALFINDER_SUGGEST_DELAY", "150ms")
	t.Setenv("DEALFINDER_WATCH_SCHEDULE", "0 9 * * *")
	t.Setenv("DEALFINDER_REQUEST_TIMEOUT", "20s")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "https://deals.example.com", cfg.BaseURL)
	assert.Equal(t, "hunter2", cfg.StateKey)
	assert.Equal(t, 150*time.Millisecond, cfg.SuggestDelay)
	assert.Equal(t, "0 9 * * *", cfg.WatchSchedule)
	assert.Equal(t, 20*time.Second, cfg.RequestTimeout)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, EnsureDir())
	require.NoError(t, os.WriteFile(filepath.Join(Dir(), EnvFileName), []byte("DEALFINDER_LOG_LEVEL=debug\n"), 0600))
	t.Cleanup(func() { os.Unsetenv("DEALFINDER_LOG_LEVEL") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, filepath.Join(dir, AppName), Dir())
}

func TestLoad_InvalidSchedule(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("DEALFINDER_WATCH_SCHEDULE", "whenever")

	_, err := load(viper.New())
	assert.ErrorContains(t, err, "WATCH_SCHEDULE")
}
