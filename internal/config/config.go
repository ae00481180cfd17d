// Package config resolves client settings from the config env file and
// DEALFINDER_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

const (
	AppName     = "dealfinder"
	EnvFileName = "config.env"
	EnvPrefix   = "DEALFINDER"
)

type Config struct {
	BaseURL        string        `mapstructure:"base_url"`
	DBPath         string        `mapstructure:"db_path"`
	StateKey       string        `mapstructure:"state_key"`
	LogFile        string        `mapstructure:"log_file"`
	LogLevel       string        `mapstructure:"log_level"`
	SuggestDelay   time.Duration `mapstructure:"suggest_delay"`
	WatchSchedule  string        `mapstructure:"watch_schedule"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// Dir returns the per-user config directory for the client.
// Uses $XDG_CONFIG_HOME/dealfinder when set.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	base, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", AppName)
	}
	return filepath.Join(base, AppName)
}

// EnsureDir creates the config directory if it doesn't exist.
func EnsureDir() error {
	return os.MkdirAll(Dir(), 0700)
}

// LoadEnvFile loads environment variables from the config file in the user's
// config directory. Errors are ignored since the file may not exist.
func LoadEnvFile() {
	_ = godotenv.Load(filepath.Join(Dir(), EnvFileName))
}

// Load reads the env file and then the environment. Variables already set in
// the environment win over the file.
func Load() (*Config, error) {
	LoadEnvFile()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	setDefaults(v)

	// AutomaticEnv only covers keys viper already knows about
	for _, key := range []string{"base_url", "db_path", "state_key", "log_file", "log_level", "suggest_delay", "watch_schedule", "request_timeout"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("base_url", "http://localhost:5000")
	v.SetDefault("db_path", filepath.Join(Dir(), "state.db"))
	v.SetDefault("state_key", "")
	v.SetDefault("log_file", "dealfinder.log")
	v.SetDefault("log_level", "info")
	v.SetDefault("suggest_delay", "300ms")
	v.SetDefault("watch_schedule", "@every 30m")
	v.SetDefault("request_timeout", "0s")
}

func (c *Config) validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%s_BASE_URL must not be empty", EnvPrefix)
	}
	if c.SuggestDelay < 0 {
		return fmt.Errorf("%s_SUGGEST_DELAY must not be negative", EnvPrefix)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("%s_REQUEST_TIMEOUT must not be negative", EnvPrefix)
	}
	if _, err := cron.ParseStandard(c.WatchSchedule); err != nil {
		return fmt.Errorf("invalid %s_WATCH_SCHEDULE %q: %w", EnvPrefix, c.WatchSchedule, err)
	}
	return nil
}
