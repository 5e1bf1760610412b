// Package config resolves grindfit settings from defaults, the TOML config
// file, an optional .env file and the process environment, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/alexanderramin/grindfit/internal/llm"
)

type Config struct {
	Database DatabaseConfig `toml:"database"`
	Log      LogConfig      `toml:"log"`
	LLM      LLMSection     `toml:"llm"`

	lookup func(string) (string, bool)
}

type DatabaseConfig struct {
	Path      string `toml:"path"`
	URL       string `toml:"url"`        // libsql:// or https:// for a remote store
	AuthToken string `toml:"auth_token"` // remote store only
}

type LogConfig struct {
	Level string `toml:"level"`
}

// LLMSection mirrors llm.LLMConfig. Pointer fields distinguish "unset" from
// an explicit zero value in the file.
type LLMSection struct {
	Enabled       *bool  `toml:"enabled"`
	LogCalls      *bool  `toml:"log_calls"`
	Endpoint      string `toml:"endpoint"`
	Model         string `toml:"model"`
	APIKey        string `toml:"api_key"`
	TimeoutMs     int    `toml:"timeout_ms"`
	MaxRetries    *int   `toml:"max_retries"`
	PlanTimeoutMs int    `toml:"plan_timeout_ms"`
	IconTimeoutMs int    `toml:"icon_timeout_ms"`
}

// Options locate the inputs of Load. Empty paths are skipped.
type Options struct {
	ConfigPath string
	EnvFile    string
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// DefaultOptions uses ~/.config/grindfit/config.toml and ./.env.
func DefaultOptions() Options {
	opts := Options{EnvFile: ".env", LookupEnv: os.LookupEnv}
	if home, err := os.UserHomeDir(); err == nil {
		opts.ConfigPath = filepath.Join(home, ".config", "grindfit", "config.toml")
	}
	return opts
}

func defaults() *Config {
	cfg := &Config{Log: LogConfig{Level: "warn"}}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.Database.Path = filepath.Join(home, ".grindfit", "grindfit.db")
	} else {
		cfg.Database.Path = "grindfit.db"
	}
	return cfg
}

// Load resolves the configuration. A missing config or .env file is not an
// error; a malformed one is.
func Load(opts Options) (*Config, error) {
	cfg := defaults()

	if opts.ConfigPath != "" {
		if _, err := toml.DecodeFile(opts.ConfigPath, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config file %s: %w", opts.ConfigPath, err)
		}
	}

	dotenv := map[string]string{}
	if opts.EnvFile != "" {
		vals, err := godotenv.Read(opts.EnvFile)
		switch {
		case err == nil:
			dotenv = vals
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("reading env file %s: %w", opts.EnvFile, err)
		}
	}

	processEnv := opts.LookupEnv
	if processEnv == nil {
		processEnv = os.LookupEnv
	}
	cfg.lookup = func(key string) (string, bool) {
		if v, ok := processEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	if v, ok := cfg.lookup("GRINDFIT_DB"); ok && v != "" {
		cfg.Database.Path = v
	}
	if v, ok := cfg.lookup("GRINDFIT_DATABASE_URL"); ok {
		cfg.Database.URL = v
	}
	if v, ok := cfg.lookup("GRINDFIT_DATABASE_AUTH_TOKEN"); ok {
		cfg.Database.AuthToken = v
	}
	if v, ok := cfg.lookup("GRINDFIT_LOG_LEVEL"); ok && v != "" {
		cfg.Log.Level = v
	}
	if _, err := parseLevel(cfg.Log.Level); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Remote reports whether a libSQL database URL is configured.
func (c *Config) Remote() bool {
	return strings.TrimSpace(c.Database.URL) != ""
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() slog.Level {
	lvl, _ := parseLevel(c.Log.Level)
	return lvl
}

// LLMConfig layers the file's [llm] section and GRINDFIT_LLM_* variables
// over llm.DefaultConfig.
func (c *Config) LLMConfig() llm.LLMConfig {
	out := llm.DefaultConfig()
	s := c.LLM
	if s.Enabled != nil {
		out.Enabled = *s.Enabled
	}
	if s.LogCalls != nil {
		out.LogCalls = *s.LogCalls
	}
	if s.Endpoint != "" {
		out.Endpoint = s.Endpoint
	}
	if s.Model != "" {
		out.Model = s.Model
	}
	if s.APIKey != "" {
		out.APIKey = s.APIKey
	}
	if s.TimeoutMs > 0 {
		out.TimeoutMs = s.TimeoutMs
	}
	if s.MaxRetries != nil && *s.MaxRetries >= 0 {
		out.MaxRetries = *s.MaxRetries
	}
	out.SetTaskTimeout(llm.TaskPlan, s.PlanTimeoutMs)
	out.SetTaskTimeout(llm.TaskIcon, s.IconTimeoutMs)

	lookup := c.lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	out.ApplyEnv(lookup)
	return out
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelWarn, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return lvl, nil
}
