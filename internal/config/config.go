// Package config loads wellness configuration.
//
// Sources are applied in order, later ones winning:
//  1. Built-in defaults
//  2. The TOML config file (~/.config/wellness/config.toml)
//  3. A .env file in the working directory (never overrides the real environment)
//  4. WELLNESS_* environment variables
//
// Command-line flags are applied on top through LoadOptions.Overrides, before
// the result is validated.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/tessro/wellness/internal/paths"
	"github.com/tessro/wellness/internal/preset"
)

// Defaults.
const (
	DefaultEndpoint = "http://127.0.0.1:8000"
	DefaultLogLevel = "info"
	DefaultEnvFile  = ".env"
)

// Config is the effective client configuration.
type Config struct {
	// Endpoint is the base URL of the chat service; requests go to Endpoint + "/api/chat".
	Endpoint string `toml:"endpoint" envconfig:"WELLNESS_ENDPOINT"`

	// RequestTimeout bounds each chat request. Zero waits indefinitely.
	RequestTimeout time.Duration `toml:"request_timeout" envconfig:"WELLNESS_REQUEST_TIMEOUT"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level" envconfig:"WELLNESS_LOG_LEVEL"`

	// LogFile overrides the log file location.
	LogFile string `toml:"log_file,omitempty" envconfig:"WELLNESS_LOG_FILE"`

	// PresetsFile points at a YAML preset catalog replacing the built-in one.
	PresetsFile string `toml:"presets_file,omitempty" envconfig:"WELLNESS_PRESETS_FILE"`
}

// LoadOptions controls where Load reads from.
type LoadOptions struct {
	// Path is the TOML file. Empty uses paths.ConfigPath().
	Path string
	// EnvFile is the dotenv file. Empty uses DefaultEnvFile; "-" disables it.
	EnvFile string
	// Overrides runs after every other source and before validation.
	Overrides func(*Config)
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Endpoint: DefaultEndpoint,
		LogLevel: DefaultLogLevel,
	}
}

// Load reads configuration from the default locations.
func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{})
}

// LoadWithOptions reads configuration from the given locations and validates it.
// A missing config file or dotenv file is not an error.
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	cfg := Default()

	path := opts.Path
	if path == "" {
		p, err := paths.ConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if envFile != "-" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	if opts.Overrides != nil {
		opts.Overrides(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile merges the TOML file at path into c.
func (c *Config) loadFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("config: no config file", "path", path)
			return nil
		}
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		slog.Warn("config: unknown keys ignored", "path", path, "keys", fmt.Sprint(undecoded))
	}
	return nil
}

// Encode writes the configuration as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// GetLogLevel returns the configured log level or the default.
func (c *Config) GetLogLevel() string {
	if c != nil && c.LogLevel != "" {
		return c.LogLevel
	}
	return DefaultLogLevel
}

// GetEndpoint returns the configured endpoint or the default.
func (c *Config) GetEndpoint() string {
	if c != nil && c.Endpoint != "" {
		return c.Endpoint
	}
	return DefaultEndpoint
}

// LoadPresets returns the preset catalog: PresetsFile if set, otherwise
// paths.PresetsPath() if that file exists, otherwise the built-in catalog.
func (c *Config) LoadPresets() (preset.Catalog, error) {
	if c != nil && c.PresetsFile != "" {
		return preset.LoadFile(c.PresetsFile)
	}
	path, err := paths.PresetsPath()
	if err != nil {
		return preset.Default(), nil
	}
	if _, err := os.Stat(path); err != nil {
		return preset.Default(), nil
	}
	return preset.LoadFile(path)
}
