// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for plugsh.
//
// Configuration comes from three layers, later layers winning:
//   - Built-in defaults
//   - config.toml in the working directory, when present
//   - Environment variable overrides
//
// The loaded Config is constructed once in main and passed by reference
// into the components that need it; there is no package-level singleton.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultPath is the config file looked for in the working directory.
const DefaultPath = "config.toml"

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete plugsh configuration.
type Config struct {
	// Environment names the deployment environment. The ENVIRONMENT
	// variable wins over a file-configured value; "PRODUCTION" is the
	// default when neither is set.
	Environment string `toml:"environment"`

	// Plugins configures plugin discovery.
	Plugins PluginsConfig `toml:"plugins"`

	// Logging configures the log sink.
	Logging LoggingConfig `toml:"logging"`

	// History configures the dispatch history store.
	History HistoryConfig `toml:"history"`

	// Settings is a read-only snapshot of the whole process environment,
	// captured when the config is loaded.
	Settings map[string]string `toml:"-"`
}

// PluginsConfig contains plugin discovery configuration.
type PluginsConfig struct {
	// Dir is the plugin root scanned at startup.
	Dir string `toml:"dir"`
}

// LoggingConfig contains log sink configuration.
type LoggingConfig struct {
	// Level is the minimum severity: debug, info, warn, error.
	Level string `toml:"level"`
	// Dir is the log directory, created on demand when File is set.
	Dir string `toml:"dir"`
	// File is the log file name inside Dir. Empty logs to the console.
	File string `toml:"file"`
}

// HistoryConfig contains dispatch history configuration.
type HistoryConfig struct {
	// Enabled turns dispatch history recording on.
	Enabled bool `toml:"enabled"`
	// Path is the history database file.
	Path string `toml:"path"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with built-in default values.
func Default() *Config {
	return &Config{
		Environment: "PRODUCTION",

		Plugins: PluginsConfig{
			Dir: "app/plugins",
		},

		Logging: LoggingConfig{
			Level: "info",
			Dir:   "logs",
		},

		History: HistoryConfig{
			Enabled: true,
			Path:    "plugsh_history.db",
		},
	}
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from config.toml in the working directory when
// present, falling back to defaults, then captures the process environment
// and applies overrides. A malformed config file is reported via the
// returned error alongside a usable default config, so callers can degrade
// instead of aborting.
func Load() (*Config, error) {
	return LoadFromPath(DefaultPath)
}

// LoadFromPath is Load with an explicit config file location.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	var loadErr error

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			cfg = Default()
			loadErr = fmt.Errorf("failed to decode %s: %w", path, err)
		}
	}

	cfg.captureEnvironment()
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, loadErr
}

// captureEnvironment snapshots every environment variable into Settings and
// resolves the effective environment name. The ENVIRONMENT variable wins
// over a file-configured value, which wins over the PRODUCTION default.
func (c *Config) captureEnvironment() {
	c.Settings = make(map[string]string)
	for _, kv := range os.Environ() {
		if key, value, ok := strings.Cut(kv, "="); ok {
			c.Settings[key] = value
		}
	}
	if env, ok := c.Settings["ENVIRONMENT"]; ok && env != "" {
		c.Environment = env
	}
	if c.Environment == "" {
		c.Environment = "PRODUCTION"
	}
	// Settings reflects the resolved value, not just the raw variable.
	c.Settings["ENVIRONMENT"] = c.Environment
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - PLUGSH_PLUGINS_DIR: overrides plugins.dir
//   - PLUGSH_LOG_LEVEL: overrides logging.level
//   - PLUGSH_LOG_FILE: overrides logging.file
//   - PLUGSH_HISTORY_PATH: overrides history.path
func (c *Config) ApplyEnvOverrides() {
	if dir := os.Getenv("PLUGSH_PLUGINS_DIR"); dir != "" {
		c.Plugins.Dir = dir
	}
	if level := os.Getenv("PLUGSH_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if file := os.Getenv("PLUGSH_LOG_FILE"); file != "" {
		c.Logging.File = file
	}
	if path := os.Getenv("PLUGSH_HISTORY_PATH"); path != "" {
		c.History.Path = path
	}
}

// =============================================================================
// DEFAULTS AND VALIDATION
// =============================================================================

// SetDefaults fills any missing values with defaults.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Environment == "" {
		c.Environment = defaults.Environment
	}
	if c.Plugins.Dir == "" {
		c.Plugins.Dir = defaults.Plugins.Dir
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}
	if c.Logging.Dir == "" {
		c.Logging.Dir = defaults.Logging.Dir
	}
	if c.History.Path == "" {
		c.History.Path = defaults.History.Path
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("invalid level %q, must be one of: debug, info, warn, error", c.Logging.Level),
		}
	}

	if c.History.Enabled && c.History.Path == "" {
		return ValidationError{
			Field:   "history.path",
			Message: "must be set when history is enabled",
		}
	}

	return nil
}
