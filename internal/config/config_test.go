// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "PRODUCTION", cfg.Environment)
	assert.Equal(t, "app/plugins", cfg.Plugins.Dir)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "logs", cfg.Logging.Dir)
	assert.True(t, cfg.History.Enabled)
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.toml"))

	require.NoError(t, err)
	assert.Equal(t, "app/plugins", cfg.Plugins.Dir)
}

func TestLoadFromPath_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
environment = "STAGING"

[plugins]
dir = "build/plugins"

[logging]
level = "debug"
file = "plugsh.log"

[history]
enabled = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	// ENVIRONMENT in the process environment takes precedence over the
	// file, so make sure it is unset for this test.
	t.Setenv("ENVIRONMENT", "")
	os.Unsetenv("ENVIRONMENT")

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "build/plugins", cfg.Plugins.Dir)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "plugsh.log", cfg.Logging.File)
	assert.False(t, cfg.History.Enabled)
	// Defaults still fill unset fields.
	assert.Equal(t, "logs", cfg.Logging.Dir)
}

func TestLoadFromPath_FileEnvironmentWinsOverDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`environment = "STAGING"`), 0644))

	t.Setenv("ENVIRONMENT", "")
	os.Unsetenv("ENVIRONMENT")

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "STAGING", cfg.Environment)
	assert.Equal(t, "STAGING", cfg.Settings["ENVIRONMENT"])
}

func TestLoadFromPath_EnvVarWinsOverFileEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`environment = "STAGING"`), 0644))

	t.Setenv("ENVIRONMENT", "DEVELOPMENT")

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "DEVELOPMENT", cfg.Environment)
}

func TestLoad_ReadsDefaultPathInWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	content := `
[plugins]
dir = "wd/plugins"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultPath), []byte(content), 0644))
	t.Chdir(dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "wd/plugins", cfg.Plugins.Dir)
}

func TestLoadFromPath_MalformedFileDegradesToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[plugins\ndir ="), 0644))

	cfg, err := LoadFromPath(path)

	assert.Error(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "app/plugins", cfg.Plugins.Dir)
}

func TestCaptureEnvironment_Snapshot(t *testing.T) {
	t.Setenv("PLUGSH_TEST_MARKER", "present")

	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, "present", cfg.Settings["PLUGSH_TEST_MARKER"])
}

func TestCaptureEnvironment_DefaultsEnvironment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	os.Unsetenv("ENVIRONMENT")

	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, "PRODUCTION", cfg.Settings["ENVIRONMENT"])
	assert.Equal(t, "PRODUCTION", cfg.Environment)
}

func TestCaptureEnvironment_RespectsExplicitEnvironment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "DEVELOPMENT")

	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, "DEVELOPMENT", cfg.Environment)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("PLUGSH_PLUGINS_DIR", "/opt/plugins")
	t.Setenv("PLUGSH_LOG_LEVEL", "error")
	t.Setenv("PLUGSH_LOG_FILE", "override.log")
	t.Setenv("PLUGSH_HISTORY_PATH", "/tmp/hist.db")

	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, "/opt/plugins", cfg.Plugins.Dir)
	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, "override.log", cfg.Logging.File)
	assert.Equal(t, "/tmp/hist.db", cfg.History.Path)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"warn level ok", func(c *Config) { c.Logging.Level = "warn" }, false},
		{"warning alias ok", func(c *Config) { c.Logging.Level = "warning" }, false},
		{"bogus level", func(c *Config) { c.Logging.Level = "loud" }, true},
		{"history enabled without path", func(c *Config) {
			c.History.Enabled = true
			c.History.Path = ""
		}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
