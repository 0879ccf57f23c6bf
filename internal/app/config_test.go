package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "", config.SqlmapPath)
	assert.False(t, config.Interactive)
	assert.Equal(t, "info", config.LogLevel)
	assert.Equal(t, "catppuccin-mocha", config.Theme)
	assert.True(t, config.Notifications.Desktop)
}

func TestConfigSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	config := &Config{
		SqlmapPath:  "/opt/sqlmap/sqlmap",
		Interactive: true,
		LogLevel:    "debug",
		Theme:       "catppuccin-mocha",
	}
	config.Notifications.Desktop = false
	config.Notifications.WebhookURL = "https://hooks.example.com/scan"

	require.NoError(t, SaveConfig(dir, config))

	loaded, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, config, loaded)
}

func TestLoadConfigPartialFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"),
		[]byte("log_level: warn\n"), 0644))

	config, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "warn", config.LogLevel)
	// Unset keys keep their defaults.
	assert.True(t, config.Notifications.Desktop)
}

func TestLoadConfigMalformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"),
		[]byte(":\n  - not yaml"), 0644))

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}

func TestConfigDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")

	dir, err := ConfigDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/xdg-test/sqlmux", dir)
}

func TestValidateSqlmapPath(t *testing.T) {
	assert.False(t, ValidateSqlmapPath(""))
	assert.False(t, ValidateSqlmapPath("/nonexistent/sqlmap"))
	assert.False(t, ValidateSqlmapPath(t.TempDir()))

	script := filepath.Join(t.TempDir(), "sqlmap")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\n"), 0o755))
	assert.True(t, ValidateSqlmapPath(script))

	plain := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(plain, []byte("x"), 0o644))
	assert.False(t, ValidateSqlmapPath(plain))
}
