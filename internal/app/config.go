// Package app provides application-level configuration and initialization.
package app

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"

	"github.com/secmux/sqlmux/internal/model"
)

// Config holds the application configuration, loaded from config.yaml in
// the config directory. Every field has a default so a missing file is not
// an error.
type Config struct {
	// SqlmapPath is the full path to the sqlmap executable. Empty means
	// auto-detect on startup.
	SqlmapPath string `mapstructure:"sqlmap_path"`
	// Interactive runs scans under a pseudo-terminal so sqlmap prompts can
	// be answered. Off by default; the batch option covers most runs.
	Interactive bool `mapstructure:"interactive"`
	// LogLevel controls the application log file verbosity.
	LogLevel string `mapstructure:"log_level"`
	// Theme is the color theme.
	Theme string `mapstructure:"theme"`
	// Notifications configures scan-completion notifications.
	Notifications model.NotificationConfig `mapstructure:"notifications"`
}

// ConfigDir returns the sqlmux config directory, honoring XDG_CONFIG_HOME.
func ConfigDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "sqlmux"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "sqlmux"), nil
}

func newViper(configDir string) *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.SetDefault("sqlmap_path", "")
	v.SetDefault("interactive", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("theme", "catppuccin-mocha")
	v.SetDefault("notifications.desktop", true)
	v.SetDefault("notifications.webhook_url", "")

	return v
}

// LoadConfig loads the configuration from configDir. A missing file yields
// the defaults; a malformed file is an error.
func LoadConfig(configDir string) (*Config, error) {
	v := newViper(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &config, nil
}

// SaveConfig writes the configuration to config.yaml in configDir.
func SaveConfig(configDir string, config *Config) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	v := newViper(configDir)
	v.Set("sqlmap_path", config.SqlmapPath)
	v.Set("interactive", config.Interactive)
	v.Set("log_level", config.LogLevel)
	v.Set("theme", config.Theme)
	v.Set("notifications.desktop", config.Notifications.Desktop)
	v.Set("notifications.webhook_url", config.Notifications.WebhookURL)

	return v.WriteConfigAs(filepath.Join(configDir, "config.yaml"))
}

// DetectSqlmapPath attempts to find the sqlmap executable.
func DetectSqlmapPath() string {
	if path, err := exec.LookPath("sqlmap"); err == nil {
		return path
	}

	home, _ := os.UserHomeDir()
	candidates := []string{
		"/usr/local/bin/sqlmap",
		"/usr/bin/sqlmap",
		filepath.Join(home, ".local/bin/sqlmap"),
	}
	if runtime.GOOS == "darwin" {
		candidates = append(candidates,
			"/opt/homebrew/bin/sqlmap",
		)
	}

	for _, path := range candidates {
		if ValidateSqlmapPath(path) {
			return path
		}
	}
	return ""
}

// ValidateSqlmapPath checks if the given path is an executable file.
func ValidateSqlmapPath(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	if runtime.GOOS != "windows" {
		return info.Mode()&0111 != 0
	}
	return true
}
