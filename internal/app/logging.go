package app

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// NewLogger creates the application logger, writing to sqlmux.log in the
// config directory. The TUI owns the terminal, so nothing is logged to
// stderr; the returned closer is the log file.
func NewLogger(configDir, level string) (*log.Logger, io.Closer, error) {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, nil, err
	}

	file, err := os.OpenFile(filepath.Join(configDir, "sqlmux.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	logger := log.NewWithOptions(file, log.Options{
		ReportTimestamp: true,
		Level:           parseLevel(level),
	})
	return logger, file, nil
}

func parseLevel(level string) log.Level {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return log.InfoLevel
	}
	return parsed
}
