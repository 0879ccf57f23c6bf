// Package cli wires the command-line interface.
package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/secmux/sqlmux/internal/app"
	"github.com/secmux/sqlmux/internal/runtime"
	"github.com/secmux/sqlmux/internal/store"
	"github.com/secmux/sqlmux/internal/ui"
)

const (
	appName    = "sqlmux"
	appVersion = "0.1.0"
)

var configDirFlag string

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "A terminal front-end for sqlmap",
	Long: appName + ` is a TUI for composing sqlmap command lines, running scans
and managing reusable option presets.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			return fmt.Errorf("%s requires an interactive terminal; see '%s --help' for non-interactive commands", appName, appName)
		}
		return runTUI()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "", "override the config directory")
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// configDir resolves the configuration directory, honoring the flag.
func configDir() (string, error) {
	if configDirFlag != "" {
		return configDirFlag, nil
	}
	return app.ConfigDir()
}

// runTUI bootstraps and runs the terminal interface.
func runTUI() error {
	dir, err := configDir()
	if err != nil {
		return err
	}

	config, err := app.LoadConfig(dir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if config.SqlmapPath == "" {
		config.SqlmapPath = app.DetectSqlmapPath()
	}

	logger, logFile, err := app.NewLogger(dir, config.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	s, err := store.NewJSONStore(dir)
	if err != nil {
		return fmt.Errorf("failed to open preset store: %w", err)
	}
	defer s.Close()

	engine := runtime.NewEngine(config.SqlmapPath, logger)
	defer engine.CloseAll()

	logger.Info("starting", "version", appVersion, "sqlmap", config.SqlmapPath)

	p := tea.NewProgram(
		ui.New(s, engine, config, dir, logger),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("application error: %w", err)
	}
	return nil
}
