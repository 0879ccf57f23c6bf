package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/secmux/sqlmux/internal/app"
	"github.com/secmux/sqlmux/internal/compiler"
	"github.com/secmux/sqlmux/internal/model"
	"github.com/secmux/sqlmux/internal/store"
)

var (
	compilePreset string
	compileSets   []string
)

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Print the sqlmap command for a set of options",
	Long: `Compile prints the command line that would be run for the given
options without executing anything. Options come from an optional preset
plus any number of --set key=value overrides.`,
	Example: `  sqlmux compile --set url=http://target/page?id=1 --set risk=3
  sqlmux compile --preset "Stealth Mode" --set url=http://target/`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := model.NewOptions()

		if compilePreset != "" {
			dir, err := configDir()
			if err != nil {
				return err
			}
			s, err := store.NewJSONStore(dir)
			if err != nil {
				return fmt.Errorf("failed to open preset store: %w", err)
			}
			defer s.Close()

			p, err := s.Get(context.Background(), compilePreset)
			if err != nil {
				return fmt.Errorf("preset %q: %w", compilePreset, err)
			}
			opts.Apply(p.Values)
		}

		for _, kv := range compileSets {
			key, value, ok := strings.Cut(kv, "=")
			if !ok {
				return fmt.Errorf("invalid --set %q, want key=value", kv)
			}
			if err := opts.Set(key, value); err != nil {
				return err
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), compiler.Compile(opts).String())
		return nil
	},
}

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Show the sqlmap executable that would be used",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := configDir()
		if err != nil {
			return err
		}
		config, err := app.LoadConfig(dir)
		if err != nil {
			return err
		}

		path := config.SqlmapPath
		source := "config"
		if path == "" {
			path = app.DetectSqlmapPath()
			source = "auto-detected"
		}
		if path == "" {
			return fmt.Errorf("sqlmap not found; install it or set sqlmap_path in %s/config.yaml", dir)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", path, source)
		return nil
	},
}

func init() {
	compileCmd.Flags().StringVar(&compilePreset, "preset", "", "apply a named preset first")
	compileCmd.Flags().StringArrayVar(&compileSets, "set", nil, "set an option, key=value (repeatable)")
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(detectCmd)
}
