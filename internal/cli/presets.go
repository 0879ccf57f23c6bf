package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/secmux/sqlmux/internal/store"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Manage scan presets",
}

var presetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		presets, err := s.List(context.Background())
		if err != nil {
			return err
		}
		for _, p := range presets {
			mark := " "
			if p.BuiltIn {
				mark = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %-24s %d options\n", mark, p.Name, len(p.Values))
		}
		return nil
	},
}

var presetsExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export user presets as YAML",
	Long: `Export writes all user presets to the given file, or to stdout when
no file is given. Built-in presets are skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		presets, err := s.List(context.Background())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(args) == 1 {
			file, err := os.Create(args[0])
			if err != nil {
				return err
			}
			defer file.Close()
			out = file
		}
		return store.ExportYAML(out, presets)
	},
}

var presetsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import presets from YAML",
	Long: `Import reads presets from a YAML file and saves them. Presets with
names matching existing user presets are overwritten; names colliding with
built-in presets are rejected.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer file.Close()

		presets, err := store.ImportYAML(file)
		if err != nil {
			return err
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		for i := range presets {
			if err := s.Put(ctx, &presets[i]); err != nil {
				return fmt.Errorf("preset %q: %w", presets[i].Name, err)
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d presets\n", len(presets))
		return nil
	},
}

func openStore() (*store.JSONStore, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}
	s, err := store.NewJSONStore(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open preset store: %w", err)
	}
	return s, nil
}

func init() {
	presetsCmd.AddCommand(presetsListCmd, presetsExportCmd, presetsImportCmd)
	rootCmd.AddCommand(presetsCmd)
}
