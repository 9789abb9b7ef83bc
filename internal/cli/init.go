package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ppiankov/hookgate/internal/registry"
)

var (
	initPath  string
	initForce bool
)

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&initPath, "path", "", "Destination for the rules overlay (default: ~/.hookgate/rules.yaml)")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing file")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented rules overlay template",
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	path := initPath
	if path == "" {
		path = registry.DefaultRulesPath()
	}

	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(registry.DefaultRulesYAML()), 0o644); err != nil {
		return fmt.Errorf("failed to write rules template: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
