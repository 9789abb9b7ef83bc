package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/hookgate/internal/registry"
)

var (
	rulesPath   string
	rulesFormat string
)

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.Flags().StringVar(&rulesPath, "rules", "", "Path to rules overlay YAML")
	rulesCmd.Flags().StringVarP(&rulesFormat, "format", "f", "text", "Output format (text|json)")
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the effective rule tables",
	RunE:  runRules,
}

func runRules(cmd *cobra.Command, args []string) error {
	reg, hash, err := registry.LoadWithHash(rulesPath)
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}

	if rulesFormat == "json" {
		summary := map[string]any{
			"hash":             hash,
			"shell_patterns":   len(reg.Shell),
			"secret_patterns":  len(reg.Secrets),
			"protected_paths":  reg.ProtectedPaths,
			"param_checks":     len(reg.ParamChecks),
			"tool_preferences": len(reg.ToolPreferences),
			"sequences":        len(reg.Sequences),
			"agent_kinds":      len(reg.Agents),
		}
		out, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "rules hash: %s\n\n", hash)
	fmt.Fprintf(w, "shell patterns:   %d\n", len(reg.Shell))
	fmt.Fprintf(w, "secret patterns:  %d\n", len(reg.Secrets))
	fmt.Fprintf(w, "protected paths:  %s\n", strings.Join(reg.ProtectedPaths, ", "))
	fmt.Fprintf(w, "param checks:     %d\n", len(reg.ParamChecks))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "tool preferences:")
	for _, tp := range reg.ToolPreferences {
		fmt.Fprintf(w, "  %-20s primary=%s avoid=%s\n",
			tp.Category, tp.Primary, strings.Join(tp.Avoid, ","))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "inefficient sequences:")
	for _, s := range reg.Sequences {
		fmt.Fprintf(w, "  %s\n", strings.Join(s.Tools, " → "))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "agent kinds:")
	for _, a := range reg.Agents {
		fmt.Fprintf(w, "  %-18s keywords=%s compatible=%s\n",
			a.Name, strings.Join(a.Keywords, ","), strings.Join(a.Compatible, ","))
	}
	return nil
}
