package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/hookgate/internal/model"
	"github.com/ppiankov/hookgate/internal/pipeline"
	"github.com/ppiankov/hookgate/internal/registry"
	"github.com/ppiankov/hookgate/internal/session"
)

var (
	checkTool    string
	checkCommand string
	checkParams  []string
	checkSession string
	checkRules   string
	checkDir     string
	checkFormat  string
)

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkTool, "tool", "Bash", "Tool identifier to evaluate")
	checkCmd.Flags().StringVar(&checkCommand, "command", "", "Shell command (shorthand for --param command=...)")
	checkCmd.Flags().StringArrayVar(&checkParams, "param", nil, "Invocation parameter as key=value (repeatable)")
	checkCmd.Flags().StringVar(&checkSession, "session", "", "Evaluate against an existing session's history")
	checkCmd.Flags().StringVar(&checkRules, "rules", "", "Path to rules overlay YAML")
	checkCmd.Flags().StringVar(&checkDir, "state-dir", "", "Session state directory")
	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", "text", "Output format (text|json)")
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Dry-run a tool invocation against the rules",
	Long: "Evaluates a hypothetical pre-invocation event without touching session\n" +
		"state or the audit log. Useful for testing rule overlays.",
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	reg, err := registry.Load(checkRules)
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}

	input := make(map[string]any)
	if checkCommand != "" {
		input["command"] = checkCommand
	}
	for _, kv := range checkParams {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("invalid --param %q: expected key=value", kv)
		}
		input[key] = value
	}

	evt := &model.Event{
		Kind:      model.PreToolUse,
		SessionID: checkSession,
		ToolName:  checkTool,
		ToolInput: input,
	}

	st := session.New(checkSession)
	if checkSession != "" {
		st = openStore("file", checkDir, "").Load(checkSession)
	}

	dec := pipeline.DryRun(reg, st, evt)

	switch checkFormat {
	case "json":
		out, err := json.MarshalIndent(dec, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "outcome: %s\n", dec.Outcome)
		if dec.Reason != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "reason: %s\n", dec.Reason)
		}
		if dec.Advisory != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "advisory: %s\n", dec.Advisory)
		}
	}
	return nil
}
