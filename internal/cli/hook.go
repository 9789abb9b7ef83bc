package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/hookgate/internal/audit"
	"github.com/ppiankov/hookgate/internal/model"
	"github.com/ppiankov/hookgate/internal/pipeline"
	"github.com/ppiankov/hookgate/internal/registry"
)

// ExitBadInput signals an unparseable event payload to the host.
// Handled decisions (including deny and ask) always exit 0; the verdict
// travels in the response payload, not the exit code.
const ExitBadInput = 2

// exit is swapped out in tests.
var exit = os.Exit

var (
	hookRules    string
	hookStateDir string
	hookStore    string
	hookDB       string
	hookAuditLog string
	hookNoAudit  bool
)

func init() {
	rootCmd.AddCommand(hookCmd)
	hookCmd.Flags().StringVar(&hookRules, "rules", "", "Path to rules overlay YAML (default: ~/.hookgate/rules.yaml)")
	hookCmd.Flags().StringVar(&hookStateDir, "state-dir", "", "Session state directory (default: ~/.hookgate/sessions)")
	hookCmd.Flags().StringVar(&hookStore, "store", "file", "Session store backend (file|sqlite)")
	hookCmd.Flags().StringVar(&hookDB, "db", "", "SQLite database path (default: ~/.hookgate/hookgate.db)")
	hookCmd.Flags().StringVar(&hookAuditLog, "audit-log", "", "Decision audit log path (default: ~/.hookgate/audit.jsonl)")
	hookCmd.Flags().BoolVar(&hookNoAudit, "no-audit", false, "Disable the decision audit log")
}

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Process one hook event from stdin",
	Long: "Reads a single JSON event from stdin, runs it through the decision\n" +
		"pipeline, and writes the structured response to stdout.\n\n" +
		"Exit 0 for any handled outcome, including deny and ask.\n" +
		"Exit 2 when the payload cannot be parsed; nothing is written to stdout\n" +
		"and the call falls through to the host's normal handling (fail open).",
	RunE: runHook,
}

func runHook(cmd *cobra.Command, args []string) error {
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "hookgate: read stdin: %v\n", err)
		exit(ExitBadInput)
		return nil
	}

	evt, err := model.ParseEvent(data)
	if err != nil {
		// Fail open: never block on malformed metadata. The distinct exit
		// status tells the host the payload, not the tool call, was bad.
		fmt.Fprintf(cmd.ErrOrStderr(), "hookgate: invalid event payload: %v\n", err)
		exit(ExitBadInput)
		return nil
	}

	reg, _, err := registry.LoadWithHash(hookRules)
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}

	store := openStore(hookStore, hookStateDir, hookDB)

	var auditLog *audit.Log
	if !hookNoAudit {
		path := hookAuditLog
		if path == "" {
			path = audit.DefaultPath()
		}
		auditLog, err = audit.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hookgate: audit log unavailable: %v\n", err)
			auditLog = nil
		} else {
			defer auditLog.Close()
		}
	}

	p := pipeline.New(pipeline.Config{
		Registry: reg,
		Store:    store,
		Audit:    auditLog,
	})

	dec := p.Process(evt)

	out, err := dec.MarshalResponse(evt.Kind)
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
