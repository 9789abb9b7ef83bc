// Package cli wires the hookgate commands. The `hook` command is the
// per-event entry point the host runtime invokes; the rest are operator
// tooling around the same pipeline.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/hookgate/internal/session"
)

var rootCmd = &cobra.Command{
	Use:   "hookgate",
	Short: "Policy guard for coding-agent tool calls",
	Long: "Intercepts tool-invocation events from a coding-agent runtime and decides,\n" +
		"per event, whether the call proceeds, is blocked, or needs confirmation —\n" +
		"plus advisory guidance on preferred tools and parallel agents.",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openStore builds the session store selected by flags. A store that cannot
// be created degrades to in-memory: losing history is acceptable, failing
// the decision pipeline is not.
func openStore(backend, stateDir, dbPath string) session.Store {
	switch backend {
	case "sqlite":
		if dbPath == "" {
			dbPath = session.DefaultDBPath()
		}
		store, err := session.NewSQLiteStore(dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hookgate: sqlite store unavailable, using memory: %v\n", err)
			return session.NewMemStore()
		}
		return store
	default:
		if stateDir == "" {
			stateDir = session.DefaultDir()
		}
		store, err := session.NewFileStore(stateDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hookgate: file store unavailable, using memory: %v\n", err)
			return session.NewMemStore()
		}
		return store
	}
}
