package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/hookgate/internal/session"
)

var (
	sessionDir   string
	sessionStore string
	sessionDB    string
)

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.PersistentFlags().StringVar(&sessionDir, "state-dir", "", "Session state directory")
	sessionCmd.PersistentFlags().StringVar(&sessionStore, "store", "file", "Session store backend (file|sqlite)")
	sessionCmd.PersistentFlags().StringVar(&sessionDB, "db", "", "SQLite database path")
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionClearCmd)
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect or clear stored session state",
}

var sessionShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Print a session's stored state as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openStore(sessionStore, sessionDir, sessionDB)
		st := store.Load(args[0])

		out, err := json.MarshalIndent(st, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

var sessionClearCmd = &cobra.Command{
	Use:   "clear <session-id>",
	Short: "Delete a session's stored state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openStore(sessionStore, sessionDir, sessionDB)

		type deleter interface{ Delete(sessionID string) error }
		d, ok := store.(deleter)
		if !ok {
			return fmt.Errorf("store backend does not support clearing")
		}
		if err := d.Delete(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "cleared session %s\n", args[0])
		return nil
	},
}

// ensure both durable backends satisfy the clear contract
var (
	_ interface{ Delete(string) error } = (*session.FileStore)(nil)
	_ interface{ Delete(string) error } = (*session.SQLiteStore)(nil)
)
