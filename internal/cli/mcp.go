package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ppiankov/hookgate/internal/mcp"
)

var (
	mcpRules    string
	mcpStateDir string
	mcpAuditLog string
)

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringVar(&mcpRules, "rules", "", "Path to rules overlay YAML")
	mcpCmd.Flags().StringVar(&mcpStateDir, "state-dir", "", "Session state directory")
	mcpCmd.Flags().StringVar(&mcpAuditLog, "audit-log", "", "Decision audit log path")
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run hookgate as an MCP server on stdio",
	Long: "Exposes hookgate_check, hookgate_event, hookgate_session, and\n" +
		"hookgate_rules as MCP tools. Rule changes on disk hot-reload.",
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	srv, err := mcp.New(mcp.Config{
		RulesPath:    mcpRules,
		StateDir:     mcpStateDir,
		AuditLogPath: mcpAuditLog,
	})
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	return srv.Run(ctx)
}
