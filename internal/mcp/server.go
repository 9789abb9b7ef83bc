// Package mcp exposes hookgate evaluation over the Model Context Protocol,
// for hosts that attach guard tooling as an MCP server instead of wiring
// the per-event hook binary.
package mcp

import (
	"context"
	"fmt"
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ppiankov/hookgate/internal/audit"
	"github.com/ppiankov/hookgate/internal/pipeline"
	"github.com/ppiankov/hookgate/internal/registry"
	"github.com/ppiankov/hookgate/internal/session"
)

// Config holds MCP server configuration.
type Config struct {
	RulesPath    string
	StateDir     string
	AuditLogPath string
}

// Server wraps the MCP SDK server around the hookgate pipeline.
type Server struct {
	mcpServer *mcpsdk.Server
	store     session.Store
	auditLog  *audit.Log
	rulesPath string

	mu  sync.RWMutex
	reg *registry.Registry
}

// New creates an MCP server with loaded rules and a file-backed session
// store.
func New(cfg Config) (*Server, error) {
	reg, _, err := registry.LoadWithHash(cfg.RulesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}

	stateDir := cfg.StateDir
	if stateDir == "" {
		stateDir = session.DefaultDir()
	}
	store, err := session.NewFileStore(stateDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create session store: %w", err)
	}

	var auditLog *audit.Log
	if cfg.AuditLogPath != "" {
		auditLog, err = audit.Open(cfg.AuditLogPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open audit log: %w", err)
		}
	}

	s := &Server{
		store:     store,
		auditLog:  auditLog,
		rulesPath: cfg.RulesPath,
		reg:       reg,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "hookgate",
			Version: "0.1.0",
		},
		nil,
	)

	s.registerTools()
	return s, nil
}

// Run starts the MCP server on stdio transport alongside a rules
// hot-reloader. Blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	reloader, err := registry.NewReloader(s.rulesPath, s.swapRegistry)
	if err == nil {
		go reloader.Run(ctx)
	}
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// Close closes the audit log if configured.
func (s *Server) Close() error {
	if s.auditLog != nil {
		return s.auditLog.Close()
	}
	return nil
}

func (s *Server) swapRegistry(reg *registry.Registry) {
	s.mu.Lock()
	s.reg = reg
	s.mu.Unlock()
}

// newPipeline builds a pipeline against the current registry snapshot.
func (s *Server) newPipeline() *pipeline.Pipeline {
	s.mu.RLock()
	reg := s.reg
	s.mu.RUnlock()
	return pipeline.New(pipeline.Config{
		Registry: reg,
		Store:    s.store,
		Audit:    s.auditLog,
	})
}

// registerTools adds all hookgate tools to the MCP server.
func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "hookgate_check",
		Description: "Evaluate a hypothetical tool invocation against hookgate rules without touching session state (dry-run).",
	}, s.handleCheck)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "hookgate_event",
		Description: "Process one hook event through the full pipeline, updating session state and returning the decision.",
	}, s.handleEvent)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "hookgate_session",
		Description: "Inspect the stored state for a session: active agents, recent history, usage counters, current wave.",
	}, s.handleSession)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "hookgate_rules",
		Description: "Summarize the effective rule tables and their hash.",
	}, s.handleRules)
}
