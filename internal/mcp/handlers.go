package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ppiankov/hookgate/internal/model"
	"github.com/ppiankov/hookgate/internal/pipeline"
	"github.com/ppiankov/hookgate/internal/session"
)

// --- Input/Output types ---

// CheckInput defines parameters for the hookgate_check tool.
type CheckInput struct {
	SessionID string         `json:"session_id,omitempty" jsonschema:"session to evaluate against, omit for a fresh session"`
	Kind      string         `json:"kind,omitempty" jsonschema:"event kind, defaults to PreToolUse"`
	Tool      string         `json:"tool" jsonschema:"tool identifier being invoked"`
	Input     map[string]any `json:"input,omitempty" jsonschema:"tool invocation parameters"`
}

// CheckOutput contains the dry-run decision.
type CheckOutput struct {
	Outcome  string `json:"outcome"`
	Reason   string `json:"reason,omitempty"`
	Advisory string `json:"advisory,omitempty"`
}

// EventInput defines parameters for the hookgate_event tool.
type EventInput struct {
	SessionID    string         `json:"session_id" jsonschema:"session identifier"`
	Kind         string         `json:"kind" jsonschema:"event kind (PreToolUse/PostToolUse/SubagentStart/SubagentStop/SessionStart/UserPromptSubmit)"`
	Tool         string         `json:"tool,omitempty" jsonschema:"tool identifier"`
	Input        map[string]any `json:"input,omitempty" jsonschema:"tool invocation parameters"`
	ToolResponse map[string]any `json:"tool_response,omitempty" jsonschema:"tool result, for PostToolUse"`
	Prompt       string         `json:"prompt,omitempty" jsonschema:"spawn prompt, for SubagentStart"`
}

// EventOutput contains the pipeline decision.
type EventOutput struct {
	Outcome  string `json:"outcome"`
	Reason   string `json:"reason,omitempty"`
	Advisory string `json:"advisory,omitempty"`
}

// SessionInput defines parameters for the hookgate_session tool.
type SessionInput struct {
	SessionID string `json:"session_id" jsonschema:"session identifier"`
}

// SessionOutput mirrors the stored session record.
type SessionOutput struct {
	SessionID     string                 `json:"session_id"`
	CurrentWave   string                 `json:"current_wave"`
	ActiveAgents  []session.AgentEntry   `json:"active_agents"`
	RecentHistory []session.HistoryEntry `json:"recent_history"`
	UsageCounters map[string]int         `json:"usage_counters"`
}

// RulesInput is empty — no parameters needed.
type RulesInput struct{}

// RulesOutput summarizes the effective rule tables.
type RulesOutput struct {
	Hash            string `json:"hash"`
	Shell           int    `json:"shell_patterns"`
	Secrets         int    `json:"secret_patterns"`
	ProtectedPaths  int    `json:"protected_paths"`
	ParamChecks     int    `json:"param_checks"`
	ToolPreferences int    `json:"tool_preferences"`
	Sequences       int    `json:"sequences"`
	Agents          int    `json:"agent_kinds"`
}

// --- Handlers ---

func (s *Server) handleCheck(ctx context.Context, req *mcpsdk.CallToolRequest, input CheckInput) (*mcpsdk.CallToolResult, CheckOutput, error) {
	kind := model.EventKind(input.Kind)
	if input.Kind == "" {
		kind = model.PreToolUse
	}
	if !kind.Valid() {
		return &mcpsdk.CallToolResult{IsError: true}, CheckOutput{}, fmt.Errorf("unknown event kind %q", input.Kind)
	}

	evt := &model.Event{
		Kind:      kind,
		SessionID: input.SessionID,
		ToolName:  input.Tool,
		ToolInput: input.Input,
	}

	s.mu.RLock()
	reg := s.reg
	s.mu.RUnlock()

	// Dry-run: classify against a read-only state snapshot, never save.
	var st *session.State
	if input.SessionID != "" {
		st = s.store.Load(input.SessionID)
	} else {
		st = session.New("")
	}

	dec := pipeline.DryRun(reg, st, evt)

	return nil, CheckOutput{
		Outcome:  string(dec.Outcome),
		Reason:   dec.Reason,
		Advisory: dec.Advisory,
	}, nil
}

func (s *Server) handleEvent(ctx context.Context, req *mcpsdk.CallToolRequest, input EventInput) (*mcpsdk.CallToolResult, EventOutput, error) {
	kind := model.EventKind(input.Kind)
	if !kind.Valid() {
		return &mcpsdk.CallToolResult{IsError: true}, EventOutput{}, fmt.Errorf("unknown event kind %q", input.Kind)
	}
	if input.SessionID == "" {
		return &mcpsdk.CallToolResult{IsError: true}, EventOutput{}, fmt.Errorf("session_id is required")
	}

	evt := &model.Event{
		Kind:         kind,
		SessionID:    input.SessionID,
		ToolName:     input.Tool,
		ToolInput:    input.Input,
		ToolResponse: input.ToolResponse,
		Prompt:       input.Prompt,
	}

	dec := s.newPipeline().Process(evt)

	return nil, EventOutput{
		Outcome:  string(dec.Outcome),
		Reason:   dec.Reason,
		Advisory: dec.Advisory,
	}, nil
}

func (s *Server) handleSession(ctx context.Context, req *mcpsdk.CallToolRequest, input SessionInput) (*mcpsdk.CallToolResult, SessionOutput, error) {
	if input.SessionID == "" {
		return &mcpsdk.CallToolResult{IsError: true}, SessionOutput{}, fmt.Errorf("session_id is required")
	}

	st := s.store.Load(input.SessionID)
	return nil, SessionOutput{
		SessionID:     st.SessionID,
		CurrentWave:   st.CurrentWave,
		ActiveAgents:  st.ActiveAgents,
		RecentHistory: st.RecentHistory,
		UsageCounters: st.UsageCounters,
	}, nil
}

func (s *Server) handleRules(ctx context.Context, req *mcpsdk.CallToolRequest, input RulesInput) (*mcpsdk.CallToolResult, RulesOutput, error) {
	s.mu.RLock()
	reg := s.reg
	s.mu.RUnlock()

	return nil, RulesOutput{
		Hash:            reg.Hash,
		Shell:           len(reg.Shell),
		Secrets:         len(reg.Secrets),
		ProtectedPaths:  len(reg.ProtectedPaths),
		ParamChecks:     len(reg.ParamChecks),
		ToolPreferences: len(reg.ToolPreferences),
		Sequences:       len(reg.Sequences),
		Agents:          len(reg.Agents),
	}, nil
}
