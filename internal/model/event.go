package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// EventKind identifies the lifecycle stage an event belongs to.
type EventKind string

const (
	PreToolUse       EventKind = "PreToolUse"
	PostToolUse      EventKind = "PostToolUse"
	SubagentStart    EventKind = "SubagentStart"
	SubagentStop     EventKind = "SubagentStop"
	SessionStart     EventKind = "SessionStart"
	UserPromptSubmit EventKind = "UserPromptSubmit"
)

// knownKinds is the closed set of event kinds hookgate processes.
var knownKinds = map[EventKind]bool{
	PreToolUse:       true,
	PostToolUse:      true,
	SubagentStart:    true,
	SubagentStop:     true,
	SessionStart:     true,
	UserPromptSubmit: true,
}

// Valid reports whether the kind is one hookgate knows how to handle.
func (k EventKind) Valid() bool {
	return knownKinds[k]
}

// MCPToolPrefix marks tool identifiers belonging to an MCP toolset.
// The host namespaces MCP tools as mcp__<server>__<tool>.
const MCPToolPrefix = "mcp__"

// Event is one tool-invocation attempt or lifecycle notification delivered
// by the host runtime. Immutable once parsed; owned by a single pipeline run.
type Event struct {
	Kind         EventKind      `json:"hook_event_name"`
	SessionID    string         `json:"session_id"`
	ToolName     string         `json:"tool_name,omitempty"`
	ToolInput    map[string]any `json:"tool_input,omitempty"`
	ToolResponse map[string]any `json:"tool_response,omitempty"`
	Prompt       string         `json:"prompt,omitempty"`
	Cwd          string         `json:"cwd,omitempty"`
}

// ParseEvent decodes a single event blob. Unknown kinds and missing session
// identifiers are rejected here so the caller can fail open before any
// classification runs.
func ParseEvent(data []byte) (*Event, error) {
	var evt Event
	if err := json.Unmarshal(data, &evt); err != nil {
		return nil, fmt.Errorf("event: decode: %w", err)
	}
	if !evt.Kind.Valid() {
		return nil, fmt.Errorf("event: unknown kind %q", evt.Kind)
	}
	if evt.SessionID == "" {
		return nil, fmt.Errorf("event: missing session_id")
	}
	return &evt, nil
}

// IsMCPTool reports whether the invoked tool belongs to an MCP toolset.
func (e *Event) IsMCPTool() bool {
	return strings.HasPrefix(e.ToolName, MCPToolPrefix)
}

// StringInput returns a string field from tool_input, or "" when the field
// is absent or not a string. Classifiers use this to narrow the open
// parameter bag and skip (fail closed) on missing fields.
func (e *Event) StringInput(key string) string {
	if e.ToolInput == nil {
		return ""
	}
	s, _ := e.ToolInput[key].(string)
	return s
}

// Failed reports whether a PostToolUse event carries a failure outcome.
// The host sets tool_response.success=false or a non-empty
// tool_response.error when the tool call failed.
func (e *Event) Failed() bool {
	if e.ToolResponse == nil {
		return false
	}
	if ok, present := e.ToolResponse["success"].(bool); present && !ok {
		return true
	}
	if errStr, _ := e.ToolResponse["error"].(string); errStr != "" {
		return true
	}
	return false
}

// InputSummary renders a short, bounded description of the invocation
// parameters for history entries. Values are truncated so secret-shaped
// content is never persisted in full.
func (e *Event) InputSummary() string {
	for _, key := range []string{"command", "file_path", "pattern", "url", "query", "description", "prompt"} {
		if v := e.StringInput(key); v != "" {
			return Truncate(key+"="+v, SummaryMaxLen)
		}
	}
	return ""
}

// SummaryMaxLen bounds persisted input summaries and echoed previews.
const SummaryMaxLen = 80

// Truncate shortens s to at most n bytes, appending an ellipsis marker when
// anything was cut. The cut lands on a rune boundary so truncated output
// stays valid UTF-8.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	marker := ""
	if n > 3 {
		cut = n - 3
		marker = "..."
	}
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + marker
}
