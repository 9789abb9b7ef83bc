// Package session holds the durable per-session bookkeeping the pipeline
// reads and updates on every event: active subagents, a bounded history of
// recent tool calls, usage counters, and the current work phase.
package session

import (
	"time"
	"unicode/utf8"
)

const (
	// HistoryCapacity bounds recent_history; the oldest entry is evicted first.
	HistoryCapacity = 20

	// AgentTTL is how long an active_agents entry survives without completing.
	// Expiry is lazy: stale entries are dropped when the list is pruned on
	// read, never by a background job.
	AgentTTL = 300 * time.Second

	// DescriptionMaxLen bounds stored agent descriptions.
	DescriptionMaxLen = 120

	// InitialWave is the phase a fresh session starts in.
	InitialWave = "planning"
)

// AgentEntry is one active subagent.
type AgentEntry struct {
	Kind        string    `json:"kind"`
	StartedAt   time.Time `json:"started_at"`
	Description string    `json:"description,omitempty"`
}

// HistoryEntry is one recent tool call. Completed and Succeeded are set by
// the matching post-invocation event.
type HistoryEntry struct {
	Tool      string    `json:"tool"`
	Timestamp time.Time `json:"ts"`
	Summary   string    `json:"summary,omitempty"`
	Completed bool      `json:"completed"`
	Succeeded bool      `json:"succeeded"`
}

// State is the per-session record. One record per session identifier,
// loaded at pipeline start and persisted after every event.
type State struct {
	SessionID     string         `json:"session_id"`
	ActiveAgents  []AgentEntry   `json:"active_agents"`
	RecentHistory []HistoryEntry `json:"recent_history"`
	UsageCounters map[string]int `json:"usage_counters"`
	CurrentWave   string         `json:"current_wave"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// New creates a default-initialized state for a session identifier.
func New(sessionID string) *State {
	return &State{
		SessionID:     sessionID,
		ActiveAgents:  []AgentEntry{},
		RecentHistory: []HistoryEntry{},
		UsageCounters: make(map[string]int),
		CurrentWave:   InitialWave,
	}
}

// Clone returns a deep copy; mutations on either side stay invisible to the
// other.
func (s *State) Clone() *State {
	clone := *s
	clone.ActiveAgents = append([]AgentEntry(nil), s.ActiveAgents...)
	clone.RecentHistory = append([]HistoryEntry(nil), s.RecentHistory...)
	clone.UsageCounters = make(map[string]int, len(s.UsageCounters))
	for k, v := range s.UsageCounters {
		clone.UsageCounters[k] = v
	}
	return &clone
}

// normalize repairs nil collections after decoding partial or legacy records.
func (s *State) normalize(sessionID string) {
	if s.SessionID == "" {
		s.SessionID = sessionID
	}
	if s.ActiveAgents == nil {
		s.ActiveAgents = []AgentEntry{}
	}
	if s.RecentHistory == nil {
		s.RecentHistory = []HistoryEntry{}
	}
	if s.UsageCounters == nil {
		s.UsageCounters = make(map[string]int)
	}
	if s.CurrentWave == "" {
		s.CurrentWave = InitialWave
	}
}

// RecordInvocation appends a history entry, evicting the oldest when the
// capacity is reached.
func (s *State) RecordInvocation(tool, summary string, now time.Time) {
	s.RecentHistory = append(s.RecentHistory, HistoryEntry{
		Tool:      tool,
		Timestamp: now,
		Summary:   summary,
	})
	if n := len(s.RecentHistory); n > HistoryCapacity {
		s.RecentHistory = s.RecentHistory[n-HistoryCapacity:]
	}
}

// CompleteInvocation marks the most recent incomplete entry for the tool as
// completed. A post event with no matching pre entry is a no-op; the pre
// entry may have been evicted.
func (s *State) CompleteInvocation(tool string, succeeded bool) {
	for i := len(s.RecentHistory) - 1; i >= 0; i-- {
		e := &s.RecentHistory[i]
		if e.Tool == tool && !e.Completed {
			e.Completed = true
			e.Succeeded = succeeded
			return
		}
	}
}

// RecentTools returns the identifiers of the last n history entries,
// oldest first.
func (s *State) RecentTools(n int) []string {
	if n <= 0 || n > len(s.RecentHistory) {
		n = len(s.RecentHistory)
	}
	out := make([]string, 0, n)
	for _, e := range s.RecentHistory[len(s.RecentHistory)-n:] {
		out = append(out, e.Tool)
	}
	return out
}

// PruneAgents drops active_agents entries older than the TTL and returns
// how many were removed.
func (s *State) PruneAgents(now time.Time) int {
	kept := s.ActiveAgents[:0]
	for _, a := range s.ActiveAgents {
		if now.Sub(a.StartedAt) <= AgentTTL {
			kept = append(kept, a)
		}
	}
	removed := len(s.ActiveAgents) - len(kept)
	s.ActiveAgents = kept
	return removed
}

// AddAgent appends an active subagent entry with a bounded description.
// The cut lands on a rune boundary so persisted descriptions stay valid
// UTF-8.
func (s *State) AddAgent(kind, description string, now time.Time) {
	if len(description) > DescriptionMaxLen {
		cut := DescriptionMaxLen
		for cut > 0 && !utf8.RuneStart(description[cut]) {
			cut--
		}
		description = description[:cut]
	}
	s.ActiveAgents = append(s.ActiveAgents, AgentEntry{
		Kind:        kind,
		StartedAt:   now,
		Description: description,
	})
}

// Bump increments a usage counter. Counters only ever grow within a session.
func (s *State) Bump(category string) {
	s.UsageCounters[category]++
}
