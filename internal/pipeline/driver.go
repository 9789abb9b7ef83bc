// Package pipeline orchestrates event processing: load session state, run
// the classifiers for the event kind, compose one decision, apply the state
// delta, persist, return. One event in, one decision out; the pipeline is
// stateless across invocations except through the session store.
package pipeline

import (
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/hookgate/internal/audit"
	"github.com/ppiankov/hookgate/internal/classify"
	"github.com/ppiankov/hookgate/internal/model"
	"github.com/ppiankov/hookgate/internal/registry"
	"github.com/ppiankov/hookgate/internal/session"
)

// Config assembles a pipeline.
type Config struct {
	Registry *registry.Registry
	Store    session.Store
	// Audit is optional; decisions are recorded when set.
	Audit *audit.Log
	// Now overrides the clock in tests.
	Now func() time.Time
	// Diag receives persistence diagnostics; defaults to stderr.
	Diag *os.File
}

// Pipeline processes events for any number of sessions, one at a time.
// It assumes a single writer per session; concurrent invocations for the
// same session are last-write-wins on persistence.
type Pipeline struct {
	reg         *registry.Registry
	store       session.Store
	classifiers []classify.Classifier
	auditLog    *audit.Log
	now         func() time.Time
	diag        *os.File
}

// New creates a pipeline with the default classifier set.
func New(cfg Config) *Pipeline {
	now := cfg.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	diag := cfg.Diag
	if diag == nil {
		diag = os.Stderr
	}
	return &Pipeline{
		reg:         cfg.Registry,
		store:       cfg.Store,
		classifiers: classify.Default(cfg.Registry),
		auditLog:    cfg.Audit,
		now:         now,
		diag:        diag,
	}
}

// Process runs one event through the pipeline and returns the decision.
// State persistence failures are logged and never affect the decision;
// fail-open applies only to unparseable input, which is rejected before
// Process is called.
func (p *Pipeline) Process(evt *model.Event) *model.Decision {
	st := p.store.Load(evt.SessionID)

	var findings []model.Finding
	for _, c := range p.classifiers {
		if c.Handles(evt.Kind) {
			findings = append(findings, c.Classify(evt, st)...)
		}
	}

	dec := Compose(evt.Kind, findings)
	p.applyState(evt, st, dec)

	if err := p.store.Save(st); err != nil {
		fmt.Fprintf(p.diag, "hookgate: state save failed: %v\n", err)
	}
	p.recordAudit(evt, dec)

	return dec
}

// applyState mutates session state after the decision is composed.
// Classifiers saw an immutable snapshot; every delta happens here.
func (p *Pipeline) applyState(evt *model.Event, st *session.State, dec *model.Decision) {
	now := p.now()

	switch evt.Kind {
	case model.PreToolUse:
		st.RecordInvocation(evt.ToolName, evt.InputSummary(), now)
		st.CurrentWave = "executing"
		if evt.IsMCPTool() {
			st.Bump("mcp_calls")
		} else {
			st.Bump("standard_calls")
		}
		if tp, ok := classify.ClassifyTask(p.reg, evt); ok {
			st.Bump("task:" + tp.Category)
		}

	case model.PostToolUse:
		st.CompleteInvocation(evt.ToolName, !evt.Failed())

	case model.SubagentStart:
		st.PruneAgents(now)
		kindName := "generic"
		text := classify.SpawnText(evt)
		if kind, ok := classify.DetectAgentKind(p.reg, text); ok {
			kindName = kind.Name
		}
		st.AddAgent(kindName, text, now)
		st.CurrentWave = "delegating"
		st.Bump("agents_spawned")

	case model.SubagentStop:
		pruned := st.PruneAgents(now)
		st.Bump("agents_completed")
		summary := fmt.Sprintf("subagent finished; %d agent(s) still active, %d expired entries pruned, %d completed this session",
			len(st.ActiveAgents), pruned, st.UsageCounters["agents_completed"])
		if dec.Advisory != "" {
			dec.Advisory += " "
		}
		dec.Advisory += summary

	case model.UserPromptSubmit:
		st.CurrentWave = session.InitialWave
		st.Bump("prompts")
	}
}

// DryRun classifies an event against a state snapshot without applying
// state deltas or persisting anything. Used by `hookgate check` and the
// MCP dry-run tool.
func DryRun(reg *registry.Registry, st *session.State, evt *model.Event) *model.Decision {
	var findings []model.Finding
	for _, c := range classify.Default(reg) {
		if c.Handles(evt.Kind) {
			findings = append(findings, c.Classify(evt, st)...)
		}
	}
	return Compose(evt.Kind, findings)
}

func (p *Pipeline) recordAudit(evt *model.Event, dec *model.Decision) {
	if p.auditLog == nil {
		return
	}
	err := p.auditLog.Record(audit.Entry{
		SessionID: evt.SessionID,
		Kind:      string(evt.Kind),
		Tool:      evt.ToolName,
		Outcome:   string(dec.Outcome),
		Reason:    dec.Reason,
		RulesHash: p.reg.Hash,
	})
	if err != nil {
		fmt.Fprintf(p.diag, "hookgate: audit record failed: %v\n", err)
	}
}
