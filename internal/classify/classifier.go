// Package classify contains the per-event classifiers. Each classifier is
// pure: given an event and a session state snapshot it returns findings and
// mutates nothing. The pipeline driver applies all state changes after the
// decision is composed, so feeding the same event against the same state
// always yields the same findings.
package classify

import (
	"strings"

	"github.com/ppiankov/hookgate/internal/model"
	"github.com/ppiankov/hookgate/internal/registry"
	"github.com/ppiankov/hookgate/internal/session"
)

// Classifier inspects one event against the rule tables.
type Classifier interface {
	// Name identifies the classifier in findings and audit records.
	Name() string
	// Handles reports whether the classifier applies to the event kind.
	Handles(kind model.EventKind) bool
	// Classify returns zero or more findings. Must not mutate evt or st.
	Classify(evt *model.Event, st *session.State) []model.Finding
}

// Default returns the full classifier set in evaluation order.
func Default(reg *registry.Registry) []Classifier {
	return []Classifier{
		&Security{Registry: reg},
		&ToolPreference{Registry: reg},
		&SequenceInefficiency{Registry: reg},
		&Reinforcement{Registry: reg},
		&AgentDetection{Registry: reg},
		&PostInvocation{},
		&SessionLifecycle{Registry: reg},
		&PromptGuidance{Registry: reg},
	}
}

// ClassifyTask matches the event's invocation parameters against the
// tool-preference hint sets and returns the first matching category.
// Table order is precedence. Both the preference classifier and the
// driver's usage counters rely on this.
func ClassifyTask(reg *registry.Registry, evt *model.Event) (registry.ToolPreference, bool) {
	for _, tp := range reg.ToolPreferences {
		for _, key := range tp.ParamHints {
			if evt.ToolInput != nil {
				if _, ok := evt.ToolInput[key]; ok {
					return tp, true
				}
			}
		}
		for _, kw := range tp.KeywordHints {
			if inputContains(evt, kw) {
				return tp, true
			}
		}
	}
	return registry.ToolPreference{}, false
}

// inputContains reports whether any string-valued invocation parameter
// contains the keyword, case-insensitively.
func inputContains(evt *model.Event, keyword string) bool {
	kw := strings.ToLower(keyword)
	for _, v := range evt.ToolInput {
		if s, ok := v.(string); ok && strings.Contains(strings.ToLower(s), kw) {
			return true
		}
	}
	return false
}
