package classify

import (
	"fmt"
	"strings"

	"github.com/ppiankov/hookgate/internal/model"
	"github.com/ppiankov/hookgate/internal/registry"
	"github.com/ppiankov/hookgate/internal/session"
)

// SequenceInefficiency compares the tail of the session's recent history
// against the registered inefficient sequences. A suffix match means the
// agent just finished an inefficient pattern, so the next call gets an ask
// with the registered suggestion.
type SequenceInefficiency struct {
	Registry *registry.Registry
}

func (c *SequenceInefficiency) Name() string { return "sequence" }

func (c *SequenceInefficiency) Handles(kind model.EventKind) bool { return kind == model.PreToolUse }

func (c *SequenceInefficiency) Classify(_ *model.Event, st *session.State) []model.Finding {
	recent := st.RecentTools(c.Registry.MaxSequenceLen())

	for _, seq := range c.Registry.Sequences {
		if !suffixMatch(recent, seq.Tools) {
			continue
		}
		return []model.Finding{{
			Category: "sequence_inefficiency",
			Severity: model.SeverityWarn,
			Message: fmt.Sprintf("inefficient sequence %s — %s (%s)",
				strings.Join(seq.Tools, "→"), seq.Suggestion, seq.Efficiency),
			Suggestion: seq.Suggestion,
			Classifier: c.Name(),
		}}
	}
	return nil
}

// suffixMatch reports whether history ends exactly with seq.
func suffixMatch(history, seq []string) bool {
	if len(seq) == 0 || len(history) < len(seq) {
		return false
	}
	offset := len(history) - len(seq)
	for i, tool := range seq {
		if history[offset+i] != tool {
			return false
		}
	}
	return true
}
