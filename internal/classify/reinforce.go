package classify

import (
	"github.com/ppiankov/hookgate/internal/model"
	"github.com/ppiankov/hookgate/internal/registry"
	"github.com/ppiankov/hookgate/internal/session"
)

// Reinforcement attaches an encouraging, tool-specific note to MCP tool
// calls. Purely advisory; it never changes the outcome.
type Reinforcement struct {
	Registry *registry.Registry
}

func (c *Reinforcement) Name() string { return "reinforcement" }

func (c *Reinforcement) Handles(kind model.EventKind) bool { return kind == model.PreToolUse }

func (c *Reinforcement) Classify(evt *model.Event, _ *session.State) []model.Finding {
	if !evt.IsMCPTool() {
		return nil
	}
	msg := c.Registry.PraiseFor(evt.ToolName)
	if msg == "" {
		return nil
	}
	return []model.Finding{{
		Category:   "reinforcement",
		Severity:   model.SeverityInfo,
		Message:    msg,
		Classifier: c.Name(),
	}}
}
