package classify

import (
	"fmt"
	"strings"

	"github.com/ppiankov/hookgate/internal/model"
	"github.com/ppiankov/hookgate/internal/registry"
	"github.com/ppiankov/hookgate/internal/session"
)

// ToolPreference nudges the agent toward a task category's preferred tools
// when the invoked tool is on that category's avoid list. MCP tools are
// exempt; they are the preferred set.
type ToolPreference struct {
	Registry *registry.Registry
}

func (c *ToolPreference) Name() string { return "tool_preference" }

func (c *ToolPreference) Handles(kind model.EventKind) bool { return kind == model.PreToolUse }

func (c *ToolPreference) Classify(evt *model.Event, _ *session.State) []model.Finding {
	if evt.IsMCPTool() || evt.ToolName == "" {
		return nil
	}

	tp, ok := ClassifyTask(c.Registry, evt)
	if !ok || !tp.Avoided(evt.ToolName) {
		return nil
	}

	msg := fmt.Sprintf("for %s, prefer %s over %s", tp.Category, tp.Primary, evt.ToolName)
	if len(tp.Alternatives) > 0 {
		msg += fmt.Sprintf(" (also: %s)", strings.Join(tp.Alternatives, ", "))
	}

	return []model.Finding{{
		Category:   "tool_preference",
		Severity:   model.SeverityWarn,
		Message:    msg,
		Suggestion: tp.Primary,
		Classifier: c.Name(),
	}}
}
