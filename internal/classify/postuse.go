package classify

import (
	"fmt"

	"github.com/ppiankov/hookgate/internal/model"
	"github.com/ppiankov/hookgate/internal/session"
)

// PostInvocation reviews completed tool calls. A failed MCP tool call is a
// fatal finding: the action already ran, so the composer reports a hard
// post-hoc stop rather than a deny. Successful calls produce a severity-free
// bookkeeping finding; the driver marks the history entry completed.
type PostInvocation struct{}

func (c *PostInvocation) Name() string { return "post_invocation" }

func (c *PostInvocation) Handles(kind model.EventKind) bool { return kind == model.PostToolUse }

func (c *PostInvocation) Classify(evt *model.Event, _ *session.State) []model.Finding {
	if evt.Failed() && evt.IsMCPTool() {
		return []model.Finding{{
			Category:   "tool_failure",
			Severity:   model.SeverityFatal,
			Message:    fmt.Sprintf("%s failed; stop and reassess before continuing", evt.ToolName),
			Classifier: c.Name(),
		}}
	}

	return []model.Finding{{
		Category:   "bookkeeping",
		Severity:   model.SeverityNone,
		Classifier: c.Name(),
	}}
}
