package classify

import (
	"fmt"
	"strings"

	"github.com/ppiankov/hookgate/internal/model"
	"github.com/ppiankov/hookgate/internal/registry"
	"github.com/ppiankov/hookgate/internal/session"
)

// SessionLifecycle greets a new session with the current tool-priority
// policy so the agent starts with the preferred toolset in context.
type SessionLifecycle struct {
	Registry *registry.Registry
}

func (c *SessionLifecycle) Name() string { return "session_lifecycle" }

func (c *SessionLifecycle) Handles(kind model.EventKind) bool { return kind == model.SessionStart }

func (c *SessionLifecycle) Classify(_ *model.Event, _ *session.State) []model.Finding {
	var lines []string
	for _, tp := range c.Registry.ToolPreferences {
		if len(tp.Avoid) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: use %s instead of %s",
			tp.Category, tp.Primary, strings.Join(tp.Avoid, "/")))
	}

	msg := "Tool priority policy in effect."
	if len(lines) > 0 {
		msg = "Tool priority policy: " + strings.Join(lines, "; ") + "."
	}

	return []model.Finding{{
		Category:   "session_policy",
		Severity:   model.SeverityInfo,
		Message:    msg,
		Classifier: c.Name(),
	}}
}
