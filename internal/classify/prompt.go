package classify

import (
	"fmt"
	"strings"

	"github.com/ppiankov/hookgate/internal/model"
	"github.com/ppiankov/hookgate/internal/registry"
	"github.com/ppiankov/hookgate/internal/session"
)

// maxSuggestedAgents bounds prompt-guidance agent suggestions.
const maxSuggestedAgents = 3

// PromptGuidance inspects a submitted prompt before any tool runs and
// suggests agent kinds worth delegating to and preferred tools for the
// matched task categories. Purely advisory; it reuses the agent-kind and
// tool-preference tables, so overlays tune it the same way.
type PromptGuidance struct {
	Registry *registry.Registry
}

func (c *PromptGuidance) Name() string { return "prompt_guidance" }

func (c *PromptGuidance) Handles(kind model.EventKind) bool { return kind == model.UserPromptSubmit }

func (c *PromptGuidance) Classify(evt *model.Event, _ *session.State) []model.Finding {
	prompt := strings.ToLower(strings.TrimSpace(evt.Prompt))
	if prompt == "" {
		return nil
	}

	agents := c.matchAgents(prompt)
	tools := c.matchTools(prompt)
	if len(agents) == 0 && len(tools) == 0 {
		return nil
	}

	var parts []string
	if len(agents) > 0 {
		parts = append(parts, "consider delegating to: "+strings.Join(agents, ", "))
	}
	if len(agents) > 1 {
		parts = append(parts, "several kinds matched and can run as parallel subagents")
	}
	if len(tools) > 0 {
		parts = append(parts, "preferred tools for this: "+strings.Join(tools, ", "))
	}

	return []model.Finding{{
		Category:   "prompt_guidance",
		Severity:   model.SeverityInfo,
		Message:    strings.Join(parts, ". ") + ".",
		Classifier: c.Name(),
	}}
}

// matchAgents returns every agent kind whose keyword set matches the prompt,
// in table order, capped.
func (c *PromptGuidance) matchAgents(prompt string) []string {
	var out []string
	for _, a := range c.Registry.Agents {
		for _, kw := range a.Keywords {
			if strings.Contains(prompt, strings.ToLower(kw)) {
				out = append(out, a.Name)
				break
			}
		}
		if len(out) == maxSuggestedAgents {
			break
		}
	}
	return out
}

// matchTools returns the primary tool of every task category whose keyword
// hints match the prompt.
func (c *PromptGuidance) matchTools(prompt string) []string {
	var out []string
	for _, tp := range c.Registry.ToolPreferences {
		for _, kw := range tp.KeywordHints {
			if strings.Contains(prompt, strings.ToLower(kw)) {
				out = append(out, fmt.Sprintf("%s (%s)", tp.Primary, tp.Category))
				break
			}
		}
	}
	return out
}
