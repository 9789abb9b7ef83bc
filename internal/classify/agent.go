package classify

import (
	"fmt"
	"strings"

	"github.com/ppiankov/hookgate/internal/model"
	"github.com/ppiankov/hookgate/internal/registry"
	"github.com/ppiankov/hookgate/internal/session"
)

// AgentDetection inspects subagent spawn prompts, detects the agent kind,
// and suggests kinds that can safely run in parallel with it.
type AgentDetection struct {
	Registry *registry.Registry
}

func (c *AgentDetection) Name() string { return "agent_detection" }

func (c *AgentDetection) Handles(kind model.EventKind) bool { return kind == model.SubagentStart }

func (c *AgentDetection) Classify(evt *model.Event, _ *session.State) []model.Finding {
	kind, ok := DetectAgentKind(c.Registry, SpawnText(evt))
	if !ok {
		return nil
	}

	compatible := compatibleKinds(kind)
	msg := fmt.Sprintf("detected %s agent", kind.Name)
	if compatible != nil {
		msg += fmt.Sprintf("; can run in parallel with: %s", strings.Join(compatible, ", "))
	}

	return []model.Finding{{
		Category:   "agent_detection",
		Severity:   model.SeverityInfo,
		Message:    msg,
		Classifier: c.Name(),
	}}
}

// SpawnText extracts the prompt text an agent spawn carries.
func SpawnText(evt *model.Event) string {
	if evt.Prompt != "" {
		return evt.Prompt
	}
	if p := evt.StringInput("prompt"); p != "" {
		return p
	}
	return evt.StringInput("description")
}

// DetectAgentKind resolves the agent kind from spawn text. A kind name
// appearing literally wins; otherwise the keyword sets are scanned in table
// order, first match wins.
func DetectAgentKind(reg *registry.Registry, text string) (registry.AgentKind, bool) {
	lower := strings.ToLower(text)
	if lower == "" {
		return registry.AgentKind{}, false
	}

	for _, a := range reg.Agents {
		if strings.Contains(lower, strings.ToLower(a.Name)) {
			return a, true
		}
	}
	for _, a := range reg.Agents {
		for _, kw := range a.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return a, true
			}
		}
	}
	return registry.AgentKind{}, false
}

// compatibleKinds returns up to three parallel-compatible kinds, or nil when
// the wildcard marker suppresses the suggestion.
func compatibleKinds(kind registry.AgentKind) []string {
	for _, cand := range kind.Compatible {
		if cand == registry.WildcardCompatible {
			return nil
		}
	}
	if len(kind.Compatible) == 0 {
		return nil
	}
	if len(kind.Compatible) > 3 {
		return kind.Compatible[:3]
	}
	return kind.Compatible
}
