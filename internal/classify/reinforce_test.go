package classify

import (
	"testing"

	"github.com/ppiankov/hookgate/internal/model"
)

func TestReinforcementPraisesMCPTools(t *testing.T) {
	c := &Reinforcement{Registry: testRegistry(t)}
	evt := &model.Event{
		Kind:      model.PreToolUse,
		SessionID: "s1",
		ToolName:  "mcp__serena__search_for_pattern",
	}

	findings := c.Classify(evt, nil)
	if len(findings) != 1 {
		t.Fatalf("expected one finding, got %v", findings)
	}
	if findings[0].Severity != model.SeverityInfo {
		t.Errorf("praise is advisory only, got %v", findings[0].Severity)
	}
	if findings[0].Message == "" {
		t.Error("expected a non-empty praise message")
	}
}

func TestReinforcementCatchAllPrefix(t *testing.T) {
	c := &Reinforcement{Registry: testRegistry(t)}
	evt := &model.Event{
		Kind:      model.PreToolUse,
		SessionID: "s1",
		ToolName:  "mcp__playwright__click",
	}

	if findings := c.Classify(evt, nil); len(findings) != 1 {
		t.Errorf("expected the catch-all praise row to fire, got %v", findings)
	}
}

func TestReinforcementIgnoresStandardTools(t *testing.T) {
	c := &Reinforcement{Registry: testRegistry(t)}
	evt := &model.Event{
		Kind:      model.PreToolUse,
		SessionID: "s1",
		ToolName:  "Bash",
	}

	if findings := c.Classify(evt, nil); len(findings) != 0 {
		t.Errorf("standard tools get no praise, got %v", findings)
	}
}
