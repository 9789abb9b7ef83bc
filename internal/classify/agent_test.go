package classify

import (
	"strings"
	"testing"

	"github.com/ppiankov/hookgate/internal/model"
)

func TestDetectAgentKindByName(t *testing.T) {
	reg := testRegistry(t)
	kind, ok := DetectAgentKind(reg, "spawn a code-reviewer for this diff")
	if !ok || kind.Name != "code-reviewer" {
		t.Errorf("expected code-reviewer by literal name, got %v %v", kind.Name, ok)
	}
}

func TestDetectAgentKindByKeyword(t *testing.T) {
	reg := testRegistry(t)

	cases := []struct {
		text string
		want string
	}{
		{"please review the changes in auth.go", "code-reviewer"},
		{"write regression tests for the parser", "test-writer"},
		{"audit this module for vulnerabilities", "security-auditor"},
		{"investigate how the cache invalidates", "researcher"},
	}
	for _, tc := range cases {
		kind, ok := DetectAgentKind(reg, tc.text)
		if !ok || kind.Name != tc.want {
			t.Errorf("DetectAgentKind(%q) = %v %v, want %s", tc.text, kind.Name, ok, tc.want)
		}
	}
}

func TestDetectAgentKindNoMatch(t *testing.T) {
	reg := testRegistry(t)
	if _, ok := DetectAgentKind(reg, "make me a sandwich"); ok {
		t.Error("expected no detection")
	}
	if _, ok := DetectAgentKind(reg, ""); ok {
		t.Error("expected no detection for empty text")
	}
}

func TestAgentDetectionFinding(t *testing.T) {
	c := &AgentDetection{Registry: testRegistry(t)}
	evt := &model.Event{
		Kind:      model.SubagentStart,
		SessionID: "s1",
		Prompt:    "review the diff for style issues",
	}

	findings := c.Classify(evt, nil)
	if len(findings) != 1 {
		t.Fatalf("expected one finding, got %v", findings)
	}
	f := findings[0]
	if f.Severity != model.SeverityInfo {
		t.Errorf("expected info, got %v", f.Severity)
	}
	if !strings.Contains(f.Message, "code-reviewer") {
		t.Errorf("expected detected kind named, got %q", f.Message)
	}
	if !strings.Contains(f.Message, "parallel") {
		t.Errorf("expected a parallel suggestion, got %q", f.Message)
	}
}

func TestAgentDetectionWildcardSuppressesSuggestion(t *testing.T) {
	c := &AgentDetection{Registry: testRegistry(t)}
	evt := &model.Event{
		Kind:      model.SubagentStart,
		SessionID: "s1",
		Prompt:    "refactor the session package for clarity",
	}

	findings := c.Classify(evt, nil)
	if len(findings) != 1 {
		t.Fatalf("expected one finding, got %v", findings)
	}
	if strings.Contains(findings[0].Message, "parallel") {
		t.Errorf("wildcard compatibility must suppress the suggestion, got %q", findings[0].Message)
	}
}

func TestAgentDetectionCapsCompatibleList(t *testing.T) {
	c := &AgentDetection{Registry: testRegistry(t)}
	evt := &model.Event{
		Kind:      model.SubagentStart,
		SessionID: "s1",
		Prompt:    "research the caching options and compare them",
	}

	findings := c.Classify(evt, nil)
	if len(findings) != 1 {
		t.Fatalf("expected one finding, got %v", findings)
	}
	// researcher declares four compatible kinds; only three are suggested.
	listed := strings.Count(findings[0].Message, ",")
	if listed > 2 {
		t.Errorf("expected at most three suggestions, got %q", findings[0].Message)
	}
}

func TestAgentDetectionUnknownKindSilent(t *testing.T) {
	c := &AgentDetection{Registry: testRegistry(t)}
	evt := &model.Event{
		Kind:      model.SubagentStart,
		SessionID: "s1",
		Prompt:    "handle this generic task",
	}

	if findings := c.Classify(evt, nil); len(findings) != 0 {
		t.Errorf("undetected kinds produce no finding, got %v", findings)
	}
}

func TestSpawnTextFallbacks(t *testing.T) {
	evt := &model.Event{Prompt: "top-level prompt"}
	if got := SpawnText(evt); got != "top-level prompt" {
		t.Errorf("expected top-level prompt, got %q", got)
	}

	evt = &model.Event{ToolInput: map[string]any{"prompt": "input prompt"}}
	if got := SpawnText(evt); got != "input prompt" {
		t.Errorf("expected tool_input prompt, got %q", got)
	}

	evt = &model.Event{ToolInput: map[string]any{"description": "spawn description"}}
	if got := SpawnText(evt); got != "spawn description" {
		t.Errorf("expected description fallback, got %q", got)
	}
}
