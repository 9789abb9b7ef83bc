package classify

import (
	"fmt"

	"github.com/ppiankov/hookgate/internal/model"
	"github.com/ppiankov/hookgate/internal/registry"
	"github.com/ppiankov/hookgate/internal/session"
)

// writeTools are the tool identifiers whose invocations write file content.
var writeTools = map[string]bool{
	"Write":        true,
	"Edit":         true,
	"MultiEdit":    true,
	"NotebookEdit": true,
}

// contentParams are the parameter keys scanned for secret-shaped content on
// write and edit invocations.
var contentParams = []string{"content", "new_string", "new_source"}

// Security flags dangerous shell commands, writes to protected resources,
// secret-shaped content, and risky parameter payloads on higher-risk tools.
// Shell, path, secret, and injection findings block; pattern-safety and
// browser-script findings warn.
type Security struct {
	Registry *registry.Registry
}

func (c *Security) Name() string { return "security" }

func (c *Security) Handles(kind model.EventKind) bool { return kind == model.PreToolUse }

func (c *Security) Classify(evt *model.Event, _ *session.State) []model.Finding {
	var findings []model.Finding

	if cmd := evt.StringInput("command"); cmd != "" {
		for _, p := range c.Registry.Shell {
			if p.Re.MatchString(cmd) {
				findings = append(findings, model.Finding{
					Category:   p.Category,
					Severity:   model.SeverityBlock,
					Message:    fmt.Sprintf("%s: %s", p.Message, model.Truncate(cmd, model.SummaryMaxLen)),
					Suggestion: p.Suggestion,
					Classifier: c.Name(),
				})
			}
		}
	}

	if writeTools[evt.ToolName] {
		findings = append(findings, c.checkWrite(evt)...)
	}

	findings = append(findings, c.checkParams(evt)...)
	return findings
}

func (c *Security) checkWrite(evt *model.Event) []model.Finding {
	var findings []model.Finding

	if path := evt.StringInput("file_path"); path != "" {
		if pattern, ok := c.Registry.MatchProtectedPath(path); ok {
			findings = append(findings, model.Finding{
				Category:   "protected_path",
				Severity:   model.SeverityBlock,
				Message:    fmt.Sprintf("write targets protected resource (%s): %s", pattern, path),
				Classifier: c.Name(),
			})
		}
	}

	for _, key := range contentParams {
		content := evt.StringInput(key)
		if content == "" {
			continue
		}
		for _, p := range c.Registry.Secrets {
			loc := p.Re.FindStringIndex(content)
			if loc == nil {
				continue
			}
			// The message names the category and a truncated preview only;
			// the captured value never echoes back in full.
			preview := model.Truncate(content[loc[0]:loc[1]], 24)
			findings = append(findings, model.Finding{
				Category:   p.Category,
				Severity:   model.SeverityBlock,
				Message:    fmt.Sprintf("%s detected in %s (%q)", p.Message, key, preview),
				Classifier: c.Name(),
			})
		}
	}

	return findings
}

func (c *Security) checkParams(evt *model.Event) []model.Finding {
	var findings []model.Finding
	for _, pc := range c.Registry.ParamChecks {
		if !pc.AppliesTo(evt.ToolName) {
			continue
		}
		value := evt.StringInput(pc.Param)
		if value == "" {
			continue
		}
		for _, p := range pc.Patterns {
			if p.Re.MatchString(value) {
				findings = append(findings, model.Finding{
					Category:   p.Category,
					Severity:   pc.Severity,
					Message:    fmt.Sprintf("%s (param %q)", p.Message, pc.Param),
					Suggestion: p.Suggestion,
					Classifier: c.Name(),
				})
			}
		}
	}
	return findings
}
