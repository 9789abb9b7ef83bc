// Package registry holds the static classification tables hookgate evaluates
// events against: security-risk patterns, protected paths, tool-preference
// rules, known inefficient sequences, and agent-kind detection sets.
//
// Tables are pure data. Adding a row changes behavior; no logic changes are
// needed. The compiled Registry value is immutable and passed into the
// pipeline at construction, so tests can inject alternate rule sets.
package registry

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ppiankov/hookgate/internal/model"
)

// RawPattern is one uncompiled detection pattern row.
type RawPattern struct {
	Pattern    string `yaml:"pattern"`
	Category   string `yaml:"category"`
	Message    string `yaml:"message"`
	Suggestion string `yaml:"suggestion,omitempty"`
}

// CompiledPattern is a RawPattern with its regex compiled.
type CompiledPattern struct {
	Re         *regexp.Regexp
	Category   string
	Message    string
	Suggestion string
}

// RawParamCheck targets one invocation parameter of higher-risk tools with
// an extra pattern scan.
type RawParamCheck struct {
	Param        string       `yaml:"param"`
	ToolPrefixes []string     `yaml:"tool_prefixes"`
	Severity     string       `yaml:"severity"`
	Patterns     []RawPattern `yaml:"patterns"`
}

// ParamCheck is the compiled form of RawParamCheck.
type ParamCheck struct {
	Param        string
	ToolPrefixes []string
	Severity     model.Severity
	Patterns     []CompiledPattern
}

// AppliesTo reports whether the check targets the given tool identifier.
func (pc ParamCheck) AppliesTo(tool string) bool {
	for _, p := range pc.ToolPrefixes {
		if strings.HasPrefix(tool, p) {
			return true
		}
	}
	return false
}

// ToolPreference maps one task category to its preferred tools. Entries are
// evaluated in table order; the first category whose hints match wins.
type ToolPreference struct {
	Category     string   `yaml:"category"`
	Primary      string   `yaml:"primary"`
	Alternatives []string `yaml:"alternatives"`
	Avoid        []string `yaml:"avoid"`
	ParamHints   []string `yaml:"param_hints"`
	KeywordHints []string `yaml:"keyword_hints"`
}

// Avoided reports whether the tool is on this category's avoid list.
func (tp ToolPreference) Avoided(tool string) bool {
	for _, a := range tp.Avoid {
		if a == tool {
			return true
		}
	}
	return false
}

// Sequence is a known inefficient multi-step tool pattern.
type Sequence struct {
	Tools      []string `yaml:"tools"`
	Suggestion string   `yaml:"suggestion"`
	Efficiency string   `yaml:"efficiency"`
}

// WildcardCompatible marks an agent kind as parallel-compatible with
// everything; the suggestion is suppressed rather than enumerated.
const WildcardCompatible = "*"

// AgentKind is one detectable subagent kind. Keyword sets are scanned in
// table order; the first matching kind wins.
type AgentKind struct {
	Name       string   `yaml:"name"`
	Keywords   []string `yaml:"keywords"`
	Compatible []string `yaml:"compatible"`
}

// PraiseRule maps an MCP tool prefix to an encouraging message.
type PraiseRule struct {
	Prefix  string `yaml:"prefix"`
	Message string `yaml:"message"`
}

// Rules is the raw, YAML-loadable rule set.
type Rules struct {
	Shell           []RawPattern     `yaml:"shell"`
	Secrets         []RawPattern     `yaml:"secrets"`
	ProtectedPaths  []string         `yaml:"protected_paths"`
	ParamChecks     []RawParamCheck  `yaml:"param_checks"`
	ToolPreferences []ToolPreference `yaml:"tool_preferences"`
	Sequences       []Sequence       `yaml:"sequences"`
	Agents          []AgentKind      `yaml:"agents"`
	Praise          []PraiseRule     `yaml:"praise"`
}

// Registry holds compiled rule tables. Read-only after Compile.
type Registry struct {
	Shell           []CompiledPattern
	Secrets         []CompiledPattern
	ProtectedPaths  []string
	ParamChecks     []ParamCheck
	ToolPreferences []ToolPreference
	Sequences       []Sequence
	Agents          []AgentKind
	Praise          []PraiseRule
	Hash            string
}

// Compile turns raw rules into a Registry, compiling all regexes.
// An invalid pattern fails the whole compile; a registry with half its rows
// silently missing would weaken enforcement without anyone noticing.
func Compile(r Rules) (*Registry, error) {
	reg := &Registry{
		ProtectedPaths:  r.ProtectedPaths,
		ToolPreferences: r.ToolPreferences,
		Sequences:       r.Sequences,
		Agents:          r.Agents,
		Praise:          r.Praise,
	}

	var err error
	if reg.Shell, err = compilePatterns(r.Shell, "shell"); err != nil {
		return nil, err
	}
	if reg.Secrets, err = compilePatterns(r.Secrets, "secrets"); err != nil {
		return nil, err
	}

	for _, pc := range r.ParamChecks {
		compiled, err := compilePatterns(pc.Patterns, "param_checks."+pc.Param)
		if err != nil {
			return nil, err
		}
		sev := model.SeverityWarn
		if pc.Severity == "block" {
			sev = model.SeverityBlock
		}
		reg.ParamChecks = append(reg.ParamChecks, ParamCheck{
			Param:        pc.Param,
			ToolPrefixes: pc.ToolPrefixes,
			Severity:     sev,
			Patterns:     compiled,
		})
	}

	return reg, nil
}

func compilePatterns(raw []RawPattern, table string) ([]CompiledPattern, error) {
	out := make([]CompiledPattern, 0, len(raw))
	for _, rp := range raw {
		re, err := regexp.Compile(rp.Pattern)
		if err != nil {
			return nil, fmt.Errorf("registry: %s pattern %q: %w", table, rp.Pattern, err)
		}
		out = append(out, CompiledPattern{
			Re:         re,
			Category:   rp.Category,
			Message:    rp.Message,
			Suggestion: rp.Suggestion,
		})
	}
	return out, nil
}

// MatchProtectedPath returns the matched pattern when the path touches a
// protected resource. Patterns match by containment after stripping glob
// markers, which is deliberate: a protected path nested anywhere in the
// target still counts.
func (reg *Registry) MatchProtectedPath(path string) (string, bool) {
	lower := strings.ToLower(path)
	for _, p := range reg.ProtectedPaths {
		needle := strings.ToLower(strings.TrimPrefix(strings.TrimPrefix(p, "**/"), "~/"))
		if needle != "" && strings.Contains(lower, needle) {
			return p, true
		}
	}
	return "", false
}

// MaxSequenceLen returns the longest registered inefficient sequence.
func (reg *Registry) MaxSequenceLen() int {
	max := 0
	for _, s := range reg.Sequences {
		if len(s.Tools) > max {
			max = len(s.Tools)
		}
	}
	return max
}

// PraiseFor returns the reinforcement message for an MCP tool identifier.
// First matching prefix wins; the last catch-all row supplies the default.
func (reg *Registry) PraiseFor(tool string) string {
	for _, p := range reg.Praise {
		if strings.HasPrefix(tool, p.Prefix) {
			return p.Message
		}
	}
	return ""
}

// AgentByName returns the agent kind with the given name, if registered.
func (reg *Registry) AgentByName(name string) (AgentKind, bool) {
	for _, a := range reg.Agents {
		if a.Name == name {
			return a, true
		}
	}
	return AgentKind{}, false
}
