package registry

import "testing"

func TestCompileDefaults(t *testing.T) {
	reg, err := Compile(DefaultRules)
	if err != nil {
		t.Fatalf("default rules must compile: %v", err)
	}
	if len(reg.Shell) != len(DefaultRules.Shell) {
		t.Errorf("expected %d shell patterns, got %d", len(DefaultRules.Shell), len(reg.Shell))
	}
	if len(reg.Secrets) != len(DefaultRules.Secrets) {
		t.Errorf("expected %d secret patterns, got %d", len(DefaultRules.Secrets), len(reg.Secrets))
	}
	if len(reg.ParamChecks) != len(DefaultRules.ParamChecks) {
		t.Errorf("expected %d param checks, got %d", len(DefaultRules.ParamChecks), len(reg.ParamChecks))
	}
}

func TestCompileInvalidPatternFails(t *testing.T) {
	rules := Rules{
		Shell: []RawPattern{{Pattern: `([unclosed`, Category: "shell_danger", Message: "bad"}},
	}
	if _, err := Compile(rules); err == nil {
		t.Fatal("expected compile error for invalid pattern")
	}
}

func TestMatchProtectedPath(t *testing.T) {
	reg, err := Compile(DefaultRules)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	cases := []struct {
		path string
		want bool
	}{
		{"/home/user/.ssh/id_rsa", true},
		{"/home/user/.aws/credentials", true},
		{"/etc/shadow", true},
		{"/srv/app/.env", true},
		{"/srv/app/config/credentials.json", true},
		{"/SRV/APP/.ENV", true},
		{"/home/user/project/main.go", false},
		{"/tmp/notes.txt", false},
	}
	for _, tc := range cases {
		_, got := reg.MatchProtectedPath(tc.path)
		if got != tc.want {
			t.Errorf("MatchProtectedPath(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestParamCheckAppliesTo(t *testing.T) {
	pc := ParamCheck{ToolPrefixes: []string{"mcp__github__", "mcp__gitlab__"}}
	if !pc.AppliesTo("mcp__github__create_issue") {
		t.Error("expected prefix match")
	}
	if pc.AppliesTo("mcp__serena__find_symbol") {
		t.Error("expected no match for other toolset")
	}
}

func TestToolPreferenceAvoided(t *testing.T) {
	tp := ToolPreference{Avoid: []string{"Grep", "Search"}}
	if !tp.Avoided("Grep") {
		t.Error("expected Grep avoided")
	}
	if tp.Avoided("Read") {
		t.Error("expected Read not avoided")
	}
}

func TestMaxSequenceLen(t *testing.T) {
	reg := &Registry{Sequences: []Sequence{
		{Tools: []string{"Read", "Read"}},
		{Tools: []string{"Grep", "Read", "Grep", "Read"}},
	}}
	if got := reg.MaxSequenceLen(); got != 4 {
		t.Errorf("expected 4, got %d", got)
	}
}

func TestPraiseForFirstPrefixWins(t *testing.T) {
	reg, err := Compile(DefaultRules)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	serena := reg.PraiseFor("mcp__serena__search_for_pattern")
	generic := reg.PraiseFor("mcp__playwright__click")
	if serena == "" || generic == "" {
		t.Fatal("expected praise for MCP tools")
	}
	if serena == generic {
		t.Error("expected the serena-specific message before the catch-all")
	}
	if got := reg.PraiseFor("Bash"); got != "" {
		t.Errorf("expected no praise for standard tool, got %q", got)
	}
}

func TestAgentByName(t *testing.T) {
	reg, err := Compile(DefaultRules)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if _, ok := reg.AgentByName("code-reviewer"); !ok {
		t.Error("expected code-reviewer registered")
	}
	if _, ok := reg.AgentByName("nonexistent"); ok {
		t.Error("expected miss for unknown agent")
	}
}
