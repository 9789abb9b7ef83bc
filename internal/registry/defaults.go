package registry

// DefaultRules contains the built-in classification tables. A rules YAML
// overlay replaces whole tables, never individual rows.
var DefaultRules = Rules{
	Shell: []RawPattern{
		{Pattern: `rm\s+(-[a-zA-Z]+\s+)*-[a-zA-Z]*[rf][a-zA-Z]*\s+[/~]`, Category: "shell_danger",
			Message: "recursive delete targeting root or home"},
		{Pattern: `:\(\)\s*\{\s*:\|:&\s*\}\s*;\s*:`, Category: "shell_danger",
			Message: "fork bomb"},
		{Pattern: `(curl|wget)[^|;&]*\|\s*(ba|z|da)?sh`, Category: "shell_danger",
			Message: "piping a remote download straight into a shell"},
		{Pattern: `chmod\s+-R\s+777\s+/`, Category: "shell_danger",
			Message: "world-writable permissions on the filesystem root"},
		{Pattern: `>\s*/dev/sd[a-z]`, Category: "shell_danger",
			Message: "raw write to a block device"},
		{Pattern: `dd\s+if=\S+\s+of=/dev/`, Category: "shell_danger",
			Message: "dd onto a device node"},
		{Pattern: `mkfs(\.|\s)`, Category: "shell_danger",
			Message: "filesystem format command"},
		{Pattern: `git\s+push\s+(--force|-f)\b`, Category: "shell_danger",
			Message: "force push rewrites remote history"},
		{Pattern: `sudo\s+(su|-i)\b`, Category: "shell_danger",
			Message: "interactive root shell escalation"},
		{Pattern: `(printenv|/proc/[0-9a-z*]+/environ)`, Category: "secret_leakage",
			Message: "dumping the process environment exposes credentials"},
		{Pattern: `(\.\./){3,}`, Category: "path_traversal",
			Message: "deep parent-directory traversal"},
		{Pattern: `base64\s+(-d|--decode)[^|]*\|\s*(ba)?sh`, Category: "dynamic_execution",
			Message: "executing decoded base64 payload"},
		{Pattern: `eval\s+("\$|\$\()`, Category: "dynamic_execution",
			Message: "eval of interpolated shell input"},
	},
	Secrets: []RawPattern{
		{Pattern: `(?i)(password|passwd|pwd)\s*[:=]\s*["'][^"']{4,}`, Category: "secret_leakage",
			Message: "password assignment"},
		{Pattern: `(?i)(api[_-]?key|apikey|secret[_-]?key|access[_-]?token|auth[_-]?token)\s*[:=]\s*["']?[A-Za-z0-9_\-/+]{8,}`, Category: "secret_leakage",
			Message: "API key or token assignment"},
		{Pattern: `-----BEGIN (RSA |EC |DSA |OPENSSH |PGP )?PRIVATE KEY-----`, Category: "secret_leakage",
			Message: "private key material"},
		{Pattern: `(?i)aws_secret_access_key\s*=\s*\S+`, Category: "secret_leakage",
			Message: "AWS secret access key"},
	},
	ProtectedPaths: []string{
		"~/.ssh/",
		"~/.aws/credentials",
		"~/.kube/config",
		"~/.gnupg/",
		"/etc/passwd",
		"/etc/shadow",
		"/etc/sudoers",
		"**/.env",
		"**/credentials.json",
		"**/id_rsa",
		"**/id_ed25519",
	},
	ParamChecks: []RawParamCheck{
		{
			Param:        "body",
			ToolPrefixes: []string{"mcp__github__", "mcp__gitlab__"},
			Severity:     "block",
			Patterns: []RawPattern{
				{Pattern: `(?i)<script[\s>]`, Category: "code_injection", Message: "script tag in body content"},
				{Pattern: `(eval|exec)\s*\(`, Category: "code_injection", Message: "dynamic code evaluation in body content"},
				{Pattern: `child_process|os\.system|subprocess\.(run|call|Popen)|__import__`, Category: "code_injection",
					Message: "process spawn primitive in body content"},
			},
		},
		{
			Param:        "pattern",
			ToolPrefixes: []string{"Grep", "mcp__serena__search_for_pattern"},
			Severity:     "warn",
			Patterns: []RawPattern{
				{Pattern: `\([^)]*[+*]\)[+*]`, Category: "regex_safety",
					Message:    "nested quantifier risks catastrophic backtracking",
					Suggestion: "anchor the pattern or replace the nested quantifier with a bounded repeat"},
				{Pattern: `(\.\*){3,}`, Category: "regex_safety",
					Message:    "stacked wildcards scan the whole input repeatedly",
					Suggestion: "narrow the pattern with literal context around each wildcard"},
			},
		},
		{
			Param:        "script",
			ToolPrefixes: []string{"mcp__playwright__", "mcp__browser__"},
			Severity:     "warn",
			Patterns: []RawPattern{
				{Pattern: `document\.cookie`, Category: "browser_script", Message: "script reads browser cookies"},
				{Pattern: `localStorage|sessionStorage`, Category: "browser_script", Message: "script touches browser storage"},
				{Pattern: `eval\s*\(`, Category: "browser_script", Message: "script evaluates dynamic code"},
			},
		},
	},
	ToolPreferences: []ToolPreference{
		{
			Category:     "code_search",
			Primary:      "mcp__serena__search_for_pattern",
			Alternatives: []string{"mcp__serena__find_symbol"},
			Avoid:        []string{"Grep", "Search"},
			ParamHints:   []string{"pattern", "regex"},
			KeywordHints: []string{"grep -r", "rg ", "find . -name"},
		},
		{
			Category:     "code_understanding",
			Primary:      "mcp__serena__find_symbol",
			Alternatives: []string{"mcp__serena__get_symbols_overview"},
			Avoid:        []string{},
			ParamHints:   []string{"symbol", "name_path"},
			KeywordHints: []string{"definition of", "who calls"},
		},
		{
			Category:     "code_editing",
			Primary:      "Edit",
			Alternatives: []string{"mcp__serena__replace_symbol_body"},
			Avoid:        []string{"Bash"},
			ParamHints:   []string{"old_string", "new_string"},
			KeywordHints: []string{"sed -i", "perl -pi"},
		},
		{
			Category:     "documentation",
			Primary:      "mcp__context7__get-library-docs",
			Alternatives: []string{"mcp__context7__resolve-library-id"},
			Avoid:        []string{"WebFetch"},
			ParamHints:   []string{"url"},
			KeywordHints: []string{"documentation", "api reference"},
		},
		{
			Category:     "file_operations",
			Primary:      "Read",
			Alternatives: []string{"Glob"},
			Avoid:        []string{"Bash"},
			ParamHints:   []string{"file_path", "path"},
			KeywordHints: []string{"cat ", "head ", "tail ", "ls "},
		},
	},
	Sequences: []Sequence{
		{
			Tools:      []string{"Grep", "Read", "Grep", "Read"},
			Suggestion: "use mcp__serena__search_for_pattern with context lines to get matches and surrounding code in one call",
			Efficiency: "replaces four calls with one",
		},
		{
			Tools:      []string{"Read", "Read", "Read"},
			Suggestion: "use mcp__serena__get_symbols_overview to map the files before reading bodies",
			Efficiency: "roughly 3x fewer reads",
		},
		{
			Tools:      []string{"Glob", "Grep", "Read"},
			Suggestion: "mcp__serena__find_symbol jumps straight to the definition",
			Efficiency: "replaces three calls with one",
		},
		{
			Tools:      []string{"Edit", "Bash", "Edit", "Bash"},
			Suggestion: "batch the edits, then run the test suite once",
			Efficiency: "halves the command count",
		},
	},
	Agents: []AgentKind{
		{Name: "code-reviewer", Keywords: []string{"review", "lint", "critique"},
			Compatible: []string{"test-writer", "doc-writer", "security-auditor"}},
		{Name: "test-writer", Keywords: []string{"test", "coverage", "regression"},
			Compatible: []string{"code-reviewer", "doc-writer"}},
		{Name: "doc-writer", Keywords: []string{"document", "readme", "changelog"},
			Compatible: []string{"code-reviewer", "test-writer"}},
		{Name: "security-auditor", Keywords: []string{"security", "vulnerability", "audit"},
			Compatible: []string{"code-reviewer"}},
		{Name: "refactorer", Keywords: []string{"refactor", "cleanup", "restructure"},
			Compatible: []string{WildcardCompatible}},
		{Name: "researcher", Keywords: []string{"research", "investigate", "explore", "compare"},
			Compatible: []string{"code-reviewer", "test-writer", "doc-writer", "security-auditor"}},
	},
	Praise: []PraiseRule{
		{Prefix: "mcp__serena__", Message: "Good choice — semantic code tools keep context small."},
		{Prefix: "mcp__context7__", Message: "Good choice — live library docs beat guessing APIs."},
		{Prefix: "mcp__", Message: "Good choice — MCP tools are preferred here."},
	},
}
