package registry

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultDir returns the hookgate configuration directory.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "hookgate")
	}
	return filepath.Join(home, ".hookgate")
}

// DefaultRulesPath returns the default rules overlay location.
func DefaultRulesPath() string {
	return filepath.Join(DefaultDir(), "rules.yaml")
}

// Load reads a rules YAML overlay and compiles the registry.
// Empty path falls back to ~/.hookgate/rules.yaml. A missing file compiles
// the built-in defaults. Invalid YAML or an invalid pattern returns an error.
//
// Overlay semantics: a table present in the YAML replaces the whole built-in
// table; absent tables keep their defaults.
func Load(path string) (*Registry, error) {
	reg, _, err := loadWithHash(path)
	return reg, err
}

// LoadWithHash is Load plus the SHA-256 of the raw overlay bytes, for audit
// records. Defaults-only registries hash empty input.
func LoadWithHash(path string) (*Registry, string, error) {
	return loadWithHash(path)
}

func loadWithHash(path string) (*Registry, string, error) {
	if path == "" {
		path = DefaultRulesPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			reg, cerr := Compile(DefaultRules)
			if cerr != nil {
				return nil, "", cerr
			}
			reg.Hash = hashBytes(nil)
			return reg, reg.Hash, nil
		}
		return nil, "", fmt.Errorf("registry: read rules: %w", err)
	}

	rules := DefaultRules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, "", fmt.Errorf("registry: parse rules: %w", err)
	}

	reg, err := Compile(rules)
	if err != nil {
		return nil, "", err
	}
	reg.Hash = hashBytes(data)
	return reg, reg.Hash, nil
}

func hashBytes(data []byte) string {
	h := sha256.Sum256(data)
	return "sha256:" + hex.EncodeToString(h[:])
}

// DefaultRulesYAML returns a commented overlay template for hookgate init.
// Only the tables a deployment wants to change need to appear; present
// tables replace the built-in defaults wholesale.
func DefaultRulesYAML() string {
	return `# hookgate rules overlay
# Generated by: hookgate init
#
# Any table present here replaces the built-in table of the same name.
# Omitted tables keep their compiled-in defaults.
# Run "hookgate rules" to print the effective tables.

# Dangerous shell patterns (regex over the command text). Matches deny.
#shell:
#  - pattern: 'rm\s+-rf\s+/'
#    category: shell_danger
#    message: recursive delete targeting root

# Secret-shaped content patterns (regex over written content). Matches deny.
#secrets:
#  - pattern: '-----BEGIN (RSA )?PRIVATE KEY-----'
#    category: secret_leakage
#    message: private key material

# Protected resource paths. Writes and edits touching these deny.
#protected_paths:
#  - ~/.ssh/
#  - "**/.env"

# Preferred-tool substitution rules, first matching category wins.
#tool_preferences:
#  - category: code_search
#    primary: mcp__serena__search_for_pattern
#    alternatives: [mcp__serena__find_symbol]
#    avoid: [Grep]
#    param_hints: [pattern, regex]
#    keyword_hints: ["grep -r"]

# Known inefficient call sequences (matched against the history suffix).
#sequences:
#  - tools: [Read, Read, Read]
#    suggestion: use a symbols overview first
#    efficiency: roughly 3x fewer reads

# Agent kinds for spawn-prompt detection, table order = precedence.
# A compatible list of ["*"] suppresses the parallel suggestion.
#agents:
#  - name: code-reviewer
#    keywords: [review, lint]
#    compatible: [test-writer]
`
}
