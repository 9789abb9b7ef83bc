package registry

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	reg, hash, err := LoadWithHash(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reg.Shell) != len(DefaultRules.Shell) {
		t.Errorf("expected default shell table, got %d rows", len(reg.Shell))
	}
	if hash == "" || reg.Hash != hash {
		t.Errorf("expected hash recorded on registry, got %q / %q", hash, reg.Hash)
	}
}

func TestLoadOverlayReplacesWholeTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	overlay := `
shell:
  - pattern: 'drop\s+database'
    category: shell_danger
    message: database drop
`
	if err := os.WriteFile(path, []byte(overlay), 0o600); err != nil {
		t.Fatalf("write overlay: %v", err)
	}

	reg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reg.Shell) != 1 {
		t.Errorf("expected overlay to replace the shell table, got %d rows", len(reg.Shell))
	}
	// Absent tables keep their defaults.
	if len(reg.Secrets) != len(DefaultRules.Secrets) {
		t.Errorf("expected default secrets table, got %d rows", len(reg.Secrets))
	}
	if len(reg.ToolPreferences) != len(DefaultRules.ToolPreferences) {
		t.Errorf("expected default tool preferences, got %d rows", len(reg.ToolPreferences))
	}
}

func TestLoadInvalidYAMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("shell: [not: closed"), 0o600); err != nil {
		t.Fatalf("write overlay: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadInvalidPatternFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	overlay := `
shell:
  - pattern: '([unclosed'
    category: shell_danger
    message: bad
`
	if err := os.WriteFile(path, []byte(overlay), 0o600); err != nil {
		t.Fatalf("write overlay: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected compile error")
	}
}

func TestLoadHashChangesWithContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")

	_, missingHash, err := LoadWithHash(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := os.WriteFile(path, []byte("protected_paths: [\"/srv/secrets/\"]\n"), 0o600); err != nil {
		t.Fatalf("write overlay: %v", err)
	}
	_, overlayHash, err := LoadWithHash(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if missingHash == overlayHash {
		t.Error("expected overlay content to change the hash")
	}
}

func TestDefaultRulesYAMLTemplateLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte(DefaultRulesYAML()), 0o600); err != nil {
		t.Fatalf("write template: %v", err)
	}

	// The generated template is fully commented out, so loading it must
	// yield the compiled-in defaults unchanged.
	reg, err := Load(path)
	if err != nil {
		t.Fatalf("template must load cleanly: %v", err)
	}
	if len(reg.Shell) != len(DefaultRules.Shell) {
		t.Errorf("expected default shell table, got %d rows", len(reg.Shell))
	}
}
