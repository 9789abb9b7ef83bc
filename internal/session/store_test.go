package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileStoreRoundTrip(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	st := New("s1")
	st.RecordInvocation("Bash", "command=ls", time.Now().UTC())
	st.Bump("standard_calls")
	st.CurrentWave = "executing"
	if err := fs.Save(st); err != nil {
		t.Fatalf("save: %v", err)
	}

	got := fs.Load("s1")
	if len(got.RecentHistory) != 1 || got.RecentHistory[0].Tool != "Bash" {
		t.Errorf("expected history round-trip, got %v", got.RecentHistory)
	}
	if got.UsageCounters["standard_calls"] != 1 {
		t.Errorf("expected counter round-trip, got %v", got.UsageCounters)
	}
	if got.CurrentWave != "executing" {
		t.Errorf("expected wave executing, got %q", got.CurrentWave)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("expected updated_at set on save")
	}
}

func TestFileStoreLoadMissingYieldsDefault(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	st := fs.Load("never-saved")
	if st.SessionID != "never-saved" {
		t.Errorf("expected session id carried, got %q", st.SessionID)
	}
	if st.CurrentWave != InitialWave {
		t.Errorf("expected initial wave, got %q", st.CurrentWave)
	}
}

func TestFileStoreLoadCorruptYieldsDefault(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "s1.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write corrupt record: %v", err)
	}

	st := fs.Load("s1")
	if len(st.RecentHistory) != 0 || st.CurrentWave != InitialWave {
		t.Error("expected fresh default state for corrupt record")
	}
}

func TestFileStoreLoadPartialRecordNormalizes(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	// A legacy record missing collections must still load usable.
	if err := os.WriteFile(filepath.Join(dir, "s1.json"), []byte(`{"session_id":"s1"}`), 0o600); err != nil {
		t.Fatalf("write partial record: %v", err)
	}

	st := fs.Load("s1")
	if st.ActiveAgents == nil || st.RecentHistory == nil || st.UsageCounters == nil {
		t.Error("expected collections repaired on load")
	}
	if st.CurrentWave != InitialWave {
		t.Errorf("expected initial wave, got %q", st.CurrentWave)
	}
}

func TestFileStoreDelete(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	st := New("s1")
	if err := fs.Save(st); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := fs.Delete("s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := fs.Delete("s1"); err != nil {
		t.Errorf("deleting a missing record must be a no-op, got %v", err)
	}
}

func TestSanitizeID(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"abc-123", "abc-123"},
		{"../../etc/passwd", ".._.._etc_passwd"},
		{"a b/c", "a_b_c"},
		{"", "_"},
	}
	for _, tc := range cases {
		if got := sanitizeID(tc.in); got != tc.want {
			t.Errorf("sanitizeID(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMemStoreIsolatesCopies(t *testing.T) {
	m := NewMemStore()

	st := New("s1")
	st.Bump("prompts")
	st.RecordInvocation("Read", "", time.Now().UTC())
	if err := m.Save(st); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Mutations after Save must not leak into the stored record.
	st.CurrentWave = "executing"
	st.Bump("prompts")
	st.RecentHistory[0].Tool = "Bash"

	got := m.Load("s1")
	if got.CurrentWave != InitialWave {
		t.Errorf("expected stored copy unaffected by later mutation, got wave %q", got.CurrentWave)
	}
	if got.UsageCounters["prompts"] != 1 {
		t.Errorf("expected counter preserved, got %v", got.UsageCounters)
	}
	if got.RecentHistory[0].Tool != "Read" {
		t.Errorf("expected history entry preserved, got %v", got.RecentHistory)
	}

	// And mutations on a loaded copy must not leak back.
	got.Bump("prompts")
	again := m.Load("s1")
	if again.UsageCounters["prompts"] != 1 {
		t.Errorf("expected loaded copies isolated, got %v", again.UsageCounters)
	}
}
