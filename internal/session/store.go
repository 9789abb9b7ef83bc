package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

// Store persists one State record per session identifier.
//
// Load never fails: a missing, unreadable, or corrupt record yields a fresh
// default state, so a wiped backing store only costs history, never a
// decision. Save is best-effort; callers log the error and continue.
//
// The store assumes a single writer per session. Concurrent pipelines for
// the same session are last-write-wins; cross-process locking is out of
// scope by design.
type Store interface {
	Load(sessionID string) *State
	Save(state *State) error
}

// validSessionChar matches characters kept verbatim in state filenames.
var validSessionChar = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// sanitizeID maps an arbitrary session identifier to a safe filename stem.
// Replacing instead of rejecting keeps Load infallible.
func sanitizeID(id string) string {
	if id == "" {
		return "_"
	}
	return validSessionChar.ReplaceAllString(id, "_")
}

// FileStore keeps one JSON file per session under a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("session: create state directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// DefaultDir returns the default session state directory.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "hookgate-sessions")
	}
	return filepath.Join(home, ".hookgate", "sessions")
}

// Load reads the session record, returning a fresh default state when the
// file is absent or corrupt. Corruption is swallowed: a half-written record
// must never surface as a decision-affecting error.
func (fs *FileStore) Load(sessionID string) *State {
	data, err := os.ReadFile(fs.path(sessionID))
	if err != nil {
		return New(sessionID)
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return New(sessionID)
	}
	st.normalize(sessionID)
	return &st
}

// Save writes the record atomically via a temp file and rename.
func (fs *FileStore) Save(state *State) error {
	state.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("session: marshal state: %w", err)
	}

	path := fs.path(state.SessionID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("session: write state: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("session: rename state: %w", err)
	}
	return nil
}

// Delete removes a session record. Used by `hookgate session clear`.
func (fs *FileStore) Delete(sessionID string) error {
	err := os.Remove(fs.path(sessionID))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("session: delete state: %w", err)
	}
	return nil
}

func (fs *FileStore) path(sessionID string) string {
	return filepath.Join(fs.dir, sanitizeID(sessionID)+".json")
}
