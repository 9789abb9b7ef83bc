package session

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps session records in a single SQLite database. It serves
// deployments where many sessions share one host and per-session files
// become unwieldy; behavior matches FileStore, including the infallible
// Load contract.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, fmt.Errorf("session: create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("session: open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("session: ping database: %w", err)
	}

	// WAL keeps the per-event read-modify-write cycle from blocking on
	// concurrent sessions. The driver does not honor DSN parameters for
	// these, so they are applied as statements.
	for _, pragma := range []string{
		`PRAGMA journal_mode = WAL`,
		`PRAGMA synchronous = NORMAL`,
		`PRAGMA busy_timeout = 5000`,
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("session: %s: %w", pragma, err)
		}
	}

	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		session_id TEXT PRIMARY KEY,
		state_json TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_updated ON sessions(updated_at);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("session: create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// DefaultDBPath returns the default SQLite database location.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "hookgate.db")
	}
	return filepath.Join(home, ".hookgate", "hookgate.db")
}

// Load fetches the session record, returning a fresh default state when the
// row is absent or its JSON is corrupt.
func (s *SQLiteStore) Load(sessionID string) *State {
	var raw string
	err := s.db.QueryRow(
		`SELECT state_json FROM sessions WHERE session_id = ?`, sessionID,
	).Scan(&raw)
	if err != nil {
		return New(sessionID)
	}

	var st State
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		return New(sessionID)
	}
	st.normalize(sessionID)
	return &st
}

// Save upserts the session record.
func (s *SQLiteStore) Save(state *State) error {
	state.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("session: marshal state: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO sessions (session_id, state_json, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			state_json = excluded.state_json,
			updated_at = excluded.updated_at`,
		state.SessionID, string(data), state.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("session: upsert state: %w", err)
	}
	return nil
}

// Delete removes a session record.
func (s *SQLiteStore) Delete(sessionID string) error {
	if _, err := s.db.Exec(`DELETE FROM sessions WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("session: delete state: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("session: close database: %w", err)
	}
	return nil
}
