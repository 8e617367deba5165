// Package persistence provides the SQLite-backed session store: one
// serializable blob per negotiation session, surviving across human actions
// and discarded on new-game.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/townhall/internal/engine"
)

// ErrNotFound is returned when no session exists for an id.
var ErrNotFound = errors.New("session not found")

// Store wraps a SQLite connection for session persistence.
type Store struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	st := &Store{conn: conn}
	if err := st.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return st, nil
}

// Close closes the database connection.
func (st *Store) Close() error {
	return st.conn.Close()
}

func (st *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);
	`
	_, err := st.conn.Exec(schema)
	return err
}

// Save writes the session blob (insert or replace).
func (st *Store) Save(s *engine.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	_, err = st.conn.Exec(
		"INSERT OR REPLACE INTO sessions (id, data, updated_at) VALUES (?, ?, ?)",
		s.ID, string(data), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save session %s: %w", s.ID, err)
	}

	slog.Debug("session saved", "session", s.ID, "round", s.Round)
	return nil
}

// Load reads one session by id.
func (st *Store) Load(id string) (*engine.Session, error) {
	var data string
	err := st.conn.Get(&data, "SELECT data FROM sessions WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}

	var s engine.Session
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", id, err)
	}
	return &s, nil
}

// Delete discards a session (the new-game path).
func (st *Store) Delete(id string) error {
	res, err := st.conn.Exec("DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SessionInfo is a summary row for the session listing.
type SessionInfo struct {
	ID        string    `db:"id"`
	UpdatedAt time.Time `db:"updated_at"`
}

// List returns summaries of all stored sessions, most recent first.
func (st *Store) List() ([]SessionInfo, error) {
	var out []SessionInfo
	err := st.conn.Select(&out, "SELECT id, updated_at FROM sessions ORDER BY updated_at DESC")
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return out, nil
}
