// Package history persists conversations in a local SQLite database and
// exports them as the JSON role/content list the desktop build used.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/lotirium/SUNDAY/internal/chat"
)

// Store wraps the history database. Writes go through a single-connection
// handle so concurrent appends never trip SQLite's locking.
type Store struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

// Session is one recorded conversation.
type Session struct {
	ID        string
	StartedAt time.Time
	Messages  int
}

func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	s := &Store{readDB: readDB, writeDB: writeDB}
	if err := s.init(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			id         TEXT PRIMARY KEY,
			started_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS messages (
			session_id TEXT NOT NULL REFERENCES sessions(id),
			seq        INTEGER NOT NULL,
			role       TEXT NOT NULL,
			content    TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			PRIMARY KEY (session_id, seq)
		);
		CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	var errs []error
	if s.readDB != nil {
		errs = append(errs, s.readDB.Close())
	}
	if s.writeDB != nil {
		errs = append(errs, s.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// Begin records a new session and returns its id.
func (s *Store) Begin() (string, error) {
	id := uuid.NewString()
	_, err := s.writeDB.Exec(
		"INSERT INTO sessions (id, started_at) VALUES (?, ?)",
		id, time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("creating session: %w", err)
	}
	return id, nil
}

// Append adds one message to a session, numbering it after the last.
func (s *Store) Append(sessionID string, msg chat.Message) error {
	_, err := s.writeDB.Exec(`
		INSERT INTO messages (session_id, seq, role, content, created_at)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM messages WHERE session_id = ?), ?, ?, ?)
	`, sessionID, sessionID, msg.Role, msg.Content, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("appending message: %w", err)
	}
	return nil
}

// Messages loads a session's messages in order.
func (s *Store) Messages(sessionID string) ([]chat.Message, error) {
	rows, err := s.readDB.Query(
		"SELECT role, content FROM messages WHERE session_id = ? ORDER BY seq",
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var msgs []chat.Message
	for rows.Next() {
		var m chat.Message
		if err := rows.Scan(&m.Role, &m.Content); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// Sessions lists recorded sessions, newest first.
func (s *Store) Sessions() ([]Session, error) {
	rows, err := s.readDB.Query(`
		SELECT s.id, s.started_at, COUNT(m.session_id)
		FROM sessions s LEFT JOIN messages m ON m.session_id = s.id
		GROUP BY s.id ORDER BY s.started_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.StartedAt, &sess.Messages); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// Prune deletes sessions that started before the retention window and
// returns how many were removed.
func (s *Store) Prune(retention time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-retention)

	tx, err := s.writeDB.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"DELETE FROM messages WHERE session_id IN (SELECT id FROM sessions WHERE started_at < ?)",
		cutoff,
	); err != nil {
		return 0, fmt.Errorf("pruning messages: %w", err)
	}
	res, err := tx.Exec("DELETE FROM sessions WHERE started_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning sessions: %w", err)
	}
	deleted, _ := res.RowsAffected()
	return deleted, tx.Commit()
}

// ExportJSON writes a session as the legacy log format: a JSON list of
// role/content pairs.
func (s *Store) ExportJSON(sessionID, path string) error {
	msgs, err := s.Messages(sessionID)
	if err != nil {
		return err
	}
	if len(msgs) == 0 {
		return fmt.Errorf("session %s has no messages", sessionID)
	}

	data, err := json.MarshalIndent(msgs, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ImportJSON loads a legacy JSON log into a new session and returns its id.
func (s *Store) ImportJSON(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading log: %w", err)
	}
	var msgs []chat.Message
	if err := json.Unmarshal(data, &msgs); err != nil {
		return "", fmt.Errorf("parsing log %s: %w", path, err)
	}

	id, err := s.Begin()
	if err != nil {
		return "", err
	}
	for _, m := range msgs {
		if err := s.Append(id, m); err != nil {
			return "", err
		}
	}
	return id, nil
}

// Stats reports session count, message count, and database size.
func (s *Store) Stats(dbPath string) (sessions, messages int64, size int64, err error) {
	if err = s.readDB.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&sessions); err != nil {
		return 0, 0, 0, fmt.Errorf("counting sessions: %w", err)
	}
	if err = s.readDB.QueryRow("SELECT COUNT(*) FROM messages").Scan(&messages); err != nil {
		return 0, 0, 0, fmt.Errorf("counting messages: %w", err)
	}
	if info, statErr := os.Stat(dbPath); statErr == nil {
		size = info.Size()
	}
	return sessions, messages, size, nil
}
