package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store keeps the launch journal in SQLite so history survives restarts and
// can be queried without parsing the text log. It stores launch records only.
type Store struct {
	db *sql.DB
}

// NewStore opens (creating if needed) the journal database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("journal database path is required")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}

	// WAL mode for concurrent readers (status/history while a launch runs)
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set synchronous mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize journal schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS launches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			invocation_id TEXT NOT NULL,
			ts TEXT NOT NULL,
			kind TEXT NOT NULL,
			session TEXT NOT NULL,
			command TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_launches_session ON launches(session);
		CREATE INDEX IF NOT EXISTS idx_launches_invocation ON launches(invocation_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append inserts one launch record.
func (s *Store) Append(rec Record) error {
	_, err := s.db.Exec(
		`INSERT INTO launches (invocation_id, ts, kind, session, command) VALUES (?, ?, ?, ?, ?)`,
		rec.InvocationID,
		rec.Time.UTC().Format(time.RFC3339Nano),
		string(rec.Kind),
		rec.Session,
		strings.Join(rec.Command, "\x1f"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert launch record: %w", err)
	}
	return nil
}

// Recent returns up to limit records for the named session, newest first.
// An empty session matches all sessions.
func (s *Store) Recent(session string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT invocation_id, ts, kind, session, command FROM launches`
	args := []any{}
	if session != "" {
		query += ` WHERE session = ?`
		args = append(args, session)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query launch records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var ts, kind, command string
		if err := rows.Scan(&rec.InvocationID, &ts, &kind, &rec.Session, &command); err != nil {
			return nil, fmt.Errorf("failed to scan launch record: %w", err)
		}
		rec.Time, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp in journal: %w", err)
		}
		rec.Kind = Kind(kind)
		if command != "" {
			rec.Command = strings.Split(command, "\x1f")
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
