// Package knowledge holds the static lookup corpus some handlers consult.
// Lookup deliberately returns the entire corpus with no ranking or
// filtering; this is a simplification the rest of the system relies on,
// not a search engine.
package knowledge

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Entry is one knowledge record.
type Entry struct {
	ID      string `json:"id"`
	Topic   string `json:"topic"`
	Content string `json:"content"`
}

// Store is a SQLite-backed corpus of entries.
type Store struct {
	db *sql.DB
}

// Open creates or opens the knowledge database at the given path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// OpenMemory creates an in-memory store (useful for testing).
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS entries (
    id TEXT PRIMARY KEY,
    topic TEXT NOT NULL DEFAULT '',
    content TEXT NOT NULL,
    created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_entries_topic ON entries(topic);
`

// Add inserts one entry, assigning an ID if none is set.
func (s *Store) Add(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO entries (id, topic, content) VALUES (?, ?, ?)`,
		e.ID, e.Topic, e.Content)
	if err != nil {
		return Entry{}, fmt.Errorf("inserting entry: %w", err)
	}
	return e, nil
}

// Import loads entries from a JSON file (an array of {topic, content}
// objects) and adds them all. Returns the number of entries imported.
func (s *Store) Import(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading corpus file: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return 0, fmt.Errorf("parsing corpus file: %w", err)
	}

	for _, e := range entries {
		if _, err := s.Add(ctx, e); err != nil {
			return 0, err
		}
	}
	return len(entries), nil
}

// Lookup returns the full corpus in insertion order. The query is accepted
// for interface compatibility but ignored: no ranking, no filtering.
func (s *Store) Lookup(ctx context.Context, query string) ([]Entry, error) {
	_ = query

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, topic, content FROM entries ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Topic, &e.Content); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the number of entries in the corpus.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`).Scan(&n)
	return n, err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
