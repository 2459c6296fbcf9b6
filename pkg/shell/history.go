package shell

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite" // pure Go SQLite driver
)

const (
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
)

// Entry is one recorded compilation attempt.
type Entry struct {
	ID           string
	Time         time.Time
	Status       string
	Code         string
	Instructions int
	Error        string
}

// Store persists compilation history across sessions.
type Store interface {
	Record(e Entry) error
	List() ([]Entry, error)
	Close() error
}

// newEntry stamps a history entry with a fresh id and the current time.
func newEntry(status, code string, instructions int, errText string) Entry {
	return Entry{
		ID:           uuid.NewString(),
		Time:         time.Now(),
		Status:       status,
		Code:         code,
		Instructions: instructions,
		Error:        errText,
	}
}

type sqliteStore struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the history database at path.
func OpenStore(path string) (Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history store: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping history store: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	const schema = `CREATE TABLE IF NOT EXISTS history (
		id TEXT PRIMARY KEY,
		at INTEGER NOT NULL,
		status TEXT NOT NULL,
		code TEXT NOT NULL,
		instructions INTEGER NOT NULL,
		error TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare history store: %w", err)
	}

	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Record(e Entry) error {
	_, err := s.db.Exec(
		"INSERT INTO history (id, at, status, code, instructions, error) VALUES (?, ?, ?, ?, ?, ?)",
		e.ID, e.Time.Unix(), e.Status, e.Code, e.Instructions, e.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to record history entry: %w", err)
	}
	return nil
}

func (s *sqliteStore) List() ([]Entry, error) {
	rows, err := s.db.Query(
		"SELECT id, at, status, code, instructions, error FROM history ORDER BY at, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var at int64
		if err := rows.Scan(&e.ID, &at, &e.Status, &e.Code, &e.Instructions, &e.Error); err != nil {
			return nil, fmt.Errorf("failed to read history: %w", err)
		}
		e.Time = time.Unix(at, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// memoryStore keeps history for the session only; the shell falls back
// to it when the database cannot be opened.
type memoryStore struct {
	entries []Entry
}

func NewMemoryStore() Store {
	return &memoryStore{}
}

func (s *memoryStore) Record(e Entry) error {
	s.entries = append(s.entries, e)
	return nil
}

func (s *memoryStore) List() ([]Entry, error) {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

func (s *memoryStore) Close() error {
	return nil
}
