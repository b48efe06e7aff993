package session

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// storageKey mirrors the key the backend's web widget uses in localStorage.
const storageKey = "chat_session_id"

// Store persists the session id across process restarts.
type Store interface {
	Load() (string, error)
	Save(id string) error
}

// MemoryStore keeps the id for the process lifetime only. It is the fallback
// when durable storage cannot be opened.
type MemoryStore struct {
	id string
}

func (s *MemoryStore) Load() (string, error) { return s.id, nil }

func (s *MemoryStore) Save(id string) error {
	s.id = id
	return nil
}

// SQLiteStore keeps client-local state in a small key/value table.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	createTable := `
	CREATE TABLE IF NOT EXISTS client_state (
		key TEXT PRIMARY KEY,
		value TEXT
	);`

	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create client_state table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load() (string, error) {
	var id string
	err := s.db.QueryRow("SELECT value FROM client_state WHERE key = ?", storageKey).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load session id: %w", err)
	}
	return id, nil
}

func (s *SQLiteStore) Save(id string) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO client_state (key, value) VALUES (?, ?)",
		storageKey, id,
	)
	if err != nil {
		return fmt.Errorf("failed to save session id: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
