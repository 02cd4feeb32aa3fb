package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync/atomic"

	_ "modernc.org/sqlite"
)

// SQLiteKV persists keys in a single sqlite table using the pure Go driver.
type SQLiteKV struct {
	db     *sql.DB
	closed atomic.Bool
}

// NewSQLiteKV opens (or creates) the database at path and applies the schema.
func NewSQLiteKV(path string) (*SQLiteKV, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		log.Printf("WARN: could not set WAL mode on %s: %v", path, err)
	}

	schema := `CREATE TABLE IF NOT EXISTS kv (
        key   TEXT PRIMARY KEY,
        value TEXT NOT NULL
    );`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}

	return &SQLiteKV{db: db}, nil
}

func (s *SQLiteKV) Get(key string) (string, bool, error) {
	if s.closed.Load() {
		return "", false, ErrClosed
	}

	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteKV) Set(key, value string) error {
	if s.closed.Load() {
		return ErrClosed
	}

	if _, err := s.db.Exec(`INSERT OR REPLACE INTO kv(key, value) VALUES(?, ?)`, key, value); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Close closes the database. Later calls to Get and Set return ErrClosed.
func (s *SQLiteKV) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.db.Close()
}
