// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history persists a record of dispatched operations to SQLite.
//
// One row is written per dispatch: the operation key, the outcome status,
// the printed text, and how long the command ran. Recording is best-effort;
// the shell logs and continues when a write fails. Registered command
// bindings themselves are never persisted.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// SCHEMA
// =============================================================================

const schema = `
CREATE TABLE IF NOT EXISTS dispatches (
	id          TEXT PRIMARY KEY,
	session_id  TEXT NOT NULL,
	key         TEXT NOT NULL,
	status      TEXT NOT NULL,
	output      TEXT NOT NULL,
	duration_ms INTEGER NOT NULL,
	created_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_dispatches_created_at ON dispatches(created_at);
`

// Entry is one recorded dispatch.
type Entry struct {
	ID         string
	SessionID  string
	Key        string
	Status     string
	Output     string
	DurationMs int64
	CreatedAt  time.Time
}

// =============================================================================
// STORE
// =============================================================================

// Store records dispatch history for one process lifetime. Every entry it
// writes carries the same session id, so sessions can be told apart later.
type Store struct {
	db        *sql.DB
	sessionID string
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return &Store{
		db:        db,
		sessionID: uuid.NewString(),
	}, nil
}

// SessionID returns the id stamped on every entry this store records.
func (s *Store) SessionID() string {
	return s.sessionID
}

// Record writes one dispatch entry.
func (s *Store) Record(key, status, output string, duration time.Duration) error {
	_, err := s.db.Exec(
		`INSERT INTO dispatches (id, session_id, key, status, output, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), s.sessionID, key, status, output,
		duration.Milliseconds(), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record dispatch: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, session_id, key, status, output, duration_ms, created_at
		 FROM dispatches ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Key, &e.Status, &e.Output,
			&e.DurationMs, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the total number of recorded dispatches across all sessions.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM dispatches`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count history: %w", err)
	}
	return n, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
