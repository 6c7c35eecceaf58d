// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps an append-only SQLite log of paper searches.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Entry records one completed search.
type Entry struct {
	ID         string    `json:"id" yaml:"id"`
	Topic      string    `json:"topic" yaml:"topic"`
	Slug       string    `json:"slug" yaml:"slug"`
	Requested  int       `json:"requested" yaml:"requested"`
	Returned   int       `json:"returned" yaml:"returned"`
	SearchedAt time.Time `json:"searched_at" yaml:"searched_at"`
}

const defaultRecentLimit = 20

// timeLayout is fixed width so that searched_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store manages the history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path, creating parent directories
// and the schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS searches (
			id TEXT PRIMARY KEY,
			topic TEXT NOT NULL,
			slug TEXT NOT NULL,
			requested INTEGER NOT NULL,
			returned INTEGER NOT NULL,
			searched_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_searches_searched_at ON searches(searched_at)`,
		`CREATE INDEX IF NOT EXISTS idx_searches_slug ON searches(slug)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends e. A missing ID or timestamp is filled in.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.SearchedAt.IsZero() {
		e.SearchedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO searches (id, topic, slug, requested, returned, searched_at) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Topic, e.Slug, e.Requested, e.Returned, e.SearchedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("recording search: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first. A non-positive limit
// means 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, topic, slug, requested, returned, searched_at FROM searches
		 ORDER BY searched_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var at string
		if err := rows.Scan(&e.ID, &e.Topic, &e.Slug, &e.Requested, &e.Returned, &at); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		if e.SearchedAt, err = time.Parse(timeLayout, at); err != nil {
			return nil, fmt.Errorf("parsing searched_at %q: %w", at, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
