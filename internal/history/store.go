// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a local SQLite log of bibliography runs and the
// outcome of every key in them. It is a log only: resolution never reads
// from it, so every run fetches fresh records.
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

	"github.com/pdiddy/auto-bibtex/pkg/types"
)

const (
	appDir = "auto-bibtex"
	dbFile = "history.db"
)

// Run is one recorded bibliography run.
type Run struct {
	ID        string            `json:"id" yaml:"id"`
	Input     string            `json:"input" yaml:"input"`
	Output    string            `json:"output" yaml:"output"`
	StartedAt time.Time         `json:"started_at" yaml:"started_at"`
	Duration  time.Duration     `json:"duration" yaml:"duration"`
	Total     int               `json:"total" yaml:"total"`
	Resolved  int               `json:"resolved" yaml:"resolved"`
	Keys      []types.KeyResult `json:"keys,omitempty" yaml:"keys,omitempty"`
}

// Store manages the history database.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the history database location under the user cache
// directory.
func DefaultPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locating cache directory: %w", err)
	}
	return filepath.Join(dir, appDir, dbFile), nil
}

// Open opens or creates the history database at path and its schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
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
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			input TEXT NOT NULL,
			output TEXT NOT NULL,
			started_ns INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			total INTEGER NOT NULL,
			resolved INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS run_keys (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			key TEXT NOT NULL,
			status TEXT NOT NULL,
			bibcode TEXT,
			matches INTEGER,
			error TEXT,
			PRIMARY KEY (run_id, key)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_ns ON runs(started_ns)`,
		`CREATE INDEX IF NOT EXISTS idx_run_keys_status ON run_keys(status)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores run and its key results in one transaction and returns the
// new run ID.
func (s *Store) Record(ctx context.Context, run Run) (string, error) {
	run.ID = uuid.NewString()
	run.Total = len(run.Keys)
	run.Resolved = 0
	for _, k := range run.Keys {
		if k.Resolved() {
			run.Resolved++
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, input, output, started_ns, duration_ms, total, resolved)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Input, run.Output, run.StartedAt.UnixNano(),
		run.Duration.Milliseconds(), run.Total, run.Resolved,
	)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_keys (run_id, key, status, bibcode, matches, error) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, k := range run.Keys {
		if _, err := stmt.ExecContext(ctx, run.ID, k.Key, string(k.Status), k.Bibcode, k.Matches, k.Error); err != nil {
			return "", fmt.Errorf("inserting key %s: %w", k.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return run.ID, nil
}

// Recent returns up to limit runs, newest first, without their keys.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, input, output, started_ns, duration_ms, total, resolved
		 FROM runs ORDER BY started_ns DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r          Run
			startedNS  int64
			durationMS int64
		)
		if err := rows.Scan(&r.ID, &r.Input, &r.Output, &startedNS, &durationMS, &r.Total, &r.Resolved); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.StartedAt = time.Unix(0, startedNS).UTC()
		r.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Get returns one run with its key results ordered by key.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	var (
		r          Run
		startedNS  int64
		durationMS int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, input, output, started_ns, duration_ms, total, resolved FROM runs WHERE id = ?`, id,
	).Scan(&r.ID, &r.Input, &r.Output, &startedNS, &durationMS, &r.Total, &r.Resolved)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying run %s: %w", id, err)
	}
	r.StartedAt = time.Unix(0, startedNS).UTC()
	r.Duration = time.Duration(durationMS) * time.Millisecond

	rows, err := s.db.QueryContext(ctx,
		`SELECT key, status, COALESCE(bibcode, ''), COALESCE(matches, 0), COALESCE(error, '')
		 FROM run_keys WHERE run_id = ? ORDER BY key`, id)
	if err != nil {
		return nil, fmt.Errorf("querying keys of run %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			k      types.KeyResult
			status string
		)
		if err := rows.Scan(&k.Key, &status, &k.Bibcode, &k.Matches, &k.Error); err != nil {
			return nil, fmt.Errorf("scanning key: %w", err)
		}
		k.Status = types.Status(status)
		r.Keys = append(r.Keys, k)
	}
	return &r, rows.Err()
}
