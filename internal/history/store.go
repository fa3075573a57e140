// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records finished conversion attempts in a SQLite
// database so past conversions can be listed and exported.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/mediaconv/pkg/types"
)

const defaultLimit = 20

// Store manages the history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and its schema.
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
		`CREATE TABLE IF NOT EXISTS attempts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			input TEXT NOT NULL,
			output TEXT NOT NULL,
			format TEXT NOT NULL,
			quality INTEGER NOT NULL,
			scale TEXT NOT NULL,
			status TEXT NOT NULL,
			error TEXT,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_input ON attempts(input)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores a finished attempt and returns its id.
func (s *Store) Record(ctx context.Context, r types.AttemptRecord) (int64, error) {
	if !r.Status.Terminal() {
		return 0, fmt.Errorf("recording attempt for %s: status %q is not final", r.Input, r.Status)
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO attempts (input, output, format, quality, scale, status, error, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Input, r.Output, r.Format, r.Quality, r.Scale, string(r.Status), r.Error,
		r.StartedAt.UTC().Format(time.RFC3339Nano), r.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("recording attempt for %s: %w", r.Input, err)
	}
	return res.LastInsertId()
}

// Query filters history listings. Zero values match everything.
type Query struct {
	Input  string
	Status types.AttemptStatus
	Limit  int
}

// Recent returns matching attempts, newest first.
func (s *Store) Recent(ctx context.Context, q Query) ([]types.AttemptRecord, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	query := `SELECT id, input, output, format, quality, scale, status, COALESCE(error, ''), started_at, finished_at
		FROM attempts WHERE 1=1`
	var args []any
	if q.Input != "" {
		query += ` AND input = ?`
		args = append(args, q.Input)
	}
	if q.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(q.Status))
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var out []types.AttemptRecord
	for rows.Next() {
		var (
			r                 types.AttemptRecord
			status            string
			started, finished string
		)
		if err := rows.Scan(&r.ID, &r.Input, &r.Output, &r.Format, &r.Quality, &r.Scale,
			&status, &r.Error, &started, &finished); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		r.Status = types.AttemptStatus(status)
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		r.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		out = append(out, r)
	}
	return out, rows.Err()
}

// ExportYAML writes matching attempts to w as a YAML list.
func (s *Store) ExportYAML(ctx context.Context, q Query, w io.Writer) error {
	records, err := s.Recent(ctx, q)
	if err != nil {
		return err
	}
	if records == nil {
		records = []types.AttemptRecord{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	return enc.Close()
}
