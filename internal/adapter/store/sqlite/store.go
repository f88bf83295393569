// Package sqlite implements the run-history store on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bkyoung/test-reporter/internal/store"
	_ "github.com/mattn/go-sqlite3"
)

// Store implements the store.Store interface using SQLite.
type Store struct {
	db *sql.DB
}

// NewStore creates a new SQLite store at the given path.
// Use ":memory:" for in-memory database (useful for testing).
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}

	if err := s.createSchema(); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return s, nil
}

// createSchema creates all tables and indexes if they don't exist.
func (s *Store) createSchema() error {
	schema := `
	-- One row per reporting run
	CREATE TABLE IF NOT EXISTS runs (
		run_id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at INTEGER NOT NULL,
		repository TEXT NOT NULL,
		commit_sha TEXT NOT NULL,
		success INTEGER NOT NULL,
		total_tests INTEGER NOT NULL,
		passed_tests INTEGER NOT NULL,
		failed_tests INTEGER NOT NULL,
		total_suites INTEGER NOT NULL,
		lines_pct REAL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_repository_created ON runs(repository, created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveRun records a run and returns its assigned ID.
func (s *Store) SaveRun(ctx context.Context, run store.Run) (int64, error) {
	query := `
		INSERT INTO runs (created_at, repository, commit_sha, success, total_tests, passed_tests, failed_tests, total_suites, lines_pct)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var linesPct sql.NullFloat64
	if run.LinesPct != nil {
		linesPct = sql.NullFloat64{Float64: *run.LinesPct, Valid: true}
	}

	result, err := s.db.ExecContext(ctx, query,
		run.CreatedAt.Unix(),
		run.Repository,
		run.CommitSHA,
		run.Success,
		run.TotalTests,
		run.PassedTests,
		run.FailedTests,
		run.TotalSuites,
		linesPct,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}
	return id, nil
}

// LastRun returns the most recent run for a repository, or nil when none has
// been recorded yet.
func (s *Store) LastRun(ctx context.Context, repository string) (*store.Run, error) {
	query := `
		SELECT run_id, created_at, repository, commit_sha, success, total_tests, passed_tests, failed_tests, total_suites, lines_pct
		FROM runs
		WHERE repository = ?
		ORDER BY created_at DESC, run_id DESC
		LIMIT 1
	`

	row := s.db.QueryRowContext(ctx, query, repository)

	var run store.Run
	var createdAt int64
	var linesPct sql.NullFloat64
	err := row.Scan(
		&run.ID,
		&createdAt,
		&run.Repository,
		&run.CommitSHA,
		&run.Success,
		&run.TotalTests,
		&run.PassedTests,
		&run.FailedTests,
		&run.TotalSuites,
		&linesPct,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load last run: %w", err)
	}

	run.CreatedAt = time.Unix(createdAt, 0).UTC()
	if linesPct.Valid {
		run.LinesPct = &linesPct.Float64
	}
	return &run, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
