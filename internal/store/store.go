// Package store defines the persistence port for run history.
package store

import (
	"context"
	"time"
)

// Run is one recorded reporting run. LinesPct is nil when the run had no
// measured line coverage.
type Run struct {
	ID        int64
	CreatedAt time.Time

	// Repository is "owner/name".
	Repository string
	CommitSHA  string

	Success     bool
	TotalTests  int
	PassedTests int
	FailedTests int
	TotalSuites int

	LinesPct *float64
}

// Store persists run history. Implementations live under internal/adapter.
type Store interface {
	// SaveRun records a run and returns its assigned ID.
	SaveRun(ctx context.Context, run Run) (int64, error)

	// LastRun returns the most recent run for a repository, or nil when none
	// has been recorded.
	LastRun(ctx context.Context, repository string) (*Run, error)

	// Close releases the underlying database handle.
	Close() error
}
