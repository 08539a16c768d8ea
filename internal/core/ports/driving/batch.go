package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/gazettes-cli/internal/core/domain"
)

// BatchOptions configures one batch run.
type BatchOptions struct {
	// Root is the <root>/<entity>/<date>/<file> tree to walk.
	Root string

	// Since is the inclusive YYYY-MM-DD cutoff. Empty processes everything.
	Since string

	// Workers overrides the configured worker count when positive.
	Workers int

	// Force reprocesses files whose content hash is already in the ledger.
	Force bool
}

// BatchFailure records a file that could not be processed.
type BatchFailure struct {
	Path string
	Err  error
}

// BatchReport summarises a batch run.
type BatchReport struct {
	// RunID identifies the run in the ledger.
	RunID string

	// Discovered is the number of gazette files found.
	Discovered int

	// Processed is the number of files written.
	Processed int

	// Skipped is the number of files unchanged since the last run.
	Skipped int

	// Empty is the number of files with no usable content.
	Empty int

	// Failures lists files that failed.
	Failures []BatchFailure

	// Duration is the wall-clock time of the run.
	Duration time.Duration
}

// BatchService processes whole gazette trees.
type BatchService interface {
	// Run discovers and processes every gazette below opts.Root.
	// Per-file failures are collected in the report; only infrastructure
	// errors (lock, ledger, discovery root) fail the run.
	Run(ctx context.Context, opts BatchOptions) (*BatchReport, error)

	// Watch processes gazettes as they appear until ctx is cancelled.
	// onEntry is called after each processed file and may be nil.
	Watch(ctx context.Context, root, since string, onEntry func(*domain.LedgerEntry, error)) error

	// History returns the ledger entries of previous runs.
	History(ctx context.Context) ([]domain.LedgerEntry, error)
}
