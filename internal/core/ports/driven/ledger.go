package driven

import (
	"context"

	"github.com/custodia-labs/gazettes-cli/internal/core/domain"
)

// LedgerStore persists the outcome of processing each gazette.
// Implementations must be safe for concurrent use.
type LedgerStore interface {
	// Save stores or replaces the entry for entry.SourcePath.
	Save(ctx context.Context, entry domain.LedgerEntry) error

	// Get retrieves the entry for a source path.
	// Returns domain.ErrNotFound when absent.
	Get(ctx context.Context, sourcePath string) (*domain.LedgerEntry, error)

	// List returns all entries ordered by date then source path.
	List(ctx context.Context) ([]domain.LedgerEntry, error)

	// Delete removes the entry for a source path. Missing entries are not an error.
	Delete(ctx context.Context, sourcePath string) error

	// DeleteTree removes the entry for path and every entry below it when
	// path is a directory. Returns the number of entries removed.
	DeleteTree(ctx context.Context, path string) (int, error)
}
