package driven

import (
	"context"
	"iter"

	"github.com/custodia-labs/gazettes-cli/internal/core/domain"
)

// GazetteFinder discovers gazette files below a root laid out as
// <root>/<entity-id>/<YYYY-MM-DD>/<file>.
type GazetteFinder interface {
	// Find lazily yields gazette files. When since is non-empty only files
	// whose directory date is on or after it are yielded. Traversal order is
	// not part of the contract.
	Find(ctx context.Context, root, since string) iter.Seq2[domain.GazetteFile, error]
}

// GazetteWatcher reports gazette files as they appear below a root.
type GazetteWatcher interface {
	// Watch emits changes until the context is cancelled or Close is called.
	Watch(ctx context.Context, root, since string) (<-chan domain.GazetteChange, error)

	// Close releases resources.
	Close() error
}
