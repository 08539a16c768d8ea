package driven

import (
	"context"
	"iter"

	"github.com/custodia-labs/gazettes-cli/internal/core/domain"
)

// CatalogReader reads the gazette CSV index.
type CatalogReader interface {
	// Records lazily yields catalog rows. Local file paths are resolved
	// against dataDir.
	Records(ctx context.Context, catalogPath, dataDir string) iter.Seq2[domain.CatalogRecord, error]
}
