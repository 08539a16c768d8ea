package driving

import (
	"context"

	"github.com/custodia-labs/gazettes-cli/internal/core/domain"
)

// PreprocessService turns raw gazette text into clean text and sentence files.
type PreprocessService interface {
	// PreprocessGazetteTxtFile normalises source and writes the clean text to
	// destination. Returns domain.ErrMissingFile when source is absent and
	// domain.ErrEmptyContent, without creating destination, when nothing
	// remains after cleaning.
	PreprocessGazetteTxtFile(ctx context.Context, source, destination string) error

	// CreateSentenceFile segments source and writes one sentence per line to
	// destination, overwriting it. Returns the number of sentences written.
	CreateSentenceFile(ctx context.Context, source, destination string) (int, error)

	// CreateSentenceJSON writes the same sentences as a JSON array.
	CreateSentenceJSON(ctx context.Context, source, destination string) (int, error)

	// Process produces the clean and sentence files for one discovered gazette.
	Process(ctx context.Context, file domain.GazetteFile) (*domain.LedgerEntry, error)

	// Sentences returns the sentences of an in-memory text after cleaning.
	Sentences(ctx context.Context, text string) ([]string, error)
}
