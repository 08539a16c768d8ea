package driven

import "context"

// ExtractorRegistry selects the fragment extractor for a file.
type ExtractorRegistry interface {
	// Extract reads fragments from raw bytes using the extractor registered
	// for the path's extension. Returns domain.ErrUnsupportedType-style errors
	// wrapped with the extension when nothing matches.
	Extract(ctx context.Context, path string, raw []byte) ([]string, error)

	// Register adds an extractor to the registry.
	Register(extractor FragmentExtractor)
}
