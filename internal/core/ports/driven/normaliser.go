package driven

import "context"

// FragmentExtractor turns raw document bytes into a flat sequence of text
// fragments. Any HTML/XML parser or plain text splitter can satisfy it.
type FragmentExtractor interface {
	// SupportedExtensions returns the lowercase file extensions handled,
	// including the leading dot (e.g. ".xml").
	SupportedExtensions() []string

	// Extract returns the stripped, non-empty text fragments in document order.
	Extract(ctx context.Context, raw []byte) ([]string, error)
}
