package driving

import "context"

// ExtractOptions configures the catalog ingestion variant.
type ExtractOptions struct {
	// CatalogPath overrides the configured CSV index when set.
	CatalogPath string

	// DataDir overrides the configured data directory when set.
	DataDir string

	// Force rewrites *_text.json files that already exist.
	Force bool
}

// ExtractReport summarises an extraction run.
type ExtractReport struct {
	Records  int
	Written  int
	Skipped  int
	Empty    int
	Failures []BatchFailure
}

// TabularService builds *_text.json sentence arrays from the gazette catalog.
type TabularService interface {
	// Extract walks the catalog and writes one <stem>_text.json per file.
	Extract(ctx context.Context, opts ExtractOptions) (*ExtractReport, error)

	// ExtractFile returns the cleaned sentences of a single extracted file.
	// Returns domain.ErrEmptyContent when nothing usable remains.
	ExtractFile(ctx context.Context, path string) ([]string, error)
}
