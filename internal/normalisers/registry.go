package normalisers

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/gazettes-cli/internal/core/domain"
	"github.com/custodia-labs/gazettes-cli/internal/core/ports/driven"
	"github.com/custodia-labs/gazettes-cli/internal/normalisers/html"
	"github.com/custodia-labs/gazettes-cli/internal/normalisers/plaintext"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry maps file extensions to fragment extractors.
type Registry struct {
	byExt map[string]driven.FragmentExtractor
}

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{byExt: make(map[string]driven.FragmentExtractor)}
}

// NewDefaultRegistry creates a registry holding the built-in extractors.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(html.New())
	r.Register(plaintext.New())
	return r
}

// Register adds an extractor for each of its extensions.
// Later registrations win.
func (r *Registry) Register(extractor driven.FragmentExtractor) {
	for _, ext := range extractor.SupportedExtensions() {
		r.byExt[strings.ToLower(ext)] = extractor
	}
}

// Extract runs the extractor registered for path's extension.
func (r *Registry) Extract(ctx context.Context, path string, raw []byte) ([]string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	extractor, ok := r.byExt[ext]
	if !ok {
		return nil, fmt.Errorf("no extractor for %q: %w", ext, domain.ErrInvalidInput)
	}
	return extractor.Extract(ctx, raw)
}
