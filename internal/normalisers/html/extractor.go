package html

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/custodia-labs/gazettes-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.FragmentExtractor = (*Extractor)(nil)

// skipped elements never contribute text.
var skipped = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"svg":      true,
}

// Extractor pulls text fragments out of HTML and XML extraction output.
type Extractor struct{}

// New creates a new HTML/XML fragment extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedExtensions returns the file extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".html", ".htm", ".xhtml", ".xml"}
}

// Extract returns every text node, trimmed, skipping blank ones and the
// contents of script and style elements. Entities are decoded.
func (e *Extractor) Extract(ctx context.Context, raw []byte) ([]string, error) {
	z := html.NewTokenizer(bytes.NewReader(raw))

	var fragments []string
	depth := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("tokenizing markup: %w", err)
			}
			return fragments, nil
		case html.StartTagToken:
			name, _ := z.TagName()
			if skipped[string(name)] {
				depth++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if skipped[string(name)] && depth > 0 {
				depth--
			}
		case html.TextToken:
			if depth > 0 {
				continue
			}
			if text := strings.TrimSpace(string(z.Text())); text != "" {
				fragments = append(fragments, text)
			}
		}
	}
}
