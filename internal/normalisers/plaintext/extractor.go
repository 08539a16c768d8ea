package plaintext

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/gazettes-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.FragmentExtractor = (*Extractor)(nil)

// Extractor handles plain text files: every non-blank line is a fragment.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedExtensions returns the file extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".txt", ".text"}
}

// Extract returns the trimmed, non-blank lines of raw.
func (e *Extractor) Extract(ctx context.Context, raw []byte) ([]string, error) {
	var fragments []string
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			fragments = append(fragments, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning text: %w", err)
	}
	return fragments, nil
}
