// Package file provides the on-disk TextStore. Every write lands in a
// temporary file in the destination directory and is renamed into place,
// so readers never observe a partially written output.
package file

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/gazettes-cli/internal/core/domain"
	"github.com/custodia-labs/gazettes-cli/internal/core/ports/driven"
)

// Ensure TextStore implements the interface.
var _ driven.TextStore = (*TextStore)(nil)

// TextStore reads and writes text artifacts on the local filesystem.
type TextStore struct {
	perm os.FileMode
}

// NewTextStore creates a store that writes files with mode 0644.
func NewTextStore() *TextStore {
	return &TextStore{perm: 0o644}
}

// ReadText reads a whole file.
func (s *TextStore) ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", path, domain.ErrMissingFile)
		}
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// WriteText replaces path with content.
func (s *TextStore) WriteText(path, content string) error {
	return s.writeAtomic(path, []byte(content))
}

// WriteLines writes one line per entry, each terminated by a newline.
func (s *TextStore) WriteLines(path string, lines []string) error {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return s.writeAtomic(path, []byte(b.String()))
}

// WriteJSON writes v as JSON. Non-ASCII text is kept as is.
func (s *TextStore) WriteJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return s.writeAtomic(path, buf.Bytes())
}

// ReadJSON decodes a JSON file into v.
func (s *TextStore) ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", path, domain.ErrMissingFile)
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

// Exists reports whether path exists.
func (s *TextStore) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// writeAtomic creates the destination directory if needed, writes data to
// a temp file next to path and renames it over path.
func (s *TextStore) writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(s.perm); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
