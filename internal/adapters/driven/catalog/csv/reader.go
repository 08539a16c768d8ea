// Package csv reads the gazette catalog: a CSV index with a header row and
// a file_link column pointing at each downloaded gazette.
package csv

import (
	"context"
	stdcsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/custodia-labs/gazettes-cli/internal/core/domain"
	"github.com/custodia-labs/gazettes-cli/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.CatalogReader = (*Reader)(nil)

// FileLinkColumn is the header of the column holding the download URL.
const FileLinkColumn = "file_link"

// Reader streams catalog rows.
type Reader struct{}

// NewReader creates a catalog reader.
func NewReader() *Reader {
	return &Reader{}
}

// Records lazily yields one record per data row. FilePath is dataDir joined
// with the last segment of the file_link URL path. A missing catalog yields
// domain.ErrMissingFile; a catalog without a file_link column yields
// domain.ErrInvalidInput.
func (r *Reader) Records(ctx context.Context, catalogPath, dataDir string) iter.Seq2[domain.CatalogRecord, error] {
	return func(yield func(domain.CatalogRecord, error) bool) {
		f, err := os.Open(catalogPath)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				err = fmt.Errorf("catalog %s: %w", catalogPath, domain.ErrMissingFile)
			}
			yield(domain.CatalogRecord{}, err)
			return
		}
		defer f.Close()

		cr := stdcsv.NewReader(f)
		cr.FieldsPerRecord = -1

		header, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			yield(domain.CatalogRecord{}, fmt.Errorf("reading catalog header: %w", err))
			return
		}
		if !contains(header, FileLinkColumn) {
			yield(domain.CatalogRecord{}, fmt.Errorf("catalog has no %s column: %w", FileLinkColumn, domain.ErrInvalidInput))
			return
		}

		for {
			if err := ctx.Err(); err != nil {
				yield(domain.CatalogRecord{}, err)
				return
			}
			row, err := cr.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				if !yield(domain.CatalogRecord{}, fmt.Errorf("reading catalog row: %w", err)) {
					return
				}
				continue
			}

			fields := make(map[string]string, len(header))
			for i, name := range header {
				if i < len(row) {
					fields[name] = row[i]
				}
			}
			record := domain.CatalogRecord{
				Fields:   fields,
				FileLink: fields[FileLinkColumn],
				FilePath: filepath.Join(dataDir, FileNameFromLink(fields[FileLinkColumn])),
			}
			if !yield(record, nil) {
				return
			}
		}
	}
}

// FileNameFromLink returns the last path segment of a download URL.
func FileNameFromLink(link string) string {
	p := link
	if u, err := url.Parse(link); err == nil {
		p = u.Path
	}
	return path.Base(p)
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
