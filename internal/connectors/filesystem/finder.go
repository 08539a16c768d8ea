package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/custodia-labs/gazettes-cli/internal/core/domain"
	"github.com/custodia-labs/gazettes-cli/internal/core/ports/driven"
	"github.com/custodia-labs/gazettes-cli/internal/logger"
)

// Ensure Finder implements the interface.
var _ driven.GazetteFinder = (*Finder)(nil)

// Default names of files this tool writes next to the gazettes.
var (
	defaultDerivedPrefixes = []string{"clean_", "sentence_"}
	defaultDerivedSuffixes = []string{"_text.json"}
)

// Finder walks a gazette tree laid out as <root>/<entity-id>/<YYYY-MM-DD>/<file>.
type Finder struct {
	prefixes []string
	suffixes []string
}

// Option configures a Finder.
type Option func(*Finder)

// WithDerivedPrefixes sets the file name prefixes of generated outputs,
// which are never reported as gazettes.
func WithDerivedPrefixes(prefixes ...string) Option {
	return func(f *Finder) {
		f.prefixes = nonEmpty(prefixes)
	}
}

// NewFinder creates a finder that skips hidden entries and generated outputs.
func NewFinder(opts ...Option) *Finder {
	f := &Finder{
		prefixes: defaultDerivedPrefixes,
		suffixes: defaultDerivedSuffixes,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

var defaultFinder = NewFinder()

// FindGazetteFiles lazily yields the path of every gazette file below root,
// in lexical order. With since empty every file is yielded; otherwise only
// files whose containing directory is a date on or after since. Files in
// directories that are not dates are skipped with a warning.
//
// A missing root yields domain.ErrMissingFile and a malformed since yields
// domain.ErrMalformedDate, each as the only element.
func FindGazetteFiles(root, since string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for file, err := range defaultFinder.Find(context.Background(), root, since) {
			if !yield(file.Path, err) {
				return
			}
		}
	}
}

// Find lazily yields the gazette files below root. See FindGazetteFiles.
// Cancelling ctx stops the walk with the context's error.
func (f *Finder) Find(ctx context.Context, root, since string) iter.Seq2[domain.GazetteFile, error] {
	return func(yield func(domain.GazetteFile, error) bool) {
		var cutoff time.Time
		if since != "" {
			var err error
			if cutoff, err = domain.ParseGazetteDate(since); err != nil {
				yield(domain.GazetteFile{}, err)
				return
			}
		}

		if _, err := os.Stat(root); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				err = fmt.Errorf("root %s: %w", root, domain.ErrMissingFile)
			}
			yield(domain.GazetteFile{}, err)
			return
		}

		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if ctxErr := ctx.Err(); ctxErr != nil {
				yield(domain.GazetteFile{}, ctxErr)
				return filepath.SkipAll
			}
			if err != nil {
				if !yield(domain.GazetteFile{}, fmt.Errorf("walking %s: %w", path, err)) {
					return filepath.SkipAll
				}
				return nil
			}
			if path != root && isHidden(d.Name()) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || !d.Type().IsRegular() || f.isDerived(d.Name()) {
				return nil
			}

			file := ParseGazetteFile(root, path)
			if since != "" {
				if !file.HasDate {
					logger.Warn("skipping %s: directory %q is not a date", path, filepath.Base(filepath.Dir(path)))
					return nil
				}
				if !file.OnOrAfter(cutoff) {
					return nil
				}
			}
			if !yield(file, nil) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// IsDirectoryDate reports whether the last segment of dirPath is a date on or
// after since. Both must be YYYY-MM-DD; otherwise domain.ErrMalformedDate is
// returned.
func IsDirectoryDate(dirPath, since string) (bool, error) {
	dirDate, err := domain.ParseGazetteDate(filepath.Base(dirPath))
	if err != nil {
		return false, err
	}
	cutoff, err := domain.ParseGazetteDate(since)
	if err != nil {
		return false, err
	}
	return !dirDate.Before(cutoff), nil
}

// ParseGazetteFile derives the entity and date of a file from its position
// below root. Files whose parent is not a date have HasDate false.
func ParseGazetteFile(root, path string) domain.GazetteFile {
	file := domain.GazetteFile{Path: path}

	dateDir := filepath.Dir(path)
	if d, err := domain.ParseGazetteDate(filepath.Base(dateDir)); err == nil {
		file.Date = d
		file.HasDate = true
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return file
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) >= 3 {
		file.EntityID = parts[len(parts)-3]
	}
	return file
}

func (f *Finder) isDerived(name string) bool {
	for _, p := range f.prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	for _, s := range f.suffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}

// isHidden reports whether any element of path starts with a dot.
// "." and ".." are not hidden.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if len(part) > 1 && part[0] == '.' && part != ".." {
			return true
		}
	}
	return false
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
