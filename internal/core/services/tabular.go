package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/gazettes-cli/internal/core/domain"
	"github.com/custodia-labs/gazettes-cli/internal/core/ports/driven"
	"github.com/custodia-labs/gazettes-cli/internal/core/ports/driving"
	"github.com/custodia-labs/gazettes-cli/internal/logger"
)

// Ensure TabularService implements the interface.
var _ driving.TabularService = (*TabularService)(nil)

// TabularService builds *_text.json arrays for gazettes listed in the CSV catalog.
type TabularService struct {
	catalog    driven.CatalogReader
	extractors driven.ExtractorRegistry
	store      driven.TextStore
	settings   domain.TabularSettings
}

// NewTabularService creates a tabular ingestion service.
func NewTabularService(
	catalog driven.CatalogReader,
	extractors driven.ExtractorRegistry,
	store driven.TextStore,
	settings domain.TabularSettings,
) *TabularService {
	return &TabularService{
		catalog:    catalog,
		extractors: extractors,
		store:      store,
		settings:   settings,
	}
}

// Extract walks the catalog. For every downloaded gazette the extracted
// <stem>.xml in the data directory is turned into <stem>_text.json. Existing
// outputs are kept unless opts.Force is set.
func (s *TabularService) Extract(ctx context.Context, opts driving.ExtractOptions) (*driving.ExtractReport, error) {
	catalogPath := opts.CatalogPath
	if catalogPath == "" {
		catalogPath = s.settings.CatalogPath
	}
	dataDir := opts.DataDir
	if dataDir == "" {
		dataDir = s.settings.DataDir
	}

	logger.Section("Extract " + catalogPath)

	report := &driving.ExtractReport{}
	for record, err := range s.catalog.Records(ctx, catalogPath, dataDir) {
		if err != nil {
			if isCatalogFatal(err) {
				return report, fmt.Errorf("read catalog: %w", err)
			}
			report.Failures = append(report.Failures, driving.BatchFailure{Path: catalogPath, Err: err})
			logger.Error("catalog %s: %v", catalogPath, err)
			continue
		}
		report.Records++

		contentPath, textPath := extractionPaths(record.FilePath, dataDir)
		if !opts.Force && s.store.Exists(textPath) {
			logger.Debug("already extracted: %s", textPath)
			report.Skipped++
			continue
		}

		fragments, err := s.ExtractFile(ctx, contentPath)
		switch {
		case errors.Is(err, domain.ErrEmptyContent):
			report.Empty++
			logger.Warn("could not get text from %s", contentPath)
			continue
		case err != nil:
			report.Failures = append(report.Failures, driving.BatchFailure{Path: contentPath, Err: err})
			logger.Error("extracting %s: %v", contentPath, err)
			continue
		}

		if err := s.store.WriteJSON(textPath, fragments); err != nil {
			return report, fmt.Errorf("write %s: %w", textPath, err)
		}
		report.Written++
	}

	logger.Info("extract %s", logger.KV(map[string]any{
		"records": report.Records,
		"written": report.Written,
		"skipped": report.Skipped,
		"empty":   report.Empty,
		"failed":  len(report.Failures),
	}))
	return report, nil
}

// ExtractFile returns the cleaned fragments of a single extracted file.
// Fragments shorter than the configured minimum are dropped before cleaning.
func (s *TabularService) ExtractFile(ctx context.Context, path string) ([]string, error) {
	raw, err := s.store.ReadText(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	fragments, err := s.extractors.Extract(ctx, path, []byte(raw))
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", path, err)
	}

	text := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		if utf8.RuneCountInString(fragment) < s.settings.MinFragmentLength {
			continue
		}
		text = append(text, CleanSentence(fragment))
	}
	if len(text) == 0 {
		return nil, fmt.Errorf("%s: %w", path, domain.ErrEmptyContent)
	}
	return text, nil
}

// CleanSentence collapses whitespace (newlines included) to single spaces,
// removes every '-', '_' and '.' and lowercases the result.
func CleanSentence(sentence string) string {
	var b strings.Builder
	b.Grow(len(sentence))

	space := false
	for _, r := range sentence {
		switch {
		case r == '\n' || r == '\r' || r == '\t' || r == ' ':
			if !space {
				b.WriteByte(' ')
				space = true
			}
		case r == '-' || r == '_' || r == '.':
			// Removed after whitespace collapsing, so it still splits a run.
			space = false
		default:
			b.WriteRune(r)
			space = false
		}
	}
	return strings.ToLower(b.String())
}

// isCatalogFatal reports whether a catalog error means no row can be read.
func isCatalogFatal(err error) bool {
	return errors.Is(err, domain.ErrMissingFile) ||
		errors.Is(err, domain.ErrInvalidInput) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
