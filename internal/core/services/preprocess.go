package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/gazettes-cli/internal/core/domain"
	"github.com/custodia-labs/gazettes-cli/internal/core/ports/driven"
	"github.com/custodia-labs/gazettes-cli/internal/core/ports/driving"
	"github.com/custodia-labs/gazettes-cli/internal/logger"
	"github.com/custodia-labs/gazettes-cli/internal/normalisers/gazette"
)

// Ensure PreprocessService implements the interface.
var _ driving.PreprocessService = (*PreprocessService)(nil)

// PreprocessService turns raw gazette text into clean text and sentence files.
type PreprocessService struct {
	store     driven.TextStore
	pipeline  driven.TextPipeline
	segmenter driven.Segmenter
	output    domain.OutputSettings
	now       func() time.Time
}

// NewPreprocessService creates a preprocess service.
func NewPreprocessService(
	store driven.TextStore,
	pipeline driven.TextPipeline,
	segmenter driven.Segmenter,
	output domain.OutputSettings,
) *PreprocessService {
	return &PreprocessService{
		store:     store,
		pipeline:  pipeline,
		segmenter: segmenter,
		output:    output,
		now:       time.Now,
	}
}

// PreprocessGazetteTxtFile normalises source and writes the clean text to destination.
func (s *PreprocessService) PreprocessGazetteTxtFile(ctx context.Context, source, destination string) error {
	raw, err := s.store.ReadText(source)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	clean, err := s.clean(ctx, raw)
	if err != nil {
		return fmt.Errorf("clean %s: %w", source, err)
	}

	if err := s.store.WriteText(destination, clean); err != nil {
		return fmt.Errorf("write clean text: %w", err)
	}
	return nil
}

// CreateSentenceFile writes one sentence of source per line to destination.
func (s *PreprocessService) CreateSentenceFile(ctx context.Context, source, destination string) (int, error) {
	sentences, err := s.readSentences(ctx, source)
	if err != nil {
		return 0, err
	}

	if err := s.store.WriteLines(destination, sentences); err != nil {
		return 0, fmt.Errorf("write sentences: %w", err)
	}
	return len(sentences), nil
}

// CreateSentenceJSON writes the sentences of source to destination as a JSON array.
func (s *PreprocessService) CreateSentenceJSON(ctx context.Context, source, destination string) (int, error) {
	sentences, err := s.readSentences(ctx, source)
	if err != nil {
		return 0, err
	}

	if err := s.store.WriteJSON(destination, sentences); err != nil {
		return 0, fmt.Errorf("write sentences: %w", err)
	}
	return len(sentences), nil
}

// Process cleans and segments one discovered gazette, writing both outputs.
// The returned entry has no RunID; batch runs set it.
func (s *PreprocessService) Process(ctx context.Context, file domain.GazetteFile) (*domain.LedgerEntry, error) {
	raw, err := s.load(file)
	if err != nil {
		return nil, err
	}

	paths := ResolveOutputPaths(file, s.output)

	text, err := s.clean(ctx, string(raw.Content))
	if err != nil {
		return nil, fmt.Errorf("clean %s: %w", raw.Path, err)
	}
	doc := domain.CleanDocument{Source: raw.Path, Path: paths.Clean, Content: text}

	set := domain.SentenceSet{Source: doc.Path, Path: paths.Sentence, Sentences: s.segment(doc.Content)}
	if set.Len() == 0 {
		return nil, fmt.Errorf("segment %s: %w", raw.Path, domain.ErrEmptyContent)
	}

	if err := s.store.WriteText(doc.Path, doc.Content); err != nil {
		return nil, fmt.Errorf("write clean text: %w", err)
	}
	if err := s.writeSentences(set); err != nil {
		return nil, err
	}

	logger.Debug("processed %s: %d sentences", raw.Path, set.Len())

	return &domain.LedgerEntry{
		SourcePath:    raw.Path,
		EntityID:      raw.EntityID,
		Date:          raw.Date,
		CleanPath:     doc.Path,
		SentencePath:  set.Path,
		SentenceCount: set.Len(),
		ContentHash:   ContentHash(string(raw.Content)),
		ProcessedAt:   s.now().UTC(),
	}, nil
}

// Sentences cleans text in memory and returns its sentences.
func (s *PreprocessService) Sentences(ctx context.Context, text string) ([]string, error) {
	clean, err := s.pipeline.Process(ctx, text)
	if err != nil {
		return nil, err
	}
	return s.segment(clean), nil
}

// ContentHash returns the hex SHA-256 of raw gazette text.
func ContentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// load reads a discovered gazette into a RawDocument.
func (s *PreprocessService) load(file domain.GazetteFile) (*domain.RawDocument, error) {
	text, err := s.store.ReadText(file.Path)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return &domain.RawDocument{
		Path:     file.Path,
		EntityID: file.EntityID,
		Date:     file.DateString(),
		Content:  []byte(text),
	}, nil
}

func (s *PreprocessService) writeSentences(set domain.SentenceSet) error {
	var err error
	if s.output.SentenceFormat == domain.SentenceFormatJSON {
		err = s.store.WriteJSON(set.Path, set.Sentences)
	} else {
		err = s.store.WriteLines(set.Path, set.Sentences)
	}
	if err != nil {
		return fmt.Errorf("write sentences: %w", err)
	}
	return nil
}

// clean runs the pipeline and rejects output with nothing left in it.
func (s *PreprocessService) clean(ctx context.Context, raw string) (string, error) {
	clean, err := s.pipeline.Process(ctx, raw)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(clean) == "" {
		return "", domain.ErrEmptyContent
	}
	return clean, nil
}

func (s *PreprocessService) readSentences(ctx context.Context, source string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text, err := s.store.ReadText(source)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	sentences := s.segment(text)
	if len(sentences) == 0 {
		return nil, fmt.Errorf("segment %s: %w", source, domain.ErrEmptyContent)
	}
	return sentences, nil
}

// segment flattens text onto one line and collects its sentences.
func (s *PreprocessService) segment(text string) []string {
	var sentences []string
	for sentence := range s.segmenter.Segment(gazette.RemoveNewLineChar(text)) {
		sentences = append(sentences, sentence)
	}
	return sentences
}
