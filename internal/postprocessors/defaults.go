package postprocessors

import (
	"github.com/custodia-labs/gazettes-cli/internal/core/domain"
	"github.com/custodia-labs/gazettes-cli/internal/core/ports/driven"
	"github.com/custodia-labs/gazettes-cli/internal/normalisers/gazette"
)

// RegisterDefaults registers all built-in normalisation passes with the registry.
// Call this during application initialisation.
func RegisterDefaults(r *Registry) {
	r.Register(domain.PassUnicodeNFC, fixed(domain.PassUnicodeNFC, gazette.NormalizeUnicode))
	r.Register(domain.PassSpecialQuotes, buildQuotes)
	r.Register(domain.PassPunctuationRuns, buildPunctuationRuns)
	r.Register(domain.PassDuplicateLetters, fixed(domain.PassDuplicateLetters, gazette.RemoveWordWithDuplicateLetters))
	r.Register(domain.PassDuplicateWhitespace, fixed(domain.PassDuplicateWhitespace, gazette.RemoveDuplicateWhitespaces))
	r.Register(domain.PassTrimLines, fixed(domain.PassTrimLines, gazette.TrimLines))
	r.Register(domain.PassEmptyLines, fixed(domain.PassEmptyLines, gazette.RemoveConsecutiveEmptyLines))
	r.Register(domain.PassLinePrefix, buildLinePrefix)
}

// NewDefaultPipeline builds the pipeline described by cfg using the built-in passes.
func NewDefaultPipeline(cfg domain.PipelineSettings) (*Pipeline, error) {
	r := NewRegistry()
	RegisterDefaults(r)
	return r.BuildPipeline(cfg)
}

func fixed(name string, fn func(string) string) BuilderFunc {
	return func(domain.PipelineSettings) (driven.TextPass, error) {
		return NewFunc(name, fn), nil
	}
}

func buildQuotes(cfg domain.PipelineSettings) (driven.TextPass, error) {
	marks := cfg.QuoteMarks
	if len(marks) == 0 {
		marks = domain.DefaultQuoteMarks()
	}
	replacer := gazette.NewQuoteReplacer(marks)
	return NewFunc(domain.PassSpecialQuotes, replacer.Replace), nil
}

func buildPunctuationRuns(cfg domain.PipelineSettings) (driven.TextPass, error) {
	minRun := cfg.MinFillerRun
	if minRun <= 0 {
		minRun = gazette.DefaultMinFillerRun
	}
	return NewFunc(domain.PassPunctuationRuns, func(text string) string {
		return gazette.RemovePunctuationRuns(text, minRun)
	}), nil
}

func buildLinePrefix(cfg domain.PipelineSettings) (driven.TextPass, error) {
	keywords := cfg.PrefixKeywords
	if len(keywords) == 0 {
		keywords = domain.DefaultPrefixKeywords()
	}
	return NewFunc(domain.PassLinePrefix, gazette.NewLinePrefixFilter(keywords).Apply), nil
}
