package domain

// Normalisation pass names, in the order DefaultPasses runs them.
const (
	PassUnicodeNFC          = "unicode_nfc"
	PassSpecialQuotes       = "special_quotes"
	PassPunctuationRuns     = "punctuation_runs"
	PassDuplicateLetters    = "duplicate_letters"
	PassDuplicateWhitespace = "duplicate_whitespace"
	PassTrimLines           = "trim_lines"
	PassEmptyLines          = "empty_lines"
	PassLinePrefix          = "line_prefix"
)

// Sentence file formats.
const (
	SentenceFormatLines = "lines"
	SentenceFormatJSON  = "json"
)

// DefaultPasses returns the fixed pass order of the clean-text pipeline.
// Character/line normalisation runs first and the structural filter last.
func DefaultPasses() []string {
	return []string{
		PassUnicodeNFC,
		PassSpecialQuotes,
		PassPunctuationRuns,
		PassDuplicateLetters,
		PassDuplicateWhitespace,
		PassTrimLines,
		PassEmptyLines,
		PassLinePrefix,
	}
}

// DefaultAbbreviations returns words whose trailing period never ends a sentence.
// Entries are compared case-insensitively and without the period.
func DefaultAbbreviations() []string {
	return []string{
		"art", "arts", "inc", "incs", "al", "n", "nº", "no", "núm", "num",
		"sr", "sra", "srs", "dr", "dra", "prof", "profa", "exmo", "exma",
		"fl", "fls", "pág", "págs", "p", "pp", "cap", "parág", "par",
	}
}

// DefaultQuoteMarks returns the typographic quotes mapped to a plain double quote.
func DefaultQuoteMarks() []string {
	return []string{"“", "”", "„", "‟", "«", "»"}
}

// DefaultPrefixKeywords returns the keywords that open a structural line marker.
func DefaultPrefixKeywords() []string {
	return []string{"Art.", "§"}
}

// PipelineSettings configures the normalisation passes and the segmenter.
type PipelineSettings struct {
	// Passes is the ordered list of pass names to run.
	Passes []string `validate:"required,min=1,dive,required"`

	// Abbreviations never end a sentence.
	Abbreviations []string

	// GlueRomanNumerals joins "inc. XI" into "inc.XI".
	GlueRomanNumerals bool

	// QuoteMarks are replaced by a plain double quote.
	QuoteMarks []string `validate:"dive,required"`

	// PrefixKeywords open a line-leading structural marker.
	PrefixKeywords []string `validate:"dive,required"`

	// MinFillerRun is how many filler characters make a leader run.
	MinFillerRun int `validate:"min=1"`
}

// OutputSettings configures where and how outputs are written.
type OutputSettings struct {
	// Dir mirrors <entity>/<date> below it. Empty writes next to the source.
	Dir string

	// CleanPrefix is prepended to clean file names.
	CleanPrefix string `validate:"required"`

	// SentencePrefix is prepended to sentence file names.
	SentencePrefix string `validate:"required"`

	// SentenceFormat is "lines" or "json".
	SentenceFormat string `validate:"oneof=lines json"`
}

// DiscoverySettings configures dated file discovery.
type DiscoverySettings struct {
	// Since is the inclusive YYYY-MM-DD cutoff. Empty means no cutoff.
	Since string `validate:"omitempty,datetime=2006-01-02"`
}

// BatchSettings configures batch processing.
type BatchSettings struct {
	// Workers is the number of files processed concurrently.
	Workers int `validate:"min=1,max=64"`

	// LedgerDir holds the ledger database. Empty uses ~/.gazettes/data.
	LedgerDir string
}

// TabularSettings configures the CSV catalog ingestion variant.
type TabularSettings struct {
	// CatalogPath is the gazette CSV index.
	CatalogPath string `validate:"required"`

	// DataDir holds downloaded files, extracted XML and *_text.json outputs.
	DataDir string `validate:"required"`

	// MinFragmentLength drops extracted fragments shorter than this (in runes).
	MinFragmentLength int `validate:"min=0"`
}

// AppSettings holds all application settings.
type AppSettings struct {
	Pipeline  PipelineSettings
	Output    OutputSettings
	Discovery DiscoverySettings
	Batch     BatchSettings
	Tabular   TabularSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Pipeline: PipelineSettings{
			Passes:            DefaultPasses(),
			Abbreviations:     DefaultAbbreviations(),
			GlueRomanNumerals: true,
			QuoteMarks:        DefaultQuoteMarks(),
			PrefixKeywords:    DefaultPrefixKeywords(),
			MinFillerRun:      2,
		},
		Output: OutputSettings{
			CleanPrefix:    "clean_",
			SentencePrefix: "sentence_",
			SentenceFormat: SentenceFormatLines,
		},
		Batch: BatchSettings{
			Workers: 4,
		},
		Tabular: TabularSettings{
			CatalogPath:       "data/gazettes_sample.csv",
			DataDir:           "data/files",
			MinFragmentLength: 3,
		},
	}
}
