// Package segmenter splits normalised gazette text into sentences.
//
// Splitting is rule based: a sentence ends at terminal punctuation followed
// by whitespace and something that can start a sentence. Legal abbreviations
// ("art.", "inc.", "n.") and quoted passages never end a sentence.
package segmenter

import (
	"iter"
	"strings"
	"unicode"

	"github.com/custodia-labs/gazettes-cli/internal/core/domain"
	"github.com/custodia-labs/gazettes-cli/internal/core/ports/driven"
)

// Ensure Segmenter implements the interface.
var _ driven.Segmenter = (*Segmenter)(nil)

// Segmenter splits text into sentences. It is immutable after construction
// and safe for concurrent use.
type Segmenter struct {
	abbreviations map[string]bool
	glueRoman     bool
}

// Option configures a Segmenter.
type Option func(*Segmenter)

// WithAbbreviations replaces the abbreviation list. Entries are matched
// case-insensitively; a trailing period is ignored.
func WithAbbreviations(words []string) Option {
	return func(s *Segmenter) {
		s.abbreviations = make(map[string]bool, len(words))
		for _, w := range words {
			w = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(w), "."))
			if w != "" {
				s.abbreviations[w] = true
			}
		}
	}
}

// WithGlueRomanNumerals controls whether "inc. XI" is rewritten as "inc.XI".
func WithGlueRomanNumerals(glue bool) Option {
	return func(s *Segmenter) {
		s.glueRoman = glue
	}
}

// New creates a segmenter with the default abbreviations and roman numeral gluing.
func New(opts ...Option) *Segmenter {
	s := &Segmenter{glueRoman: true}
	WithAbbreviations(domain.DefaultAbbreviations())(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var defaultSegmenter = New()

// SentenceSegmentation splits text with the default settings.
func SentenceSegmentation(text string) iter.Seq[string] {
	return defaultSegmenter.Segment(text)
}

// Segment returns the sentences of text in order. Whitespace runs, newlines
// included, collapse to one space, and each sentence is trimmed. The sequence
// can be ranged over any number of times.
func (s *Segmenter) Segment(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		runes := []rune(s.Prepare(text))
		quotes := findQuoteSpans(runes)

		start := 0
		for i := 0; i < len(runes); i++ {
			if !isTerminal(runes[i]) {
				continue
			}
			end, ok := s.boundary(runes, i, quotes)
			if !ok {
				continue
			}
			if !yield(string(runes[start:end])) {
				return
			}
			start = end + 1
			i = end
		}
		if start < len(runes) {
			yield(string(runes[start:]))
		}
	}
}

// Prepare returns the text exactly as Segment sees it: whitespace collapsed
// and roman numerals glued. Joining the sentences of text with single spaces
// reproduces Prepare(text).
func (s *Segmenter) Prepare(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if s.glueRoman {
		text = s.glueRomanNumerals(text)
	}
	return text
}

// boundary reports whether a sentence ends at the terminal run starting at i.
// It returns the index of the space that separates the two sentences.
func (s *Segmenter) boundary(runes []rune, i int, quotes quoteSpans) (int, bool) {
	j := i
	for j < len(runes) && isTerminal(runes[j]) {
		j++
	}

	// Closing quotes and brackets stay with the sentence they close.
	k := j
	closedSpan := false
	for k < len(runes) {
		if runes[k] == '"' {
			if !quotes.closes[k] {
				break
			}
			closedSpan = true
		} else if !isCloser(runes[k]) {
			break
		}
		k++
	}

	if k+1 >= len(runes) || runes[k] != ' ' {
		return 0, false
	}
	if !s.startsSentence(runes, k+1, quotes) {
		return 0, false
	}
	if j-i == 1 && runes[i] == '.' && s.isAbbreviation(runes, i) {
		return 0, false
	}
	if !closedSpan && quotes.inside(i) {
		return 0, false
	}
	return k, true
}

// startsSentence reports whether an uppercase letter, or an opening quote
// followed by one, sits at the given index. Digits and brackets never start
// a sentence.
func (s *Segmenter) startsSentence(runes []rune, at int, quotes quoteSpans) bool {
	r := runes[at]
	if unicode.IsUpper(r) {
		return true
	}
	opening := isOpener(r) || (r == '"' && quotes.opens[at])
	return opening && at+1 < len(runes) && unicode.IsUpper(runes[at+1])
}

// isAbbreviation reports whether the word ending right before the period at
// i is a known abbreviation.
func (s *Segmenter) isAbbreviation(runes []rune, i int) bool {
	k := i
	for k > 0 && unicode.IsLetter(runes[k-1]) {
		k--
	}
	if k == i {
		return false
	}
	return s.abbreviations[strings.ToLower(string(runes[k:i]))]
}

// glueRomanNumerals turns "<abbreviation>. <ROMAN>" into "<abbreviation>.<ROMAN>".
func (s *Segmenter) glueRomanNumerals(text string) string {
	runes := []rune(text)
	out := make([]rune, 0, len(runes))
	for i := 0; i < len(runes); i++ {
		out = append(out, runes[i])
		if runes[i] != '.' || i+2 >= len(runes) || runes[i+1] != ' ' {
			continue
		}
		if (i > 0 && runes[i-1] == '.') || !s.isAbbreviation(runes, i) {
			continue
		}
		if romanAt(runes, i+2) {
			i++ // drop the space
		}
	}
	return string(out)
}

// romanAt reports whether a standalone uppercase roman numeral starts at i.
func romanAt(runes []rune, i int) bool {
	j := i
	for j < len(runes) && strings.ContainsRune("IVXLCDM", runes[j]) {
		j++
	}
	if j == i {
		return false
	}
	return j == len(runes) || !(unicode.IsLetter(runes[j]) || unicode.IsDigit(runes[j]))
}

// quoteSpans pairs straight double quotes in order of appearance.
// An unpaired final quote is ignored.
type quoteSpans struct {
	pairs  [][2]int
	opens  map[int]bool
	closes map[int]bool
}

func findQuoteSpans(runes []rune) quoteSpans {
	q := quoteSpans{opens: make(map[int]bool), closes: make(map[int]bool)}
	open := -1
	for i, r := range runes {
		if r != '"' {
			continue
		}
		if open < 0 {
			open = i
			continue
		}
		q.pairs = append(q.pairs, [2]int{open, i})
		q.opens[open] = true
		q.closes[i] = true
		open = -1
	}
	return q
}

// inside reports whether at lies strictly between a pair of quotes.
func (q quoteSpans) inside(at int) bool {
	for _, p := range q.pairs {
		if p[0] < at && at < p[1] {
			return true
		}
	}
	return false
}

func isTerminal(r rune) bool {
	return r == '.' || r == '?' || r == '!' || r == '…'
}

func isCloser(r rune) bool {
	switch r {
	case ')', ']', '”', '’', '»', '\'':
		return true
	}
	return false
}

func isOpener(r rune) bool {
	return r == '“' || r == '‘' || r == '«'
}
