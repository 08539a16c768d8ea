package gazette

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMinFillerRun is the number of filler characters that makes a leader.
const DefaultMinFillerRun = 2

// maxAttached is how many punctuation runes of any kind may cling to a
// neighbouring word and still count as legitimate punctuation rather than filler.
const maxAttached = 2

// maxCluster bounds longer attached clusters made only of sentence
// punctuation, such as ").”" or "?!”".
const maxCluster = 4

// closingPunct may end a word: terminators, separators and closers.
var closingPunct = map[rune]bool{
	'.': true, ',': true, ';': true, ':': true, '!': true, '?': true,
	')': true, ']': true, '}': true, '"': true, '\'': true,
	'”': true, '’': true, '»': true,
}

// openingPunct may start a word.
var openingPunct = map[rune]bool{
	'(': true, '[': true, '{': true, '"': true, '\'': true,
	'“': true, '‘': true, '«': true,
}

// typographicFillers are non-ASCII characters that may appear in leader runs.
// Section and ordinal signs are deliberately absent: they belong to citations.
var typographicFillers = map[rune]bool{
	'“': true, '”': true, '‘': true, '’': true, '„': true, '‟': true,
	'«': true, '»': true, '–': true, '—': true, '…': true, '·': true, '•': true,
}

// RemoveLineWithPunctuationOnly removes table-of-contents leaders and other
// runs of symbol noise from every line, keeping short punctuation attached to
// real content. See RemovePunctuationRuns.
func RemoveLineWithPunctuationOnly(text string) string {
	return RemovePunctuationRuns(text, DefaultMinFillerRun)
}

// RemovePunctuationRuns scans each line for maximal runs of filler characters
// (spaces, ASCII punctuation and symbols, typographic quotes and dashes).
// A run is a leader when, after setting aside the punctuation glued to the word
// before it and to the word after it, at least minRun non-space characters
// remain. Glued punctuation is any two runes, or a short cluster of sentence
// punctuation without a tripled rune (").”", "?!”", "(“"). A single ellipsis
// glued to a word is kept too. Runs without spaces are leaders only when
// they repeat a character three times, as in "Art.34....III".
//
// A leader between two words becomes a single space; at the start or end of a
// line it is removed, so a line holding nothing but filler becomes empty.
func RemovePunctuationRuns(text string, minRun int) string {
	if minRun < 1 {
		minRun = 1
	}
	runes := []rune(text)

	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(runes); {
		if !isFiller(runes[i]) {
			b.WriteRune(runes[i])
			i++
			continue
		}
		j := i
		for j < len(runes) && isFiller(runes[j]) {
			j++
		}
		hasPrev := i > 0 && !isLineBreak(runes[i-1])
		hasNext := j < len(runes) && !isLineBreak(runes[j])
		b.WriteString(collapseRun(runes[i:j], hasPrev, hasNext, minRun))
		i = j
	}
	return b.String()
}

func collapseRun(run []rune, hasPrev, hasNext bool, minRun int) string {
	sep := ""
	if hasPrev && hasNext {
		sep = " "
	}

	first, last := -1, -1
	for k, r := range run {
		if isBlank(r) {
			if first < 0 {
				first = k
			}
			last = k
		}
	}

	if first < 0 {
		if repeats(run, 3) {
			return sep
		}
		return string(run)
	}

	lead, trail := 0, len(run)
	if hasPrev && attachedAfterWord(run[:first]) {
		lead = first
	}
	if hasNext && attachedBeforeWord(run[last+1:]) {
		trail = last + 1
	}
	if countNonBlank(run[lead:trail]) < minRun {
		return string(run)
	}
	return string(run[:lead]) + sep + string(run[trail:])
}

// attachedAfterWord reports whether a cluster that follows a word is
// legitimate closing punctuation.
func attachedAfterWord(cluster []rune) bool {
	if len(cluster) <= maxAttached {
		return true
	}
	switch {
	case len(cluster) >= 3 && string(cluster[:3]) == "..." && (len(cluster) == 3 || cluster[3] != '.'):
		cluster = cluster[3:]
	case cluster[0] == '…' && (len(cluster) == 1 || cluster[1] != '…'):
		cluster = cluster[1:]
	}
	return isCluster(cluster, closingPunct)
}

// attachedBeforeWord reports whether a cluster that precedes a word is
// legitimate opening punctuation.
func attachedBeforeWord(cluster []rune) bool {
	if len(cluster) <= maxAttached {
		return true
	}
	return isCluster(cluster, openingPunct)
}

func isCluster(cluster []rune, allowed map[rune]bool) bool {
	if len(cluster) > maxCluster || repeats(cluster, 3) {
		return false
	}
	for _, r := range cluster {
		if !allowed[r] {
			return false
		}
	}
	return true
}

func isFiller(r rune) bool {
	switch {
	case isLineBreak(r):
		return false
	case isBlank(r):
		return true
	case r < utf8.RuneSelf:
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	default:
		return typographicFillers[r]
	}
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\t' || r == '\u00a0'
}

func isLineBreak(r rune) bool {
	return r == '\n' || r == '\r'
}

func countNonBlank(run []rune) int {
	n := 0
	for _, r := range run {
		if !isBlank(r) {
			n++
		}
	}
	return n
}

// repeats reports whether some rune occurs n times in a row.
func repeats(run []rune, n int) bool {
	count := 1
	for k := 1; k < len(run); k++ {
		if run[k] == run[k-1] {
			count++
			if count >= n {
				return true
			}
		} else {
			count = 1
		}
	}
	return n <= 1 && len(run) > 0
}
