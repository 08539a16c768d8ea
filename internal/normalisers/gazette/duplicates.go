package gazette

import (
	"regexp"
	"unicode"
)

var wordPattern = regexp.MustCompile(`\S+`)

// FindDuplicatesChars returns the distinct characters that appear in runs of
// two or more, in order of first occurrence. Comparison is case-sensitive.
func FindDuplicatesChars(text string) []rune {
	runes := []rune(text)
	seen := make(map[rune]bool)
	var found []rune
	for i := 1; i < len(runes); i++ {
		r := runes[i]
		if r == runes[i-1] && !seen[r] {
			seen[r] = true
			found = append(found, r)
		}
	}
	return found
}

// RemoveWordWithDuplicateLetters collapses words where every letter was
// doubled by OCR, e.g. "CCRRIIAADDOO" becomes "CRIADO". Words that are not
// fully doubled are left unchanged, and so is the whitespace between words.
func RemoveWordWithDuplicateLetters(text string) string {
	return wordPattern.ReplaceAllStringFunc(text, collapseDoubledWord)
}

// collapseDoubledWord undoubles until the word is stable, which keeps the
// pass idempotent for words doubled more than once.
func collapseDoubledWord(word string) string {
	for {
		next, ok := undouble(word)
		if !ok {
			return word
		}
		word = next
	}
}

func undouble(word string) (string, bool) {
	runes := []rune(word)
	if len(runes) < 2 || len(runes)%2 != 0 {
		return word, false
	}
	out := make([]rune, 0, len(runes)/2)
	for i := 0; i < len(runes); i += 2 {
		if runes[i] != runes[i+1] || !unicode.IsLetter(runes[i]) {
			return word, false
		}
		out = append(out, runes[i])
	}
	return string(out), true
}
