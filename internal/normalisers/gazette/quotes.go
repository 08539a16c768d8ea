package gazette

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

var defaultQuoteReplacer = NewQuoteReplacer([]string{"“", "”", "„", "‟", "«", "»"})

// NewQuoteReplacer builds a replacer mapping every mark to a plain double quote.
// Marks may be multi-character placeholders such as "???". Empty marks are ignored.
func NewQuoteReplacer(marks []string) *strings.Replacer {
	oldnew := make([]string, 0, len(marks)*2)
	for _, mark := range marks {
		if mark == "" {
			continue
		}
		oldnew = append(oldnew, mark, `"`)
	}
	return strings.NewReplacer(oldnew...)
}

// RemoveSpecialQuotes replaces typographic opening and closing quotes with '"'.
func RemoveSpecialQuotes(text string) string {
	return defaultQuoteReplacer.Replace(text)
}

// NormalizeUnicode composes decomposed characters (NFC), so OCR output such as
// "c" followed by a combining cedilla matches the precomposed "ç".
func NormalizeUnicode(text string) string {
	return norm.NFC.String(text)
}
