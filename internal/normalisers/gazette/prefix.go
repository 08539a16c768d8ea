package gazette

import (
	"regexp"
	"strings"
)

var defaultPrefixFilter = NewLinePrefixFilter([]string{"Art.", "§"})

// LinePrefixFilter strips structural citation markers such as "Art. 4.º" or
// "§ 2" from the start of lines.
type LinePrefixFilter struct {
	pattern *regexp.Regexp
}

// NewLinePrefixFilter creates a filter for markers opened by any of the
// keywords. A marker is the keyword, a number, an optional ordinal sign and
// optional periods, followed by whitespace or the end of the line. Keywords
// are matched case-sensitively, so lowercase references survive.
func NewLinePrefixFilter(keywords []string) *LinePrefixFilter {
	quoted := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(k))
	}
	if len(quoted) == 0 {
		return &LinePrefixFilter{}
	}
	pattern := `^[ \t]*(?:` + strings.Join(quoted, "|") + `)[ \t]*\d+(?:\.?[º°ª])?\.?(?:[ \t\r]+|$)`
	return &LinePrefixFilter{pattern: regexp.MustCompile(pattern)}
}

// RemoveSpecialLinePrefix strips "Art."/"§" markers from the start of every
// line using the default keywords.
func RemoveSpecialLinePrefix(text string) string {
	return defaultPrefixFilter.Apply(text)
}

// Apply strips leading markers from every line. Stripping repeats while a
// marker still leads the line. Lines left empty by stripping are removed with
// their newline; lines that were already blank are kept.
func (f *LinePrefixFilter) Apply(text string) string {
	if f.pattern == nil {
		return text
	}
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		stripped, changed := f.stripLine(line)
		if changed && strings.TrimSpace(stripped) == "" {
			continue
		}
		kept = append(kept, stripped)
	}
	return strings.Join(kept, "\n")
}

func (f *LinePrefixFilter) stripLine(line string) (string, bool) {
	changed := false
	for {
		loc := f.pattern.FindStringIndex(line)
		if loc == nil || loc[1] == 0 {
			return line, changed
		}
		line = line[loc[1]:]
		changed = true
	}
}
