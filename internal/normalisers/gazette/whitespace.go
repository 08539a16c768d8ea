package gazette

import (
	"regexp"
	"strings"
)

var (
	spaceRuns     = regexp.MustCompile(`[ \t]+`)
	emptyLineRuns = regexp.MustCompile(`\n(?:[ \t\r]*\n)+`)
)

// RemoveDuplicateWhitespaces collapses every run of spaces and tabs into a
// single space. Newlines are left alone.
func RemoveDuplicateWhitespaces(text string) string {
	return spaceRuns.ReplaceAllString(text, " ")
}

// RemoveConsecutiveEmptyLines collapses any run of newlines, including lines
// holding only spaces, into exactly one newline.
func RemoveConsecutiveEmptyLines(text string) string {
	return emptyLineRuns.ReplaceAllString(text, "\n")
}

// RemoveNewLineChar flattens text into a single line. Each line is trimmed,
// blank lines are dropped and the rest are joined with single spaces.
func RemoveNewLineChar(text string) string {
	lines := strings.Split(text, "\n")
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}

// TrimLines strips spaces, tabs and carriage returns from both ends of every line.
func TrimLines(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.Trim(line, " \t\r")
	}
	return strings.Join(lines, "\n")
}
