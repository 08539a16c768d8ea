package driven

// TextStore reads and writes text artifacts.
// Writes are all-or-nothing: a failed write leaves no partial destination.
type TextStore interface {
	// ReadText reads a whole file. Returns domain.ErrMissingFile when absent.
	ReadText(path string) (string, error)

	// WriteText replaces the destination with content.
	WriteText(path, content string) error

	// WriteLines writes one line per entry, each terminated by a newline.
	WriteLines(path string, lines []string) error

	// WriteJSON writes v as JSON.
	WriteJSON(path string, v any) error

	// ReadJSON decodes a JSON file into v.
	ReadJSON(path string, v any) error

	// Exists reports whether path exists.
	Exists(path string) bool
}
