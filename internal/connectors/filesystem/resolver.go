package filesystem

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolvePath converts a user-supplied location into a local path.
// Handles file:// URIs and a leading "~/"; other paths pass through unchanged.
func ResolvePath(uri string) string {
	if strings.HasPrefix(uri, "file://") {
		return strings.TrimPrefix(uri, "file://")
	}
	if strings.HasPrefix(uri, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, uri[2:])
		}
	}
	return uri
}
