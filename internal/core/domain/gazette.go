package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the layout of the date directory segment: YYYY-MM-DD.
const DateLayout = "2006-01-02"

// ParseGazetteDate parses a YYYY-MM-DD date segment.
func ParseGazetteDate(value string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, value)
	}
	return d, nil
}

// GazetteFile is a file found under <root>/<entity-id>/<YYYY-MM-DD>/<file>.
type GazetteFile struct {
	// Path is the file path as found by the walk.
	Path string

	// EntityID is the directory segment naming the publishing entity.
	// Empty when the file is not nested deeply enough.
	EntityID string

	// Date is the parsed date of the directory immediately containing the file.
	Date time.Time

	// HasDate is false when the containing directory is not a date.
	HasDate bool
}

// DateString returns the directory date as YYYY-MM-DD, or empty if undated.
func (g GazetteFile) DateString() string {
	if !g.HasDate {
		return ""
	}
	return g.Date.Format(DateLayout)
}

// OnOrAfter reports whether the gazette's directory date is >= cutoff.
// Undated files are never on or after a cutoff.
func (g GazetteFile) OnOrAfter(cutoff time.Time) bool {
	return g.HasDate && !g.Date.Before(cutoff)
}
