package domain

// RawDocument is raw gazette text as read from disk.
// It is an external input and is never modified.
type RawDocument struct {
	// Path identifies the document.
	Path string

	// EntityID and Date are derived from the directory convention when known.
	EntityID string
	Date     string

	// Content is the raw bytes.
	Content []byte
}

// ChangeType represents the type of file change seen while watching.
type ChangeType int

const (
	// ChangeCreated indicates a new gazette file.
	ChangeCreated ChangeType = iota

	// ChangeUpdated indicates a modified gazette file.
	ChangeUpdated

	// ChangeDeleted indicates a removed gazette file.
	ChangeDeleted
)

// String returns a lowercase name for the change type.
func (c ChangeType) String() string {
	switch c {
	case ChangeCreated:
		return "created"
	case ChangeUpdated:
		return "updated"
	case ChangeDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// GazetteChange is a change event emitted by a watcher.
type GazetteChange struct {
	// Type is the kind of change.
	Type ChangeType

	// File is the affected gazette file.
	File GazetteFile
}
