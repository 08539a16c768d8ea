package domain

import "time"

// LedgerEntry records the outcome of processing one gazette file.
// The ledger lets batch runs skip gazettes whose content has not changed.
type LedgerEntry struct {
	// SourcePath is the raw gazette path and the entry's key.
	SourcePath string

	// EntityID and Date come from the directory convention.
	EntityID string
	Date     string

	// CleanPath and SentencePath are the produced files.
	CleanPath    string
	SentencePath string

	// SentenceCount is the number of sentences written.
	SentenceCount int

	// ContentHash is the hex SHA-256 of the raw content.
	ContentHash string

	// RunID identifies the batch run that produced the entry.
	RunID string

	// ProcessedAt is when the entry was written.
	ProcessedAt time.Time
}
