package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Pipeline Errors.

	// ErrEmptyContent indicates extraction or cleaning left no usable content.
	// It usually points at an upstream extraction failure and is never retried.
	ErrEmptyContent = errors.New("no content")

	// ErrMissingFile indicates a source path does not exist.
	ErrMissingFile = errors.New("missing file")

	// ErrMalformedDate indicates a directory segment or cutoff is not a YYYY-MM-DD date.
	ErrMalformedDate = errors.New("malformed date")

	// ErrAlreadyLocked indicates another batch run holds the output lock.
	ErrAlreadyLocked = errors.New("output directory is locked by another run")
)
