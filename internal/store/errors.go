package store

import "errors"

var (
	// ErrNotFound is returned when a requested record does not exist.
	// For the catalog version this is the bootstrap state: callers treat
	// it as version 0 with an empty checksum map, never as a failure.
	ErrNotFound = errors.New("record not found")

	// ErrVersionConflict is returned when a catalog mutation lost an
	// optimistic-lock race. The version store retries it internally with
	// backoff; it never escapes to callers of RecordChange/RecordRemoval
	// unless retries are exhausted.
	ErrVersionConflict = errors.New("catalog version conflict")
)
