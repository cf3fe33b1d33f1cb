package service

import "errors"

var (
	// ErrStoryNotFound is returned when a catalog operation targets a
	// story that does not exist.
	ErrStoryNotFound = errors.New("story not found")

	// ErrTooManyPaths is returned when a batch-urls request exceeds the
	// per-request path cap.
	ErrTooManyPaths = errors.New("too many asset paths in one request")
)
