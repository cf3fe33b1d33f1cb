package adapter

import "errors"

var (
	// ErrUnavailable marks transport failures and 5xx responses: the
	// server cannot be reached right now. The sync orchestrator treats
	// it as the offline signal.
	ErrUnavailable = errors.New("sync server unavailable")

	// ErrInvalidRequest maps 400 responses.
	ErrInvalidRequest = errors.New("server rejected the request")

	// ErrUnauthorized maps 401/403 responses.
	ErrUnauthorized = errors.New("request not authorized")

	// ErrNotFound maps 404 responses.
	ErrNotFound = errors.New("resource not found")
)
