package clients

import "errors"

// Error taxonomy shared by all API clients. Callers match with errors.Is;
// retry policy belongs to callers, not to this layer.
var (
	// ErrNotFound means the requested resource does not exist (HTTP 404).
	ErrNotFound = errors.New("not found")

	// ErrNetwork covers connectivity failures, timeouts and 5xx responses.
	ErrNetwork = errors.New("network error")

	// ErrValidation means the server rejected the request payload.
	ErrValidation = errors.New("validation error")
)
