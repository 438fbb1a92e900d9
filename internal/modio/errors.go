package modio

import (
	"errors"
	"fmt"
)

// Client errors.
var (
	// ErrModNotFound is returned when the service has no record of the mod.
	ErrModNotFound = errors.New("mod not found")

	// ErrUnauthorized is returned when the service rejects the access token.
	// This is a fatal setup error: no per-mod lookup can succeed.
	ErrUnauthorized = errors.New("mod.io rejected the access token")

	// ErrAmbiguousReference is returned when a name_id query matches more
	// than one mod. The reference cannot be reconciled safely.
	ErrAmbiguousReference = errors.New("ambiguous mod reference")
)

// APIError is a non-2xx response from the mod.io API.
// It preserves the HTTP status code and the message from the error envelope
// so that per-item failures can be reported with their underlying cause.
type APIError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// Message is the human-readable message from the API error envelope,
	// empty when the body could not be decoded.
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("mod.io API error: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("mod.io API error: HTTP %d: %s", e.StatusCode, e.Message)
}

// StatusOf returns the HTTP status code carried by err, or 0 when err does
// not wrap an APIError.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
