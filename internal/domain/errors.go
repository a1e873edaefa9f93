package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrQueryTooShort is returned when a query is below the minimum length.
	// It is never shown to the user.
	ErrQueryTooShort = errors.New("query too short")

	// ErrBackendUnavailable wraps transport failures reaching the search endpoint
	ErrBackendUnavailable = errors.New("search backend unavailable")

	// ErrStaleResponse marks a response that arrived after a newer request was issued
	ErrStaleResponse = errors.New("stale response discarded")
)

// BackendError is returned when the endpoint answered with a non-success status
type BackendError struct {
	StatusCode int
	Message    string // optional error text from the response body
}

func (e *BackendError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error: %d (%s)", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error: %d", e.StatusCode)
}

// IsBackendError reports whether err carries a *BackendError
func IsBackendError(err error) bool {
	var be *BackendError
	return errors.As(err, &be)
}

// FailureMessage turns a backend failure into the text shown to the user
func FailureMessage(err error) string {
	return fmt.Sprintf("Search request failed: %v", err)
}
