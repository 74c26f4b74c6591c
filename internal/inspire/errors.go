package inspire

import (
	"errors"
	"fmt"

	"github.com/sony/gobreaker/v2"
)

// Common errors returned by the INSPIRE client.
var (
	// ErrNotFound indicates the query matched nothing.
	ErrNotFound = errors.New("not found in INSPIRE")

	// ErrRateLimited indicates every attempt was answered with HTTP 429.
	ErrRateLimited = errors.New("INSPIRE rate limit exceeded")

	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error communicating with INSPIRE")

	// ErrInvalidResponse indicates an unexpected API response.
	ErrInvalidResponse = errors.New("invalid response from INSPIRE")

	// ErrCircuitOpen indicates recent requests failed and new ones are refused
	// until the breaker closes again.
	ErrCircuitOpen = errors.New("INSPIRE requests suspended after repeated failures")
)

// APIError represents a non-success HTTP status from the INSPIRE API.
type APIError struct {
	StatusCode int
	URL        string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("INSPIRE API error (status %d): %s (url: %s)", e.StatusCode, e.Message, e.URL)
}

// IsNotFound returns true if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	return false
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429
	}
	return false
}

// IsCircuitOpen returns true if the request was refused by the circuit breaker.
func IsCircuitOpen(err error) bool {
	return errors.Is(err, ErrCircuitOpen) ||
		errors.Is(err, gobreaker.ErrOpenState) ||
		errors.Is(err, gobreaker.ErrTooManyRequests)
}
