package swapi

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid swapi configuration")
	// ErrNotFound indicates a search produced no result
	ErrNotFound = errors.New("entity not found")
	// ErrInvalidResponse indicates the body could not be decoded as expected
	ErrInvalidResponse = errors.New("invalid response from SWAPI")
	// ErrInvalidReference indicates an entity reference is not an absolute URL
	ErrInvalidReference = errors.New("invalid entity reference")
)

// APIError is returned for any non-200 response
type APIError struct {
	StatusCode int
	URL        string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("swapi API error: status %d for %s", e.StatusCode, e.URL)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsRateLimited checks if the upstream throttled the request
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}
