package avidbase

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is returned by the transport for any non-2xx response.
type APIError struct {
	StatusCode int    `json:"status_code" yaml:"status_code"`
	Method     string `json:"method"      yaml:"method"`
	Path       string `json:"path"        yaml:"path"`
	Body       string `json:"body"        yaml:"body"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	}

	return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

// Static errors describing why an operation produced its failure result.
var (
	ErrTokenHeaderMissing = errors.New("response carries no Access-Token header")
	ErrNoMachineToken     = errors.New("machine access token unavailable")
	ErrUnexpectedStatus   = errors.New("unexpected status code")
	ErrUnexpectedPayload  = errors.New("unexpected response payload")
)

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}

	return 0
}

// IsUnauthorized checks if the error is a 401 response.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// IsForbidden checks if the error is a 403 response.
func IsForbidden(err error) bool {
	return StatusCode(err) == http.StatusForbidden
}

// IsNotFound checks if the error is a 404 response.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}
