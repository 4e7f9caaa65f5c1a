package lenzoo

import (
	"errors"
	"fmt"
	"net/http"
)

// TransportError means no usable response arrived (network failure, timeout,
// cancellation).
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: request failed: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError is a failure reported by the server, either through a non-2xx
// status or a success:false body.
type APIError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Endpoint, e.StatusCode, e.Message)
}

// Message returns the most specific user-facing text for err: the server's
// message when it sent one, fallback otherwise.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	var vErr ValidationError
	if errors.As(err, &vErr) {
		return vErr.Error()
	}
	return fallback
}

func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) &&
		(apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden)
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// ValidationError is returned before any request is sent when arguments are
// unusable.
type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}
