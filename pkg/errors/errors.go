// Package errors defines the API error taxonomy for the embedding service.
// Every failure surfaced to a client is mapped to one of these types and
// rendered as the structured {"error": {...}} document.
package errors

import (
	"fmt"
	"net/http"
)

// Error types returned in the machine-readable "type" field.
const (
	TypeInvalidRequest = "invalid_request_error"
	TypeInternalError  = "internal_error"
)

// APIError is a client-visible error with an HTTP status and an OpenAI-style
// error type. Messages are human-readable and never carry stack traces or
// internal identifiers.
type APIError struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Type       string `json:"type"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s (code=%d)", e.Type, e.Message, e.StatusCode)
}

// HTTPStatusCode returns the status code to respond with.
func (e *APIError) HTTPStatusCode() int {
	if e.StatusCode > 0 {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}

// NewInvalidRequestError creates an invalid request error (400). The client
// must fix the request; it is never retried.
func NewInvalidRequestError(message string) *APIError {
	return &APIError{
		StatusCode: http.StatusBadRequest,
		Message:    message,
		Type:       TypeInvalidRequest,
	}
}

// NewInternalError creates an internal error (500). Engine failures and
// infrastructure faults both map here; the engine's state after a failure is
// not assumed recoverable, so these are not retried automatically.
func NewInternalError(message string) *APIError {
	return &APIError{
		StatusCode: http.StatusInternalServerError,
		Message:    message,
		Type:       TypeInternalError,
	}
}
