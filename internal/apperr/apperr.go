// Package apperr carries the application error taxonomy: an HTTP-style
// status code plus a human-readable message. Handlers translate these
// 1:1 into response status and body; everything else surfaces as 500.
package apperr

import (
	"errors"
	"net/http"
)

type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NotFound marks a missing resource (404).
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

// InvalidRequest marks a business-rule violation (400).
func InvalidRequest(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// Internal marks an unexpected store-level failure (500).
func Internal(message string) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: message}
}

// StatusOf extracts the status code from an error chain, defaulting to
// 500 for errors that are not application errors.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Status
	}
	return http.StatusInternalServerError
}

// MessageOf extracts the application message, or a generic one for
// unexpected errors so internals never leak into responses.
func MessageOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "internal server error"
}
