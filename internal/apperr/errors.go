// Package apperr defines the error taxonomy shared by the services and the
// HTTP layer.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for transport-level mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindUnauthorized
	KindNotFound
	KindStorage
)

// Error is a classified application error with a client-facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports a missing or malformed request field.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Conflict reports a uniqueness violation.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Unauthorized reports failed credential checks.
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// NotFound reports a missing record.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Storage wraps a persistence failure. Unlike a missing file, which degrades
// to an empty collection, a storage error is surfaced to the caller.
func Storage(message string, err error) *Error {
	return &Error{Kind: KindStorage, Message: message, Err: err}
}

// HTTPStatus maps an error to the response status code. Unclassified errors
// map to 500.
func HTTPStatus(err error) int {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindStorage:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Message extracts the client-facing message, hiding internal detail for
// unclassified errors.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Internal server error."
}
