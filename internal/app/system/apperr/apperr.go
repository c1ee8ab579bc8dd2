// Package apperr defines the error taxonomy shared by stores, handlers and
// the admin client. Each Error carries a Kind that maps to one HTTP status,
// a message that is safe to show to API clients, and optionally the wrapped
// cause, which is only exposed in dev mode.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies an error for HTTP mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindTooManyRequests
	KindPayloadTooLarge
)

// FieldError names one offending input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the concrete error type carried through the app.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status returns the HTTP status code for the error's kind.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindTooManyRequests:
		return http.StatusTooManyRequests
	case KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// Validation builds a validation error listing the offending fields.
// The message is the first field message, or "Validation failed".
func Validation(fields ...FieldError) *Error {
	msg := "Validation failed"
	if len(fields) > 0 && fields[0].Message != "" {
		msg = fields[0].Message
	}
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

// Invalid is shorthand for a single-field validation error.
func Invalid(field, message string) *Error {
	return Validation(FieldError{Field: field, Message: message})
}

func Unauthorized(message string) *Error {
	if message == "" {
		message = "Unauthorized"
	}
	return &Error{Kind: KindUnauthorized, Message: message}
}

func Forbidden(message string) *Error {
	if message == "" {
		message = "Forbidden"
	}
	return &Error{Kind: KindForbidden, Message: message}
}

// NotFound reports a missing resource, e.g. NotFound("property").
func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: capitalize(resource) + " not found"}
}

// NotFoundIDs reports ids that do not exist in a scope.
func NotFoundIDs(resource string, ids []string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("Unknown %s: %s", resource, strings.Join(ids, ", ")),
	}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func TooManyRequests(message string) *Error {
	return &Error{Kind: KindTooManyRequests, Message: message}
}

func PayloadTooLarge(message string) *Error {
	return &Error{Kind: KindPayloadTooLarge, Message: message}
}

// Internal wraps an unexpected failure. The message is what clients see.
func Internal(message string, err error) *Error {
	if message == "" {
		message = "Internal server error"
	}
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// As extracts an *Error from err. Errors that are not *Error become Internal.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal("", err)
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func capitalize(s string) string {
	if s == "" {
		return "Resource"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
