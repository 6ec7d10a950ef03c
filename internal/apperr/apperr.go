// Package apperr defines the stable failure kinds every service reports.
// Controllers translate a kind to an HTTP status in exactly one place, so
// callers always see the same taxonomy regardless of entity kind.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	// Internal is the zero value: an unclassified storage or runtime failure.
	Internal Kind = iota
	// InvalidInput marks a payload that failed shape or value validation.
	InvalidInput
	// NotFound marks an id that did not resolve, or resolved outside the
	// caller's access scope. The two are deliberately indistinguishable.
	NotFound
	// Conflict marks a unique-field collision on create.
	Conflict
	// Forbidden marks a caller whose role is absent from an action's allow-list.
	Forbidden
	// DependencyMissing marks a referenced parent id that does not exist.
	DependencyMissing
	// Unauthenticated marks missing or invalid credentials.
	Unauthenticated
)

// Error carries a failure kind plus a human-readable message.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error of the given kind.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the kind from err, or Internal if err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus maps a failure kind to its wire status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case InvalidInput:
		return http.StatusBadRequest
	case Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case DependencyMissing:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
