// Package apperr defines the error taxonomy shared by services and the HTTP edge.
// Every failure returned by an application service matches exactly one of the
// sentinel kinds below via errors.Is.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrConflict        = errors.New("conflict")
	ErrInternal        = errors.New("internal error")
)

// Error pairs a sentinel kind with a message that is safe to show to clients.
// Err, when set, is the underlying cause and is never exposed in responses.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func New(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind error, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func InvalidInput(message string) *Error { return New(ErrInvalidInput, message) }
func NotFound(message string) *Error     { return New(ErrNotFound, message) }
func Forbidden(message string) *Error    { return New(ErrForbidden, message) }
func Unauthenticated(message string) *Error {
	return New(ErrUnauthenticated, message)
}
func Conflict(message string) *Error { return New(ErrConflict, message) }
func Internal(message string, err error) *Error {
	return Wrap(ErrInternal, message, err)
}

// Kind reports which sentinel err belongs to. Errors outside the taxonomy are
// reported as ErrInternal.
func Kind(err error) error {
	for _, k := range []error{ErrInvalidInput, ErrNotFound, ErrForbidden, ErrUnauthenticated, ErrConflict, ErrInternal} {
		if errors.Is(err, k) {
			return k
		}
	}
	return ErrInternal
}

// Message returns the client-facing message carried by err, or def when err
// has none.
func Message(err error, def string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return def
}
