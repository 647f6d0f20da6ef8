// Package apperr is the error taxonomy shared by every service. Business code
// returns *Error values; the HTTP boundary turns the Kind into a status code
// and the Message into the response detail.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies a failure.
type Kind int

const (
	Internal Kind = iota
	BadRequest
	Unauthorized
	Forbidden
	NotFound
	Conflict
	Unprocessable
	TooManyRequests
)

func (k Kind) String() string {
	switch k {
	case BadRequest:
		return "bad_request"
	case Unauthorized:
		return "unauthorized"
	case Forbidden:
		return "forbidden"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	case Unprocessable:
		return "unprocessable"
	case TooManyRequests:
		return "too_many_requests"
	default:
		return "internal"
	}
}

// Status returns the HTTP status for k.
func (k Kind) Status() int {
	switch k {
	case BadRequest:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case Unprocessable:
		return http.StatusUnprocessableEntity
	case TooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified, client-safe failure.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New builds an *Error.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func NewBadRequest(msg string) *Error    { return New(BadRequest, msg) }
func NewUnauthorized(msg string) *Error  { return New(Unauthorized, msg) }
func NewForbidden(msg string) *Error     { return New(Forbidden, msg) }
func NewNotFound(msg string) *Error      { return New(NotFound, msg) }
func NewConflict(msg string) *Error      { return New(Conflict, msg) }
func NewUnprocessable(msg string) *Error { return New(Unprocessable, msg) }

// KindOf returns the Kind of the first *Error in err's chain, or Internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

// Message returns the client-facing text for err. Unclassified errors never
// leak their text.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal error"
}
