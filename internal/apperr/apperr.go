// Package apperr provides typed errors for the transport layer. Services
// return them and the HTTP handlers map each Kind to a status code.
package apperr

import (
	"errors"
	"fmt"

	"github.com/valyala/fasthttp"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindValidation
	KindConflict
	KindBadRequest
	KindMethodNotAllowed
	KindInternal
)

type Error struct {
	Kind    Kind
	Message string
	Op      string // operation that failed (optional)
	Err     error  // underlying error (optional)
}

func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound:
		return fasthttp.StatusNotFound
	case KindValidation:
		return fasthttp.StatusUnprocessableEntity
	case KindBadRequest:
		return fasthttp.StatusBadRequest
	case KindConflict:
		return fasthttp.StatusConflict
	case KindMethodNotAllowed:
		return fasthttp.StatusMethodNotAllowed
	case KindInternal:
		return fasthttp.StatusInternalServerError
	default:
		return fasthttp.StatusBadRequest
	}
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func (e *Error) WithOp(op string) *Error {
	e.Op = op
	return e
}

func NotFound(message string) *Error { return New(KindNotFound, message) }
func Validation(message string) *Error { return New(KindValidation, message) }
func Conflict(message string) *Error { return New(KindConflict, message) }
func BadRequest(message string) *Error { return New(KindBadRequest, message) }
func Internal(message string) *Error { return New(KindInternal, message) }

func MethodNotAllowed(message string) *Error { return New(KindMethodNotAllowed, message) }

// GetKind extracts the Kind anywhere in err's chain, KindUnknown otherwise.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Status maps any error to an HTTP status; untyped errors are internal.
func Status(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.HTTPStatus()
	}
	return fasthttp.StatusInternalServerError
}
