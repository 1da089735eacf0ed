// Package apperrors defines the domain error taxonomy shared by the
// stores, services and the HTTP boundary translator.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindNotFound Kind = iota
	KindAlreadyExists
	KindForbidden
	KindUnauthorized
	KindBadCredentials
	KindNotCreated
	KindFileTooLarge
	KindValidation
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status maps the error kind to its fixed HTTP status.
func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthorized, KindBadCredentials:
		return http.StatusUnauthorized
	case KindFileTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusBadRequest
	}
}

// Challenge reports whether responses for this error carry a
// WWW-Authenticate header.
func (e *Error) Challenge() bool {
	return e.Kind == KindUnauthorized || e.Kind == KindBadCredentials
}

func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func AlreadyExists(format string, args ...any) error {
	return &Error{Kind: KindAlreadyExists, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...any) error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(format string, args ...any) error {
	return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

func BadCredentials(format string, args ...any) error {
	return &Error{Kind: KindBadCredentials, Message: fmt.Sprintf(format, args...)}
}

func NotCreated(err error, format string, args ...any) error {
	return &Error{Kind: KindNotCreated, Message: fmt.Sprintf(format, args...), Err: err}
}

func FileTooLarge(format string, args ...any) error {
	return &Error{Kind: KindFileTooLarge, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// As extracts the domain error from an error chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}
