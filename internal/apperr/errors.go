// Package apperr holds the error taxonomy shared by services and the HTTP layer.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindAuth
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindAuth:
		return "auth"
	case KindUpstream:
		return "upstream"
	default:
		return "internal"
	}
}

// Error carries a user-readable message plus the kind that selects the HTTP status.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string) *Error { return &Error{Kind: kind, Message: msg} }

func Wrap(kind Kind, err error, msg string) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Upstream(err error, msg string) *Error {
	return &Error{Kind: KindUpstream, Message: msg, Err: err}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "Internal server error", Err: err}
}

// KindOf reports the kind of the first *Error in err's chain, KindInternal otherwise.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// Session/token manager failures.
var (
	ErrInvalidToken       = New(KindAuth, "Invalid or expired token")
	ErrCodeMismatch       = New(KindValidation, "Invalid activation code")
	ErrDuplicateEmail     = New(KindValidation, "Email already exist")
	ErrInvalidCredentials = New(KindAuth, "Invalid email or password")
	ErrSessionNotFound    = New(KindAuth, "Please login to access this resource")
	ErrForbidden          = New(KindAuth, "You are not allowed to access this resource")
	ErrOldPassword        = New(KindValidation, "Invalid old password")
	ErrProviderMismatch   = New(KindValidation, "Account is registered with a different sign in method")
)

// Generic persistence failures.
var (
	ErrNotFound   = New(KindNotFound, "Resource not found")
	ErrInvalidID  = New(KindValidation, "Resource not found. Invalid id")
	ErrDuplicated = New(KindValidation, "Duplicate value entered")
)
