// Package apperr classifies application errors into the failure kinds the
// HTTP layer needs to pick a response status: missing rows, bad input,
// upstream dependency failures, persistence failures and timeouts.
package apperr

import (
	"context"
	"errors"
	"fmt"
)

type Kind int

const (
	Unknown Kind = iota
	NotFound
	Validation
	Dependency
	Store
	Transient
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case Validation:
		return "validation"
	case Dependency:
		return "dependency"
	case Store:
		return "store"
	case Transient:
		return "transient"
	}
	return "unknown"
}

// Error is a kind-tagged error. It wraps an optional cause so callers can
// still reach sentinel errors with errors.Is.
type Error struct {
	kind Kind
	msg  string
	err  error
}

func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{kind: kind, msg: msg, err: err}
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

func (e *Error) Kind() Kind { return e.kind }

// KindOf reports the failure kind of err. Context deadline expiry anywhere
// in the chain is reported as Transient even when the error was wrapped
// under another kind.
func KindOf(err error) Kind {
	if err == nil {
		return Unknown
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Transient
	}
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return Unknown
}

func IsNotFound(err error) bool { return KindOf(err) == NotFound }
