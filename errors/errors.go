// Package errors provides the structured, categorized errors returned by the
// recoverable tier of this library. Fatal contract violations panic instead.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind categorizes a failure.
type Kind string

const (
	// KindCompute marks errors raised while validating or combining columnar
	// data, e.g. a validity mask whose length does not match its values.
	KindCompute Kind = "compute"
	// KindInvalidArgument marks caller-supplied inputs that fail validation.
	KindInvalidArgument Kind = "invalid_argument"
)

// Error carries the failure category, the operation that raised it and an
// optional cause.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s: %v", e.Kind, e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Kind, e.Op, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new structured error.
func New(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

// Newf creates a new structured error with a formatted message.
func Newf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an existing error with category and operation context.
// Returns nil when err is nil.
func Wrap(err error, kind Kind, op, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Message: message, Cause: err}
}

// IsKind reports whether any error in err's chain carries the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// NewComputeError creates a compute-tier error.
func NewComputeError(op, message string) *Error {
	return New(KindCompute, op, message)
}

// NewInvalidArgumentError creates an invalid-argument error.
func NewInvalidArgumentError(op, message string) *Error {
	return New(KindInvalidArgument, op, message)
}
