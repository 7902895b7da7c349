// Package domainerrors provides coded errors for domain outcomes.
//
// Services return these so callers and boundary adapters can branch on the
// Code without string matching. Wrap preserves the cause chain for errors.Is
// and errors.As.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain failure.
type Code string

const (
	// CodeUnauthorized: the caller lacks the position the operation requires.
	CodeUnauthorized Code = "UNAUTHORIZED"
	// CodeNotFound: the referenced entity does not exist.
	CodeNotFound Code = "NOT_FOUND"
	// CodeAlreadyExists: a create collided with an existing identity.
	CodeAlreadyExists Code = "ALREADY_EXISTS"
	// CodeInvalidInput: the caller supplied malformed or missing data.
	CodeInvalidInput Code = "INVALID_INPUT"
	// CodeNoOwner: the product exists but has no ownership event yet.
	CodeNoOwner Code = "NO_OWNER"
	// CodeUnavailable: a backing substrate could not serve the operation.
	CodeUnavailable Code = "UNAVAILABLE"
	// CodeInvariantViolation: an internal consistency rule was broken.
	CodeInvariantViolation Code = "INVARIANT_VIOLATION"
	// CodeInternal: an unclassified internal failure.
	CodeInternal Code = "INTERNAL"
)

// Error is a coded domain error with an optional wrapped cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches two domain errors by code, so errors.Is works with a bare
// New(code, ...) target.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// New creates a coded error with no cause.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(cause error, code Code, message string) error {
	return &Error{Code: code, Message: message, cause: cause}
}

// HasCode reports whether any error in err's chain carries code.
func HasCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// CodeOf extracts the code of the outermost coded error in the chain, or
// CodeInternal when the chain has none.
func CodeOf(err error) Code {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return CodeInternal
}
