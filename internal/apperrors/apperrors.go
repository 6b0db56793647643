// Package apperrors defines the error taxonomy shared by the store and the
// HTTP layer. Every failure raised by the core carries one of three kinds so
// call sites can branch on the kind instead of matching message strings.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error raised by the core.
type Kind int

const (
	// KindValidation covers field syntax failures and id uniqueness violations.
	KindValidation Kind = iota + 1
	// KindNotFound covers operations referencing an id with no matching record.
	KindNotFound
	// KindFileOperation covers read/write failures of the backing file.
	KindFileOperation
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not found"
	case KindFileOperation:
		return "file operation"
	}
	return "unknown"
}

// Error is a kind-tagged error with a human-readable message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Validation returns a KindValidation error. The message may span multiple
// lines when several fields failed at once.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// Validationf is Validation with fmt-style formatting.
func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound returns a KindNotFound error.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// FileOperationf returns a KindFileOperation error.
func FileOperationf(format string, args ...any) *Error {
	return &Error{Kind: KindFileOperation, Message: fmt.Sprintf(format, args...)}
}

// KindOf reports the kind of err, unwrapping as needed, or 0 when no *Error
// is in the chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
