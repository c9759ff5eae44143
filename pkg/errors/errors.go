// Package errors carries the solver's precondition taxonomy.
//
// Only a record the solver refuses to work on is an error: a missing robot
// selection, a non-positive reach, malformed dimensions, an unreadable file or
// config. A layout that is degraded or fails an acceptance check is still a
// value, with the problem in its status. Every error has a [Code] that the
// HTTP API puts in its error body and the CLI turns into an exit status
// ([ExitCode]):
//
//	INVALID_* / MISSING_*   the caller's input is wrong       400, exit 2
//	FILE_NOT_FOUND          a named input file does not exist 404, exit 2
//	INTERNAL_ERROR          anything else                     500, exit 1
//
// Construct with [New] or [Wrap] and test with [Is]:
//
//	err := errors.New(errors.ErrCodeInvalidReach, "reach_m must be positive, got %v", reach)
//	if errors.Is(err, errors.ErrCodeInvalidReach) { ... }
package errors

import (
	"context"
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidReach      Code = "INVALID_REACH"
	ErrCodeInvalidDimensions Code = "INVALID_DIMENSIONS"
	ErrCodeInvalidConfig     Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeMissingRobot      Code = "MISSING_ROBOT"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsPrecondition reports whether err is an input violation (INVALID_* or
// MISSING_*) rather than an operational failure.
func IsPrecondition(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidReach, ErrCodeInvalidDimensions,
		ErrCodeInvalidConfig, ErrCodeInvalidFormat, ErrCodeMissingRobot:
		return true
	}
	return false
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Process exit statuses returned by [ExitCode].
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitBadInput = 2
	ExitCanceled = 130
)

// ExitCode maps err to a process exit status. Input problems exit 2 so that
// scripts can tell a bad record from a solver or I/O failure.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitCanceled
	case IsPrecondition(err), Is(err, ErrCodeFileNotFound):
		return ExitBadInput
	default:
		return ExitFailure
	}
}
