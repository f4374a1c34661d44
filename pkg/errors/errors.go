// Package errors provides structured error types for the intergeo importer.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the importer, CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - UNSUPPORTED_*: Document constructs the importer skips with a diagnostic
//   - UNRESOLVED_* / MALFORMED_*: Document integrity violations that abort an import
//   - INVALID_* / NOT_FOUND: Input validation failures outside the document
//   - INTERNAL_*: Unexpected internal or host engine errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnresolvedReference, "unknown identifier %q", id)
//	if errors.Is(err, errors.ErrCodeUnresolvedReference) {
//	    // Abort the import
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInternal, origErr, "create %s", kind)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Recoverable document errors: the construct is dropped and reported.
	ErrCodeUnsupportedElement     Code = "UNSUPPORTED_ELEMENT"
	ErrCodeUnsupportedCoordinates Code = "UNSUPPORTED_COORDINATES"
	ErrCodeUnsupportedConstraint  Code = "UNSUPPORTED_CONSTRAINT"

	// Fatal document errors: the import stops.
	ErrCodeUnresolvedReference Code = "UNRESOLVED_REFERENCE"
	ErrCodeMalformedDocument   Code = "MALFORMED_DOCUMENT"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Recoverable reports whether errors with this code are handled locally by
// dropping the offending construct.
func (c Code) Recoverable() bool {
	switch c {
	case ErrCodeUnsupportedElement, ErrCodeUnsupportedCoordinates, ErrCodeUnsupportedConstraint:
		return true
	}
	return false
}

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Subject string // Offending document identifier or tag (optional)
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

// About attaches the offending identifier or tag to the error and returns it.
func (e *Error) About(subject string) *Error {
	e.Subject = subject
	return e
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

// GetSubject extracts the offending identifier from an error, if available.
func GetSubject(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Subject
	}
	return ""
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
