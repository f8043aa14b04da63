// Package errors provides structured error types for ontodag.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the engine, CLI and HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages that only ever mention category names
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Engine errors mirror the ontology operations:
//   - UNKNOWN_CATEGORY: a referenced category does not exist
//   - EDGE_NOT_FOUND: an explicit edge removal targeted a missing edge
//   - CANNOT_REMOVE_ROOT: the synthetic root was passed to Remove
//   - INVALID_SUPERCATEGORY_SET: the requested parents are unusable
//     (root named as a subcategory, or the insertion would form a cycle)
//
// Adapter errors (INVALID_INPUT, INVALID_FORMAT, SESSION_NOT_FOUND, ...)
// are produced by the loader, interchange codecs and the HTTP layer.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownCategory, "unknown category %q", name)
//	if errors.Is(err, errors.ErrCodeUnknownCategory) {
//	    // Handle missing category
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Engine errors
	ErrCodeUnknownCategory         Code = "UNKNOWN_CATEGORY"
	ErrCodeEdgeNotFound            Code = "EDGE_NOT_FOUND"
	ErrCodeCannotRemoveRoot        Code = "CANNOT_REMOVE_ROOT"
	ErrCodeInvalidSupercategorySet Code = "INVALID_SUPERCATEGORY_SET"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Resource not found errors
	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeSessionNotFound Code = "SESSION_NOT_FOUND"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// HTTPStatus maps an error code to the HTTP status the API layer reports.
// Unknown and empty codes map to 500.
func HTTPStatus(code Code) int {
	switch code {
	case ErrCodeUnknownCategory, ErrCodeNotFound, ErrCodeSessionNotFound, ErrCodeFileNotFound:
		return http.StatusNotFound
	case ErrCodeEdgeNotFound:
		return http.StatusNotFound
	case ErrCodeCannotRemoveRoot, ErrCodeInvalidSupercategorySet:
		return http.StatusConflict
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
