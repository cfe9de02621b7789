// Package errors provides structured error types for the matteray CLI and API.
//
// Core packages (array, matrix, codec) return plain sentinel errors. This
// package layers machine-readable codes on top so the CLI and the HTTP server
// can report failures consistently.
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - NOT_FOUND_*: Resource not found
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "unknown operation: %s", op)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Translate a core error
//	if _, err := m.Get(r, c); err != nil {
//	    return errors.FromDomain(err)
//	}
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
	// Input validation errors
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidArgument   Code = "INVALID_ARGUMENT"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeInvalidOperation  Code = "INVALID_OPERATION"
	ErrCodeInvalidPath       Code = "INVALID_PATH"
	ErrCodeInvalidDimensions Code = "INVALID_DIMENSIONS"

	// Shape and content errors reported by the core packages
	ErrCodeIndexOutOfBounds  Code = "INDEX_OUT_OF_BOUNDS"
	ErrCodeDimensionMismatch Code = "DIMENSION_MISMATCH"
	ErrCodeRaggedRows        Code = "RAGGED_ROWS"
	ErrCodeNilElement        Code = "NIL_ELEMENT"
	ErrCodeEmptyOperand      Code = "EMPTY_OPERAND"
	ErrCodeNonFinite         Code = "NON_FINITE_VALUE"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED_OPERATION"
	ErrCodeCanceled    Code = "CANCELED"
	ErrCodeTimeout     Code = "TIMEOUT"
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

// HTTPStatus maps an error code to the status the API responds with.
func HTTPStatus(code Code) int {
	switch code {
	case ErrCodeInvalidInput, ErrCodeInvalidArgument, ErrCodeInvalidFormat,
		ErrCodeInvalidPath, ErrCodeInvalidDimensions, ErrCodeRaggedRows,
		ErrCodeNilElement:
		return http.StatusBadRequest
	case ErrCodeIndexOutOfBounds, ErrCodeDimensionMismatch, ErrCodeEmptyOperand,
		ErrCodeNonFinite:
		return http.StatusUnprocessableEntity
	case ErrCodeInvalidOperation, ErrCodeNotFound, ErrCodeFileNotFound:
		return http.StatusNotFound
	case ErrCodeUnsupported:
		return http.StatusNotImplemented
	case ErrCodeCanceled:
		return 499
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}
