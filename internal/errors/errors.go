// Package errors provides the closed set of simulation error kinds.
package errors

import (
	stderrors "errors"
	"net/http"
)

// Code is a machine-readable error code.
type Code string

const (
	// CodeNotFound means a material data file does not exist.
	CodeNotFound Code = "NOT_FOUND"
	// CodeMalformedData means a data file exists but is not a valid table.
	CodeMalformedData Code = "MALFORMED_DATA"
	// CodeUnknownMaterial means the material has no density entry.
	CodeUnknownMaterial Code = "UNKNOWN_MATERIAL"
	// CodeInvalidParameter covers non-positive temperature, non-finite
	// intensity, non-positive CSDA range and bad material identifiers.
	CodeInvalidParameter Code = "INVALID_PARAMETER"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnknownMaterial, CodeInvalidParameter:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Error is the domain error type.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Sentinels for errors.Is comparisons by code.
var (
	ErrNotFound         = New(CodeNotFound, "not found")
	ErrMalformedData    = New(CodeMalformedData, "malformed data")
	ErrUnknownMaterial  = New(CodeUnknownMaterial, "unknown material")
	ErrInvalidParameter = New(CodeInvalidParameter, "invalid parameter")
)

// CodeOf returns the code of the first *Error in err's chain, or "" if none.
func CodeOf(err error) Code {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ""
}
