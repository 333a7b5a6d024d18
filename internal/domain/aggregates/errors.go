package aggregates

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode standardizes failure semantics across the place/user domain.
type ErrorCode string

const (
	CodeValidation   ErrorCode = "validation"
	CodeUnauthorized ErrorCode = "unauthorized"
	CodeForbidden    ErrorCode = "forbidden"
	CodeNotFound     ErrorCode = "not_found"
	CodeGeocode      ErrorCode = "geocode"
	CodeAdmission    ErrorCode = "admission"
	CodeConflict     ErrorCode = "conflict"
	CodeIntegrity    ErrorCode = "integrity"
	CodeRetryable    ErrorCode = "retryable"
	CodeInternal     ErrorCode = "internal"
)

// Error is the canonical error wrapper crossing the aggregate boundary.
// No raw store or decode error leaves a component without being wrapped
// into exactly one code.
type Error struct {
	Code    ErrorCode
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	op := strings.TrimSpace(e.Op)
	msg := strings.TrimSpace(e.Message)
	switch {
	case op != "" && msg != "":
		return fmt.Sprintf("%s: %s (%s)", op, msg, e.Code)
	case op != "":
		return fmt.Sprintf("%s (%s)", op, e.Code)
	case msg != "":
		return fmt.Sprintf("%s (%s)", msg, e.Code)
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// NewError builds a domain error with explicit code + operation.
func NewError(code ErrorCode, op, message string, cause error) error {
	return &Error{
		Code:    code,
		Op:      strings.TrimSpace(op),
		Message: strings.TrimSpace(message),
		Cause:   cause,
	}
}

// Wrap annotates an existing error with domain error semantics.
func Wrap(code ErrorCode, op string, err error) error {
	if err == nil {
		return nil
	}
	return NewError(code, op, err.Error(), err)
}

// IsCode checks whether err (or a wrapped err) carries the given code.
func IsCode(err error, code ErrorCode) bool {
	var domErr *Error
	if !errors.As(err, &domErr) {
		return false
	}
	return domErr.Code == code
}

// CodeOf extracts the domain error code when available.
func CodeOf(err error) (ErrorCode, bool) {
	var domErr *Error
	if !errors.As(err, &domErr) {
		return "", false
	}
	return domErr.Code, true
}

// MessageOf extracts the domain error message when available.
func MessageOf(err error) string {
	var domErr *Error
	if !errors.As(err, &domErr) {
		return ""
	}
	return domErr.Message
}
