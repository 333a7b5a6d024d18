package apierr

import (
	"fmt"
	"net/http"

	domainagg "github.com/yungbote/places-backend/internal/domain/aggregates"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatusCode exposes the mapped status so httpx retry classification
// can treat carried api errors like upstream responses.
func (e *Error) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.Status
}

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// Message is the short text surfaced to the caller. Server-side failure
// codes get a generic message so internal detail never leaks.
func (e *Error) Message() string {
	if e == nil {
		return "an unknown error occurred"
	}
	if e.Status >= http.StatusInternalServerError {
		return "an unknown error occurred"
	}
	if msg := domainagg.MessageOf(e.Err); msg != "" {
		return msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "an unknown error occurred"
}

// FromError maps a domain error code to its fixed HTTP classification.
// Each code maps exactly once; anything unclassified falls back to 500.
func FromError(err error) *Error {
	code, ok := domainagg.CodeOf(err)
	if !ok {
		return New(http.StatusInternalServerError, string(domainagg.CodeInternal), err)
	}
	switch code {
	case domainagg.CodeValidation, domainagg.CodeGeocode:
		return New(http.StatusUnprocessableEntity, string(code), err)
	case domainagg.CodeUnauthorized:
		return New(http.StatusUnauthorized, string(code), err)
	case domainagg.CodeForbidden:
		return New(http.StatusForbidden, string(code), err)
	case domainagg.CodeNotFound:
		return New(http.StatusNotFound, string(code), err)
	case domainagg.CodeAdmission:
		return New(http.StatusBadRequest, string(code), err)
	case domainagg.CodeConflict:
		return New(http.StatusConflict, string(code), err)
	default:
		return New(http.StatusInternalServerError, string(code), err)
	}
}
