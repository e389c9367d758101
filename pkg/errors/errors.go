package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

// Code is the stable machine-readable error class carried to API clients.
type Code string

const (
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeForbidden    Code = "FORBIDDEN"
	CodeNotFound     Code = "NOT_FOUND"
	CodeConflict     Code = "CONFLICT"
	CodeOutOfStock   Code = "OUT_OF_STOCK"
	CodeEstimation   Code = "ESTIMATION_UNAVAILABLE"
	CodeInternal     Code = "INTERNAL_ERROR"
	CodeDependency   Code = "DEPENDENCY_ERROR"
)

// Metadata describes how a code renders over HTTP: status, whether clients
// may retry, the generic public message, and whether structured details are
// safe to expose.
type Metadata struct {
	HTTPStatus     int
	Retryable      bool
	PublicMessage  string
	DetailsAllowed bool
}

func meta(status int, retryable bool, msg string, detailsAllowed bool) Metadata {
	return Metadata{HTTPStatus: status, Retryable: retryable, PublicMessage: msg, DetailsAllowed: detailsAllowed}
}

var metadataByCode = map[Code]Metadata{
	CodeValidation:   meta(http.StatusBadRequest, false, "validation failed", true),
	CodeUnauthorized: meta(http.StatusUnauthorized, false, "authentication required", false),
	CodeForbidden:    meta(http.StatusForbidden, false, "access denied", false),
	CodeNotFound:     meta(http.StatusNotFound, false, "resource not found", false),
	CodeConflict:     meta(http.StatusConflict, false, "conflict detected", false),
	CodeOutOfStock:   meta(http.StatusConflict, false, "not enough items in stock", true),
	CodeEstimation:   meta(http.StatusServiceUnavailable, true, "delivery estimation unavailable, please retry", false),
	CodeInternal:     meta(http.StatusInternalServerError, true, "internal server error", false),
	CodeDependency:   meta(http.StatusServiceUnavailable, true, "dependency unavailable", true),
}

// MetadataFor returns the rendering metadata for a code, treating unknown
// codes as internal errors.
func MetadataFor(code Code) Metadata {
	if m, ok := metadataByCode[code]; ok {
		return m
	}
	return metadataByCode[CodeInternal]
}

// Error is a coded error. The code drives the HTTP rendering; message and
// details travel with it; cause preserves the underlying chain.
type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

// Wrap attaches a code and message to an underlying error. A nil err
// degrades to New.
func Wrap(code Code, err error, message string) *Error {
	e := New(code, message)
	e.cause = err
	return e
}

// WithDetails attaches structured details, returned to clients only when
// the code's metadata allows it.
func (e *Error) WithDetails(details any) *Error {
	if e != nil {
		e.details = details
	}
	return e
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// As extracts the first coded error in err's chain, or nil.
func As(err error) *Error {
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}
