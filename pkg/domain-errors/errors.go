// Package dErrors defines coded domain errors shared across services and
// transport. Handlers translate codes to HTTP statuses in one place so
// services never import net/http.
package dErrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error for transport mapping and logging.
type Code string

const (
	CodeValidation   Code = "validation_error"
	CodeInvalidInput Code = "invalid_input"
	CodeBadRequest   Code = "bad_request"
	CodeUnauthorized Code = "unauthorized"
	CodeNotFound     Code = "not_found"
	CodeUnavailable  Code = "unavailable"
	CodeInternal     Code = "internal_error"
)

// DomainError carries a code plus a human-readable description.
type DomainError struct {
	Code        Code
	Description string
	wrapped     error
}

func (e *DomainError) Error() string {
	if e.Description == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

func (e *DomainError) Unwrap() error {
	return e.wrapped
}

// New builds a DomainError with the given code and description.
func New(code Code, description string) *DomainError {
	return &DomainError{Code: code, Description: description}
}

// Wrap builds a DomainError around an underlying cause.
func Wrap(code Code, description string, err error) *DomainError {
	return &DomainError{Code: code, Description: description, wrapped: err}
}

// CodeOf extracts the domain error code, defaulting to CodeInternal for
// plain errors so unexpected failures never leak details to clients.
func CodeOf(err error) Code {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a domain error code to an HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeValidation, CodeInvalidInput, CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Code == code
}
