// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"net/http"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// E is a status-coded error raised by the service layer so handlers can map
// business failures to the right HTTP status without string matching.
type E struct {
	Status int
	Msg    string
}

func (e *E) Error() string { return e.Msg }

func BadRequest(msg string) *E   { return &E{Status: http.StatusBadRequest, Msg: msg} }
func Unauthorized(msg string) *E { return &E{Status: http.StatusUnauthorized, Msg: msg} }
func Forbidden(msg string) *E    { return &E{Status: http.StatusForbidden, Msg: msg} }
func NotFound(msg string) *E     { return &E{Status: http.StatusNotFound, Msg: msg} }
func Conflict(msg string) *E     { return &E{Status: http.StatusConflict, Msg: msg} }

// StatusOf returns the HTTP status embedded in err, or 500 for unknown errors.
func StatusOf(err error) int {
	var e *E
	if errors.As(err, &e) {
		return e.Status
	}
	return http.StatusInternalServerError
}
