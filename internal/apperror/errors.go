// Package apperror provides domain error types for the activity log service.
// Each error carries an HTTP status code and a message that is safe to show
// to API clients. The Echo error handler maps them to responses.
//
// Raw database or Redis errors never reach clients: services wrap them with
// NewInternal, which keeps the cause for logging only.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the base error type for all domain errors.
type AppError struct {
	// Code is the HTTP status code (e.g., 404, 400, 500).
	Code int `json:"-"`

	// Type is a machine-readable error classifier (e.g., "not_found").
	Type string `json:"type"`

	// Message is a human-readable description safe for the client.
	Message string `json:"message"`

	// Internal holds the underlying error for logging. Never exposed to client.
	Internal error `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *AppError) Unwrap() error {
	return e.Internal
}

func newError(code int, typ, message string) *AppError {
	return &AppError{Code: code, Type: typ, Message: message}
}

// NewNotFound creates a 404 Not Found error.
func NewNotFound(message string) *AppError {
	return newError(http.StatusNotFound, "not_found", message)
}

// NewBadRequest creates a 400 Bad Request error.
func NewBadRequest(message string) *AppError {
	return newError(http.StatusBadRequest, "bad_request", message)
}

// NewUnauthorized creates a 401 Unauthorized error.
func NewUnauthorized(message string) *AppError {
	return newError(http.StatusUnauthorized, "unauthorized", message)
}

// NewValidation creates a 422 Unprocessable Entity error for validation failures.
func NewValidation(message string) *AppError {
	return newError(http.StatusUnprocessableEntity, "validation_error", message)
}

// NewTooManyRequests creates a 429 error for rate-limited clients.
func NewTooManyRequests(message string) *AppError {
	return newError(http.StatusTooManyRequests, "rate_limited", message)
}

// NewInternal creates a 500 Internal Server Error. The real error is stored
// in Internal for logging but the client only sees a generic message.
func NewInternal(err error) *AppError {
	return &AppError{
		Code:     http.StatusInternalServerError,
		Type:     "internal_error",
		Message:  "An unexpected error occurred. Please try again.",
		Internal: err,
	}
}

// SafeMessage returns the client-safe message of err. Non-AppErrors get a
// generic message so table names or query text never leak.
func SafeMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "an unexpected error occurred"
}

// SafeCode returns the HTTP status code of err, or 500 for non-AppErrors.
func SafeCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

// IsNotFound reports whether err is (or wraps) a 404 AppError.
func IsNotFound(err error) bool {
	return SafeCode(err) == http.StatusNotFound
}
