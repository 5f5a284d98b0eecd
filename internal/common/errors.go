package common

import (
	"errors"
	"net/http"
)

// AppError represents an error with an attached code and HTTP status.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
	Details    any
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap allows errors.Is/As to inspect the underlying error.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewAppError constructs an AppError.
func NewAppError(code, message string, status int, err error) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status, Err: err}
}

// NotFound builds the 404-class error used for absent resources.
func NotFound(message string) *AppError {
	return &AppError{Code: "NOT_FOUND", Message: message, HTTPStatus: http.StatusNotFound}
}

// InvalidRequest builds the 400-class error used for business-rule violations.
func InvalidRequest(message string) *AppError {
	return &AppError{Code: "INVALID_REQUEST", Message: message, HTTPStatus: http.StatusBadRequest}
}

// InvalidCredentials builds the error returned for login and password failures.
func InvalidCredentials(message string) *AppError {
	return &AppError{Code: "INVALID_CREDENTIALS", Message: message, HTTPStatus: http.StatusBadRequest}
}

// Unsupported builds the error returned for unrecognised enum values.
func Unsupported(message string) *AppError {
	return &AppError{Code: "UNSUPPORTED_TYPE", Message: message, HTTPStatus: http.StatusBadRequest}
}

// Internal wraps a storage or infrastructure failure. Storage failures always
// propagate; callers must never return stale entities as if a write succeeded.
func Internal(err error) *AppError {
	return &AppError{Code: "INTERNAL", Message: "internal server error", HTTPStatus: http.StatusInternalServerError, Err: err}
}

// IsAppError checks whether the error is an AppError.
func IsAppError(err error) bool {
	var target *AppError
	return errors.As(err, &target)
}
