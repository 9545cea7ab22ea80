// Copyright (c) 2026 Plume. All rights reserved.

/*
Package apperr defines the centralized error handling framework for Plume.

It provides a rich error type that bridges the gap between low-level domain/storage
errors and high-level HTTP responses.

Architecture:

  - AppError: A struct containing a machine-readable Code and a user-friendly message.
  - Taxonomy: The Code values are a stable, machine-readable contract reproduced
    verbatim across releases (including the historical RESSOURCE spelling).
  - Mapping: Explicit mapping from AppError to standard HTTP status codes.

Every error that leaves the service layer should be wrapped as an [AppError] to ensure
consistent API responses.
*/
package apperr

import (
	"errors"
	"net/http"
)

// # Error Code Taxonomy

// Stable machine-readable error codes. Clients match on these tokens, so they
// must never be renamed.
const (
	CodeBadRequest         = "BAD_REQUEST"
	CodeInvalidQueryParam  = "INVALID_QUERY_PARAM"
	CodeMissingQueryParam  = "MISSING_QUERY_PARAM"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "RESSOURCE_NOT_FOUND"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeStateConflict      = "STATE_CONFLICT"
	CodeDuplicate          = "DUPLICATE_RESSOURCE"
	CodeInternal           = "INTERNAL_SERVER_ERROR"
)

// AppError is the canonical error type for the Plume API.
//
// It carries an HTTP status code, a machine-readable code, a client-safe
// message, and an optional slice of field-level validation errors.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// to avoid leaking internal implementation details (e.g., SQL queries).
type AppError struct {
	// Code is a machine-readable error identifier from the taxonomy above.
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"message"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_FAILED responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Client Errors (4xx)

// BadRequest creates a 400 [AppError] for an unparseable request body.
func BadRequest(msg string) *AppError {
	return &AppError{
		Code:       CodeBadRequest,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
	}
}

// InvalidQueryParam creates a 400 [AppError] for a missing or malformed
// required field or query argument.
func InvalidQueryParam(msg string) *AppError {
	return &AppError{
		Code:       CodeInvalidQueryParam,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
	}
}

// MissingQueryParam creates a 400 [AppError] for an absent required query argument.
func MissingQueryParam(msg string) *AppError {
	return &AppError{
		Code:       CodeMissingQueryParam,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
	}
}

// ValidationFailed creates a 400 [AppError] with optional per-field details.
func ValidationFailed(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       CodeValidationFailed,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// Unauthorized creates a 401 [AppError] for a missing or unusable credential.
func Unauthorized(msg string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// InvalidCredentials creates a 401 [AppError] for a failed password check.
func InvalidCredentials(msg string) *AppError {
	return &AppError{
		Code:       CodeInvalidCredentials,
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Forbidden creates a 403 [AppError] for an authenticated but insufficiently
// privileged actor.
func Forbidden(msg string) *AppError {
	return &AppError{
		Code:       CodeForbidden,
		Message:    msg,
		HTTPStatus: http.StatusForbidden,
	}
}

// NotFound creates a 404 [AppError] for a dereferenced resource id that does
// not exist.
func NotFound(msg string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    msg,
		HTTPStatus: http.StatusNotFound,
	}
}

// UserNotFound creates a 404 [AppError] specific to user lookups.
//
// The dedicated code exists because clients historically distinguish a missing
// user from any other missing resource.
func UserNotFound(msg string) *AppError {
	return &AppError{
		Code:       CodeUserNotFound,
		Message:    msg,
		HTTPStatus: http.StatusNotFound,
	}
}

// StateConflict creates a 409 [AppError] for a business-rule conflict.
func StateConflict(msg string) *AppError {
	return &AppError{
		Code:       CodeStateConflict,
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// Duplicate creates a 409 [AppError] for a uniqueness-constraint violation.
func Duplicate(msg string) *AppError {
	return &AppError{
		Code:       CodeDuplicate,
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsNotFound reports whether err carries one of the not-found codes.
func IsNotFound(err error) bool {
	ae := As(err)
	return ae != nil && (ae.Code == CodeNotFound || ae.Code == CodeUserNotFound)
}

// IsConflict reports whether err carries one of the conflict codes.
func IsConflict(err error) bool {
	ae := As(err)
	return ae != nil && (ae.Code == CodeStateConflict || ae.Code == CodeDuplicate)
}
