package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code
type ErrorCode int

// Common error codes
const (
	ErrValidation ErrorCode = iota + 1000
	ErrNotFound
	ErrConflict
	ErrAuth
	ErrUnauthorized
	ErrInternal
)

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Error constructors
func Validation(message string) *AppError {
	return &AppError{Code: ErrValidation, Message: message}
}

func NotFound(resource string) *AppError {
	return &AppError{Code: ErrNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

func Conflict(message string) *AppError {
	return &AppError{Code: ErrConflict, Message: message}
}

// Auth marks a failed login attempt (unknown email, bad password).
func Auth(message string) *AppError {
	return &AppError{Code: ErrAuth, Message: message}
}

// Unauthorized marks a missing or invalid bearer token.
func Unauthorized(message string) *AppError {
	return &AppError{Code: ErrUnauthorized, Message: message}
}

func Internal(err error) *AppError {
	return &AppError{Code: ErrInternal, Message: "internal server error", Err: err}
}

// CodeOf returns the error code of err, or ErrInternal for
// anything that is not an AppError.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrInternal
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
