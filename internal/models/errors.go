package models

import (
	"errors"
	"fmt"
)

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
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

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
	}
}

func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    "CONFLICT",
		Message: message,
	}
}

// NewStoreError wraps a driver or connectivity failure. Handlers map it to a
// generic internal-failure envelope without leaking detail.
func NewStoreError(err error) *AppError {
	return &AppError{
		Code:    "STORE_ERROR",
		Message: "store operation failed",
		Err:     err,
	}
}

// IsStoreError reports whether err is (or wraps) a store failure.
func IsStoreError(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == "STORE_ERROR"
	}
	return false
}
