package models

import (
	"errors"
	"fmt"
)

// Error codes carried by AppError.
const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeUsernameTaken       = "USERNAME_TAKEN"
	CodeUserNotFound        = "USER_NOT_FOUND"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeNotFound            = "NOT_FOUND"
	CodeConstraintViolation = "CONSTRAINT_VIOLATION"
	CodeUnauthenticated     = "UNAUTHENTICATED"
	CodeInternal            = "INTERNAL_ERROR"
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

// HasCode reports whether err is (or wraps) an AppError with the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Code == code
}

// UserMessage returns the caller-visible message for err, or "" when err is not an AppError.
func UserMessage(err error) string {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return ""
	}
	return appErr.Message
}

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewUsernameTakenError(username string) *AppError {
	return &AppError{
		Code:    CodeUsernameTaken,
		Message: fmt.Sprintf("Username, %s, is not available. Please try again!", username),
	}
}

func NewUserNotFoundError(username string) *AppError {
	return &AppError{
		Code:    CodeUserNotFound,
		Message: fmt.Sprintf("Username, %s, was not found. Please try again!", username),
	}
}

func NewInvalidCredentialsError(username string) *AppError {
	return &AppError{
		Code:    CodeInvalidCredentials,
		Message: fmt.Sprintf("Incorrect password for %s. Please try again!", username),
	}
}

func NewConstraintViolationError(err error) *AppError {
	return &AppError{
		Code:    CodeConstraintViolation,
		Message: "Unique constraint violated",
		Err:     err,
	}
}

func NewUnauthenticatedError() *AppError {
	return &AppError{
		Code:    CodeUnauthenticated,
		Message: "No one is currently signed in!",
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}
