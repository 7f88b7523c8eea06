package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrPermission   ErrorCode = "PERMISSION"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Package errors
	ErrPackageNotFound ErrorCode = "PACKAGE_NOT_FOUND"
	ErrPackageInvalid  ErrorCode = "PACKAGE_INVALID"

	// Deployment errors
	ErrConflict      ErrorCode = "CONFLICT"
	ErrLinkCreate    ErrorCode = "LINK_CREATE"
	ErrLinkExecute   ErrorCode = "LINK_EXECUTE"
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrFileWrite     ErrorCode = "FILE_WRITE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"

	// Template errors
	ErrMissingVariable ErrorCode = "MISSING_VARIABLE"
	ErrTemplateRead    ErrorCode = "TEMPLATE_READ"

	// External collaborator errors
	ErrExternalUnavailable ErrorCode = "EXTERNAL_UNAVAILABLE"
	ErrSecretNotFound      ErrorCode = "SECRET_NOT_FOUND"
	ErrGitSync             ErrorCode = "GIT_SYNC"

	// Validation errors
	ErrSyntaxInvalid ErrorCode = "SYNTAX_INVALID"
)

// DotkitError represents a structured error with code and details
type DotkitError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DotkitError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DotkitError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *DotkitError) Is(target error) bool {
	var targetErr *DotkitError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DotkitError with the given code and message
func New(code ErrorCode, message string) *DotkitError {
	return &DotkitError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DotkitError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DotkitError {
	return &DotkitError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DotkitError
func Wrap(err error, code ErrorCode, message string) *DotkitError {
	if err == nil {
		return nil
	}
	return &DotkitError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DotkitError {
	if err == nil {
		return nil
	}
	return &DotkitError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DotkitError) WithDetail(key string, value interface{}) *DotkitError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var dotkitErr *DotkitError
	if errors.As(err, &dotkitErr) {
		return dotkitErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DotkitError
func GetErrorCode(err error) ErrorCode {
	var dotkitErr *DotkitError
	if errors.As(err, &dotkitErr) {
		return dotkitErr.Code
	}
	return ErrUnknown
}
