// Package errors defines the typed error taxonomy shared across the
// application. Every failure surfaced to a caller carries a type, a message,
// the wrapped cause, and optional context values such as the source name.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeInvalidAddress ErrorType = "INVALID_ADDRESS"
	ErrTypeSource         ErrorType = "SOURCE"
	ErrTypeStorage        ErrorType = "STORAGE"
	ErrTypeConfig         ErrorType = "CONFIG"
	ErrTypeValidation     ErrorType = "VALIDATION"
	ErrTypeNotFound       ErrorType = "NOT_FOUND"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewInvalidAddressError reports a malformed column letter or ordinal.
// Fatal for the operation that received it, not for the run.
func NewInvalidAddressError(message string) *AppError {
	return NewAppError(ErrTypeInvalidAddress, message, nil)
}

// NewSourceError reports that one source's row stream faulted mid-run.
// The source name travels with the error so reporting can call it out;
// other sources continue.
func NewSourceError(source string, cause error) *AppError {
	return NewAppError(ErrTypeSource, fmt.Sprintf("source %q failed", source), cause).
		WithContext("source", source)
}

// NewPersistenceError reports that the final summary write failed. Fatal
// for the run; partial output must not be treated as valid.
func NewPersistenceError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("%s not found", resource), nil)
}

// IsType reports whether err (or anything it wraps) is an AppError of the
// given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// SourceName extracts the source name attached by NewSourceError, or ""
// when err carries none.
func SourceName(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		if name, ok := appErr.Context["source"].(string); ok {
			return name
		}
	}
	return ""
}
