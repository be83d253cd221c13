// Package contextutils provides the structured error taxonomy and small shared helpers
// used across the speakroots service.
package contextutils

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode is a stable machine-readable error identifier returned by the API
type ErrorCode string

const (
	// ErrorCodeDatabaseConnection indicates the relational store could not be reached
	ErrorCodeDatabaseConnection ErrorCode = "DATABASE_CONNECTION_ERROR"
	// ErrorCodeRecordNotFound indicates a missing record
	ErrorCodeRecordNotFound ErrorCode = "RECORD_NOT_FOUND"

	// ErrorCodeInvalidInput indicates the provided input is invalid
	ErrorCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrorCodeMissingRequired indicates a required field is missing
	ErrorCodeMissingRequired ErrorCode = "MISSING_REQUIRED_FIELD"
	// ErrorCodeInvalidFormat indicates the input format is invalid
	ErrorCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	// ErrorCodeValidationFailed indicates validation of a structure has failed
	ErrorCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// ErrorCodeUnauthorized indicates missing or wrong credentials
	ErrorCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrorCodeForbidden indicates the caller may not access the resource
	ErrorCodeForbidden ErrorCode = "FORBIDDEN"

	// ErrorCodeServiceUnavailable indicates a dependency is temporarily unavailable
	ErrorCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	// ErrorCodeTimeout indicates a request has timed out
	ErrorCodeTimeout ErrorCode = "REQUEST_TIMEOUT"
	// ErrorCodeInternalError indicates an internal server error
	ErrorCodeInternalError ErrorCode = "INTERNAL_SERVER_ERROR"
	// ErrorCodeConflict indicates an operation conflicts with the current state
	ErrorCodeConflict ErrorCode = "CONFLICT"

	// ErrorCodeStoreUnavailable indicates the key-value store rejected an operation
	ErrorCodeStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
	// ErrorCodeCacheCorrupted indicates a cached value could not be decoded or failed validation
	ErrorCodeCacheCorrupted ErrorCode = "CACHE_CORRUPTED"
	// ErrorCodeUnknownEvent indicates an event type the dispatcher does not handle
	ErrorCodeUnknownEvent ErrorCode = "UNKNOWN_EVENT"
	// ErrorCodeInvalidAnswer indicates an answer referencing a question outside the quiz
	ErrorCodeInvalidAnswer ErrorCode = "INVALID_ANSWER"
	// ErrorCodeGeneratorFailed indicates a question template could not produce a candidate
	ErrorCodeGeneratorFailed ErrorCode = "GENERATOR_FAILED"
	// ErrorCodeSessionNotFound indicates a play session id is unknown or finished
	ErrorCodeSessionNotFound ErrorCode = "SESSION_NOT_FOUND"
)

// SeverityLevel represents the severity of an error for logging and monitoring
type SeverityLevel string

const (
	// SeverityDebug indicates debug-level errors for development
	SeverityDebug SeverityLevel = "debug"
	// SeverityInfo indicates informational errors
	SeverityInfo SeverityLevel = "info"
	// SeverityWarn indicates warning-level errors
	SeverityWarn SeverityLevel = "warn"
	// SeverityError indicates error-level issues
	SeverityError SeverityLevel = "error"
	// SeverityFatal indicates fatal errors that require immediate attention
	SeverityFatal SeverityLevel = "fatal"
)

// AppError represents a structured error with code, severity, and context
type AppError struct {
	Code     ErrorCode
	Severity SeverityLevel
	Message  string
	Details  string
	Cause    error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s - %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches any AppError carrying the same code
func (e *AppError) Is(target error) bool {
	if appErr, ok := target.(*AppError); ok {
		return e.Code == appErr.Code
	}
	return false
}

var (
	ErrDatabaseConnection = &AppError{
		Code:     ErrorCodeDatabaseConnection,
		Severity: SeverityError,
		Message:  "Database connection failed",
	}

	ErrRecordNotFound = &AppError{
		Code:     ErrorCodeRecordNotFound,
		Severity: SeverityInfo,
		Message:  "Record not found",
	}

	ErrInvalidInput = &AppError{
		Code:     ErrorCodeInvalidInput,
		Severity: SeverityWarn,
		Message:  "Invalid input",
	}

	ErrMissingRequired = &AppError{
		Code:     ErrorCodeMissingRequired,
		Severity: SeverityWarn,
		Message:  "Missing required field",
	}

	ErrInvalidFormat = &AppError{
		Code:     ErrorCodeInvalidFormat,
		Severity: SeverityWarn,
		Message:  "Invalid format",
	}

	ErrValidationFailed = &AppError{
		Code:     ErrorCodeValidationFailed,
		Severity: SeverityWarn,
		Message:  "Validation failed",
	}

	ErrUnauthorized = &AppError{
		Code:     ErrorCodeUnauthorized,
		Severity: SeverityWarn,
		Message:  "Unauthorized",
	}

	ErrForbidden = &AppError{
		Code:     ErrorCodeForbidden,
		Severity: SeverityWarn,
		Message:  "Forbidden",
	}

	ErrServiceUnavailable = &AppError{
		Code:     ErrorCodeServiceUnavailable,
		Severity: SeverityError,
		Message:  "Service unavailable",
	}

	ErrTimeout = &AppError{
		Code:     ErrorCodeTimeout,
		Severity: SeverityWarn,
		Message:  "Request timeout",
	}

	ErrInternalError = &AppError{
		Code:     ErrorCodeInternalError,
		Severity: SeverityError,
		Message:  "Internal server error",
	}

	ErrConflict = &AppError{
		Code:     ErrorCodeConflict,
		Severity: SeverityWarn,
		Message:  "Operation conflicts with current state",
	}

	// ErrNotFound is returned by key-value stores when a key is absent
	ErrNotFound = &AppError{
		Code:     ErrorCodeRecordNotFound,
		Severity: SeverityDebug,
		Message:  "Key not found",
	}

	ErrStoreUnavailable = &AppError{
		Code:     ErrorCodeStoreUnavailable,
		Severity: SeverityWarn,
		Message:  "Key-value store unavailable",
	}

	ErrCacheCorrupted = &AppError{
		Code:     ErrorCodeCacheCorrupted,
		Severity: SeverityWarn,
		Message:  "Cached value is corrupted",
	}

	ErrUnknownEvent = &AppError{
		Code:     ErrorCodeUnknownEvent,
		Severity: SeverityWarn,
		Message:  "Unknown event type",
	}

	ErrInvalidAnswer = &AppError{
		Code:     ErrorCodeInvalidAnswer,
		Severity: SeverityWarn,
		Message:  "Invalid answer",
	}

	ErrGeneratorFailed = &AppError{
		Code:     ErrorCodeGeneratorFailed,
		Severity: SeverityDebug,
		Message:  "Question generator failed",
	}

	ErrSessionNotFound = &AppError{
		Code:     ErrorCodeSessionNotFound,
		Severity: SeverityInfo,
		Message:  "Play session not found",
	}
)

// NewAppError creates a new AppError with the specified code, severity, message and details
func NewAppError(code ErrorCode, severity SeverityLevel, message, details string) *AppError {
	return &AppError{
		Code:     code,
		Severity: severity,
		Message:  message,
		Details:  details,
	}
}

// NewAppErrorWithCause creates a new AppError with an underlying cause
func NewAppErrorWithCause(code ErrorCode, severity SeverityLevel, message, details string, cause error) *AppError {
	return &AppError{
		Code:     code,
		Severity: severity,
		Message:  message,
		Details:  details,
		Cause:    cause,
	}
}

// WrapError wraps an error with additional context, preserving the code of an AppError
func WrapError(err error, context string) error {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return &AppError{
			Code:     appErr.Code,
			Severity: appErr.Severity,
			Message:  context,
			Details:  err.Error(),
			Cause:    err,
		}
	}

	return &AppError{
		Code:     ErrorCodeInternalError,
		Severity: SeverityError,
		Message:  context,
		Details:  err.Error(),
		Cause:    err,
	}
}

// WrapErrorf wraps an error with formatted context. A %w verb in format is honoured so
// the formatted chain stays inspectable with errors.Is.
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}

	var message string
	var cause error = err
	if strings.Contains(format, "%w") {
		wrapped := fmt.Errorf(format, args...)
		message = wrapped.Error()
		cause = wrapped
	} else {
		message = fmt.Sprintf(format, args...)
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return &AppError{
			Code:     appErr.Code,
			Severity: appErr.Severity,
			Message:  message,
			Details:  appErr.Error(),
			Cause:    cause,
		}
	}

	return &AppError{
		Code:     ErrorCodeInternalError,
		Severity: SeverityError,
		Message:  message,
		Details:  err.Error(),
		Cause:    cause,
	}
}

// ErrorWithContextf creates a new internal error with formatted context
func ErrorWithContextf(format string, args ...interface{}) error {
	return &AppError{
		Code:     ErrorCodeInternalError,
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, args...),
	}
}

// InvalidInputf creates an ErrInvalidInput-coded error with formatted details
func InvalidInputf(format string, args ...interface{}) error {
	return &AppError{
		Code:     ErrorCodeInvalidInput,
		Severity: SeverityWarn,
		Message:  ErrInvalidInput.Message,
		Details:  fmt.Sprintf(format, args...),
	}
}

// IsError checks if an error chain contains an AppError with the target's code
func IsError(err error, target *AppError) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == target.Code
	}
	return false
}

// GetErrorCode returns the error code from an AppError, or INTERNAL_SERVER_ERROR
func GetErrorCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrorCodeInternalError
}

// GetErrorSeverity returns the severity level from an AppError, or error
func GetErrorSeverity(err error) SeverityLevel {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Severity
	}
	return SeverityError
}

// IsRetryable determines if an error is likely transient
func IsRetryable(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case ErrorCodeTimeout, ErrorCodeServiceUnavailable, ErrorCodeDatabaseConnection, ErrorCodeStoreUnavailable:
			return appErr.Severity != SeverityFatal
		}
	}
	return false
}

// ToJSON converts an AppError to a JSON-serializable structure for API responses
func (e *AppError) ToJSON() map[string]interface{} {
	result := map[string]interface{}{
		"code":      string(e.Code),
		"message":   e.Message,
		"severity":  string(e.Severity),
		"error":     e.Message,
		"retryable": IsRetryable(e),
	}

	if e.Details != "" {
		result["details"] = e.Details
	}

	if e.Cause != nil {
		switch e.Severity {
		case SeverityError, SeverityFatal:
			result["cause"] = e.Cause.Error()
		}
	}

	return result
}
