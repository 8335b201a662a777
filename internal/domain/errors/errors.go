// Package errors defines the application error taxonomy surfaced at the HTTP boundary.
package errors

import (
	"net/http"
	"strings"

	"aiproxy/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.details == "" {
		return e.message
	}

	return e.message + ": " + e.details
}

// Is matches any BaseError carrying the same business code, so values derived
// through WithDetails still satisfy errors.Is against the predefined error.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return t.errorCode == e.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// WithCause attaches cause to the error. The result still matches e through
// errors.Is and errors.As, and also matches anything in cause's tree.
func (e *BaseError) WithCause(cause error) error {
	return errors.WithStack(&causedError{BaseError: e, cause: cause})
}

type causedError struct {
	*BaseError
	cause error
}

func (c *causedError) Error() string {
	return c.BaseError.Error() + ": " + c.cause.Error()
}

func (c *causedError) Unwrap() []error {
	return []error{c.BaseError, c.cause}
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Registration and login
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"One or more fields are invalid.",
		"",
	)

	ErrUserAlreadyExists = NewBaseError(
		http.StatusConflict,
		"EMAIL_ALREADY_REGISTERED",
		"Email already registered.",
		"",
	)

	// ErrInvalidCredentials is returned for an unknown email and for a wrong
	// password alike. It must stay free of details.
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid credentials.",
		"",
	)

	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found.",
		"",
	)

	// Bearer tokens
	ErrMissingToken = NewBaseError(
		http.StatusUnauthorized,
		"MISSING_TOKEN",
		"Authorization header is missing.",
		"",
	)

	ErrInvalidToken = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_TOKEN",
		"Invalid or expired token.",
		"",
	)

	// AI proxy
	ErrAIUnavailable = NewBaseError(
		http.StatusServiceUnavailable,
		"AI_UNAVAILABLE",
		"AI service temporarily unavailable.",
		"",
	)

	ErrUpstreamFailed = NewBaseError(
		http.StatusBadGateway,
		"UPSTREAM_ERROR",
		"The AI provider returned an error.",
		"",
	)

	ErrMalformedUpstreamResponse = NewBaseError(
		http.StatusBadGateway,
		"UPSTREAM_MALFORMED_RESPONSE",
		"The AI provider returned an unexpected response.",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error.",
		"",
	)
)

// FieldViolation describes a single failing input field.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is the field-level form of ErrValidationFailed.
// It lists every failing field, not just the first one.
type ValidationError struct {
	Fields []FieldViolation
}

// NewValidationError creates a validation error from the given violations.
func NewValidationError(fields ...FieldViolation) *ValidationError {
	return &ValidationError{Fields: fields}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return ErrValidationFailed.Message() + " " + e.Details()
}

// Is makes errors.Is(err, ErrValidationFailed) hold for field-level errors.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed //nolint:errorlint // identity check against the sentinel
}

// HTTPCode returns the HTTP status code
func (e *ValidationError) HTTPCode() int {
	return ErrValidationFailed.HTTPCode()
}

// ErrorCode returns the business error code
func (e *ValidationError) ErrorCode() string {
	return ErrValidationFailed.ErrorCode()
}

// Message returns the user-friendly error message
func (e *ValidationError) Message() string {
	return ErrValidationFailed.Message()
}

// Details joins the field messages.
func (e *ValidationError) Details() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}

	return strings.Join(msgs, "; ")
}

// HasField reports whether the named field is among the violations.
func (e *ValidationError) HasField(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}

	return false
}

// ConfigurationError is raised while the process starts. It is never mapped
// to a response: a misconfigured process must not accept traffic.
type ConfigurationError struct {
	Setting string
	Reason  string
}

// NewConfigurationError creates a configuration error for the named setting.
func NewConfigurationError(setting, reason string) *ConfigurationError {
	return &ConfigurationError{Setting: setting, Reason: reason}
}

// Error implements the error interface
func (e *ConfigurationError) Error() string {
	return "invalid configuration " + e.Setting + ": " + e.Reason
}
