package errors

import (
	"errors"
	"fmt"
)

// APIError represents a standardized API error response
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
	Details string    `json:"details,omitempty"`
	Status  int       `json:"-"`

	cause error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field: %s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is/As
func (e *APIError) Unwrap() error {
	return e.cause
}

// NotFound creates a NOT_FOUND error
func NotFound(resource string) *APIError {
	return &APIError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Status:  ErrNotFound.StatusCode(),
	}
}

// UnsupportedPlatform creates an UNSUPPORTED_PLATFORM error for platforms
// outside the fixed YouTube/TikTok/Twitch set, or for adaptation rule
// lookups with no table entry.
func UnsupportedPlatform(platform string) *APIError {
	return &APIError{
		Code:    ErrUnsupportedPlatform,
		Message: fmt.Sprintf("platform %q is not supported", platform),
		Status:  ErrUnsupportedPlatform.StatusCode(),
	}
}

// Storage creates a STORAGE_ERROR wrapping the underlying store failure.
// Storage errors propagate as-is; retries are left to the store client.
func Storage(operation string, cause error) *APIError {
	return &APIError{
		Code:    ErrStorage,
		Message: fmt.Sprintf("storage operation %s failed", operation),
		Status:  ErrStorage.StatusCode(),
		cause:   cause,
	}
}

// ValidationError creates a VALIDATION_ERROR
func ValidationError(field, message string) *APIError {
	return &APIError{
		Code:    ErrValidation,
		Message: message,
		Field:   field,
		Status:  ErrValidation.StatusCode(),
	}
}

// BadRequest creates a BAD_REQUEST error
func BadRequest(message string) *APIError {
	return &APIError{
		Code:    ErrBadRequest,
		Message: message,
		Status:  ErrBadRequest.StatusCode(),
	}
}

// Unauthorized creates an UNAUTHORIZED error
func Unauthorized(message string) *APIError {
	return &APIError{
		Code:    ErrUnauthorized,
		Message: message,
		Status:  ErrUnauthorized.StatusCode(),
	}
}

// InternalError creates an INTERNAL_ERROR
func InternalError(message string) *APIError {
	return &APIError{
		Code:    ErrInternalError,
		Message: message,
		Status:  ErrInternalError.StatusCode(),
	}
}

// ServiceUnavailable creates a SERVICE_UNAVAILABLE error
func ServiceUnavailable(service string) *APIError {
	return &APIError{
		Code:    ErrServiceUnavail,
		Message: fmt.Sprintf("%s is temporarily unavailable", service),
		Status:  ErrServiceUnavail.StatusCode(),
	}
}

// WithDetails adds additional details to an error
func (e *APIError) WithDetails(details string) *APIError {
	e.Details = details
	return e
}

// AsAPIError extracts an *APIError from an error chain, if present.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNotFound reports whether err is a NOT_FOUND APIError.
func IsNotFound(err error) bool {
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.Code == ErrNotFound
	}
	return false
}

// IsUnsupportedPlatform reports whether err is an UNSUPPORTED_PLATFORM APIError.
func IsUnsupportedPlatform(err error) bool {
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.Code == ErrUnsupportedPlatform
	}
	return false
}
