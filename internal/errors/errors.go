package errors

import "fmt"

// Error codes
const (
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeNetwork    = "NETWORK_ERROR"
	ErrCodeServer     = "SERVER_ERROR"
	ErrCodeDecode     = "DECODE_ERROR"
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "VALIDATION_ERROR")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  404,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  400,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  500,
		Err:     err,
	}
}

// NewNetworkError creates a new NETWORK_ERROR for transport failures
// where no response was received at all.
func NewNetworkError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeNetwork,
		Message: "network failure",
		Status:  0,
		Err:     err,
	}
}

// NewServerError creates a new SERVER_ERROR from a non-2xx response.
func NewServerError(status int, message string) *AppError {
	return &AppError{
		Code:    ErrCodeServer,
		Message: message,
		Status:  status,
	}
}

// NewDecodeError creates a new DECODE_ERROR for a malformed response body.
func NewDecodeError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeDecode,
		Message: "malformed response body",
		Status:  0,
		Err:     err,
	}
}

// CodeOf returns the AppError code of err, or ErrCodeInternal when err
// is not an AppError.
func CodeOf(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return ErrCodeInternal
}
