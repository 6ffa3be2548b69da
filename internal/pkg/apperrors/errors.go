package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrNoteNotFound     = errors.New("class note not found")
	ErrRevisionNotFound = errors.New("note revision not found")
	ErrScheduleNotFound = errors.New("schedule session not found")

	// Authentication errors
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Lifecycle errors
	ErrStateConflict = errors.New("state conflict")
)

// NewNotFoundError creates a new custom error for a missing resource
func NewNotFoundError(base error, message string) error {
	return &CustomError{
		Err:     base,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewValidationError creates a new custom error for a failed field validation
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewStateConflictError creates a new custom error for an invalid lifecycle transition
func NewStateConflictError(message string) error {
	return &CustomError{
		Err:     ErrStateConflict,
		Message: message,
	}
}

// CustomError pairs a sentinel with a human-readable message. The sentinel
// stays matchable through errors.Is; the message is what reaches the client.
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}
