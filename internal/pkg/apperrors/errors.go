package apperrors

import "errors"

// Common errors
var (
	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
	ErrPictureRequired  = errors.New("picture is required")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountNotVerified = errors.New("account not verified")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrUnauthorized       = errors.New("authentication required")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email is already registered")

	// Password reset errors
	ErrInvalidResetToken = errors.New("invalid or expired reset token")

	// Email verification errors
	ErrInvalidVerificationToken = errors.New("invalid or expired verification token")
)

// Agent errors
var (
	ErrAgentNotFound = errors.New("agent not found")
)

// Property errors
var (
	ErrPropertyNotFound = errors.New("property not found")
)

// Appointment errors
var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrInvalidTransition   = errors.New("invalid status transition")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with an underlying sentinel
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// NewValidationError creates a validation error carrying a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewNotFoundError wraps a not-found sentinel with a message
func NewNotFoundError(sentinel error, message string) error {
	return &CustomError{
		Err:     sentinel,
		Message: message,
	}
}

// NewForbiddenError creates a permission denied error with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}
