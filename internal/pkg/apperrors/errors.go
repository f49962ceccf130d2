package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrStudentNotFound = errors.New("student not found")
	ErrAdminNotFound   = errors.New("admin not found")

	// Conflict errors
	ErrEmailAlreadyExists = errors.New("email already registered")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidFile      = errors.New("invalid file")

	// Storage errors
	ErrFileStorage = errors.New("file storage failure")
)

// CustomError carries a user-facing message on top of a sentinel error so the
// HTTP layer can pick a status from the sentinel and still show a descriptive
// reason.
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

// NewCustomError creates a CustomError wrapping a sentinel
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{Err: err, Message: message}
}

// NewValidationError creates a 400-class error with a descriptive reason
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}

// NewInvalidFileError creates a 400-class error for rejected uploads
func NewInvalidFileError(message string) error {
	return &CustomError{Err: ErrInvalidFile, Message: message}
}
