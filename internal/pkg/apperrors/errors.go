package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Account errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrLoginAlreadyExists = errors.New("login already exists")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrWrongOldPassword   = errors.New("old password does not match")
)

// Profile errors
var (
	ErrStudentNotFound      = errors.New("student not found")
	ErrTeacherNotFound      = errors.New("teacher not found")
	ErrProfileAlreadyExists = errors.New("profile already exists for this account")
)

// Reference data errors
var (
	ErrDepartmentNotFound   = errors.New("department not found")
	ErrGroupNotFound        = errors.New("group not found")
	ErrGroupNotInDepartment = errors.New("group does not belong to the department")
	ErrLevelNotFound        = errors.New("level not found")
	ErrAwardTypeNotFound    = errors.New("award type not found")
	ErrAwardDegreeNotFound  = errors.New("award degree not found")
	ErrEventNotFound        = errors.New("event not found")
)

// Award errors
var (
	ErrDegreeTypeMismatch = errors.New("award degree does not belong to the submitted award type")
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

// NewResourceNotFoundError creates a not-found error with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewConflictError creates an already-exists error with a message
func NewConflictError(message string) error {
	return &CustomError{Err: ErrResourceAlreadyExists, Message: message}
}

// NewBadRequestError creates a bad-request error with a message
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}
