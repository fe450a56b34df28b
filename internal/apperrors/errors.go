package apperrors

import "errors"

// Error kinds. Every error a service returns to the API layer unwraps to one of these.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("permission denied")
)

// CustomError carries a user-facing message on top of one of the error kinds.
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

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

func NewValidationError(message string) error {
	return NewCustomError(ErrValidation, message)
}

func NewNotFoundError(message string) error {
	return NewCustomError(ErrNotFound, message)
}

func NewConflictError(message string) error {
	return NewCustomError(ErrConflict, message)
}

func NewUnauthorizedError(message string) error {
	return NewCustomError(ErrUnauthorized, message)
}

func NewForbiddenError(message string) error {
	return NewCustomError(ErrForbidden, message)
}

// Is returns whether err matches target or any of errList.
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// Kind returns the error kind err belongs to, or nil for infrastructure errors.
func Kind(err error) error {
	for _, kind := range []error{ErrValidation, ErrNotFound, ErrConflict, ErrUnauthorized, ErrForbidden} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
