package domain

import "errors"

var (
	ErrForbidden            = errors.New("access forbidden")
	ErrNotFound             = errors.New("not found")
	ErrDraftNotFound        = errors.New("draft not found")
	ErrInvalidTransition    = errors.New("invalid edit state transition")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrUnauthenticated      = errors.New("not signed in")
)

// UserFacing errors carry a message meant for the visitor.
type UserFacing interface {
	error
	UserMessage() string
}

// ValidationError is a user input problem detected before any backend call.
// Message is shown to the user as is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// UserMessage is the text shown to the user.
func (e *ValidationError) UserMessage() string { return e.Message }

// NewValidationError builds a ValidationError.
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
