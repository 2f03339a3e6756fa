// Package apperror defines the error kinds shared by the auth flows and the
// mapping from those kinds to HTTP statuses.
package apperror

import (
	"errors"
	"net/http"
)

// Kinds. Compare with errors.Is.
var (
	ErrValidation         = errors.New("validation failed")
	ErrDuplicateEmail     = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrHashing            = errors.New("error hashing")
	ErrVerification       = errors.New("error comparing password")
	ErrStorage            = errors.New("storage failure")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotFound           = errors.New("not found")
)

// AppError carries a kind, a caller-safe message and the underlying cause.
// Message never contains the cause text.
type AppError struct {
	Kind    error
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func New(kind error, msg string, err error) *AppError {
	return &AppError{Kind: kind, Message: msg, Err: err}
}

func NewDuplicateEmail() *AppError {
	return New(ErrDuplicateEmail, "User with this email already exists", nil)
}

// NewInvalidCredentials returns the same message for every authentication
// failure so callers cannot tell unknown accounts from wrong passwords.
func NewInvalidCredentials() *AppError {
	return New(ErrInvalidCredentials, "Invalid email or password", nil)
}

func NewHashing(err error) *AppError {
	return New(ErrHashing, "Error hashing", err)
}

func NewVerification(err error) *AppError {
	return New(ErrVerification, "Error comparing password", err)
}

func NewStorage(op string, err error) *AppError {
	return New(ErrStorage, op, err)
}

func NewNotFound(resource string) *AppError {
	return New(ErrNotFound, resource+" not found", nil)
}

func NewUnauthorized(msg string, err error) *AppError {
	return New(ErrUnauthorized, msg, err)
}

// Kind returns the kind of err, or nil when err carries none.
func Kind(err error) error {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return nil
}

// PublicMessage is the text that may be returned to a client for err.
// System faults collapse into a generic message.
func PublicMessage(err error) string {
	switch {
	case errors.Is(err, ErrDuplicateEmail), errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrNotFound), errors.Is(err, ErrUnauthorized), errors.Is(err, ErrValidation):
		var ae *AppError
		if errors.As(err, &ae) {
			return ae.Message
		}
		return err.Error()
	default:
		return "Internal server error"
	}
}

func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrDuplicateEmail):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
