package clinic_errors

import "errors"

// Common errors
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrRateLimited        = errors.New("rate limited")
	ErrServiceUnavailable = errors.New("service unavailable")
)

// DomainError is a business rule violation. Kind is one of the common errors
// above so callers can branch with errors.Is while Message stays readable.
type DomainError struct {
	Kind    error
	Message string
}

func (e *DomainError) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Kind
}

func newDomainError(kind error, msg string) error {
	return &DomainError{Kind: kind, Message: msg}
}

func InvalidInput(msg string) error { return newDomainError(ErrInvalidInput, msg) }

// BadRequest is the same kind as InvalidInput; both map to 400.
func BadRequest(msg string) error { return newDomainError(ErrInvalidInput, msg) }

func NotFound(msg string) error  { return newDomainError(ErrNotFound, msg) }
func Forbidden(msg string) error { return newDomainError(ErrForbidden, msg) }
func Conflict(msg string) error  { return newDomainError(ErrConflict, msg) }

// Message returns the human readable part of err. Non domain errors yield
// fallback so internal details do not leak to clients.
func Message(err error, fallback string) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Error()
	}
	return fallback
}
