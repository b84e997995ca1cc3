// Package app holds the application services and business logic.
package app

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidCredentials indicates that the provided email or password
	// was incorrect. Deliberately uniform: it never distinguishes an
	// unknown account from a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrWrongPassword indicates a password re-confirmation failed.
	ErrWrongPassword = errors.New("incorrect password")
	// ErrUserNotFound indicates the user does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// Conflict errors (duplicate data).
var (
	ErrEmailTaken     = errors.New("this email is already registered")
	ErrUsernameTaken  = errors.New("this username is already in use")
	ErrFavoriteExists = errors.New("this pokemon is already a favorite")
)

// ErrFavoriteNotFound indicates removal of a favorite that is not present.
var ErrFavoriteNotFound = errors.New("this pokemon is not a favorite")

// Bearer-token extraction errors.
var (
	ErrMissingAuthHeader = errors.New("access denied: no token provided")
	ErrInvalidAuthHeader = errors.New("invalid token format, expected 'Bearer <token>'")
)

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates per-field input failures. It maps to a 400
// response carrying the details array.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid input"
	}
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return "invalid input: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) add(field string, err error) {
	if err != nil {
		e.Fields = append(e.Fields, FieldError{Field: field, Message: err.Error()})
	}
}

// errOrNil returns the collected error, or nil if every field passed.
func (e *ValidationError) errOrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// IsConflict reports whether err is one of the duplicate-data errors.
func IsConflict(err error) bool {
	return errors.Is(err, ErrEmailTaken) ||
		errors.Is(err, ErrUsernameTaken) ||
		errors.Is(err, ErrFavoriteExists)
}
