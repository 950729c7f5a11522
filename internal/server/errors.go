package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/RohanMakvana24/Resume-Pilot/internal/editor"
	"github.com/RohanMakvana24/Resume-Pilot/internal/schemas"
	"github.com/RohanMakvana24/Resume-Pilot/internal/store"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// HTTPStatus returns the appropriate HTTP status code for an error,
// covering auth, editor, and store failure classes.
func HTTPStatus(err error) int {
	var (
		emailExists  *ErrEmailAlreadyExists
		badCreds     *ErrInvalidCredentials
		minEntries   *editor.ErrMinEntries
		saveInFlight *editor.ErrSaveInFlight
		aiInFlight   *editor.ErrRequestInFlight
		noJobTitle   *editor.ErrMissingJobTitle
		outOfRange   *editor.ErrIndexOutOfRange
		unknownField *editor.ErrUnknownField
		validation   *schemas.ValidationError
	)
	switch {
	case errors.As(err, &emailExists):
		return http.StatusConflict
	case errors.As(err, &badCreds):
		return http.StatusUnauthorized
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &saveInFlight), errors.As(err, &aiInFlight):
		return http.StatusConflict
	case errors.As(err, &minEntries),
		errors.As(err, &noJobTitle),
		errors.As(err, &outOfRange),
		errors.As(err, &unknownField),
		errors.As(err, &validation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
