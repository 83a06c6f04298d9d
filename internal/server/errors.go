package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/martinsumner/careerpilot/internal/db"
	"github.com/martinsumner/careerpilot/internal/ingestion"
	"github.com/martinsumner/careerpilot/internal/profile"
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

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrPasswordMismatch indicates current password is incorrect
type ErrPasswordMismatch struct{}

func (e *ErrPasswordMismatch) Error() string {
	return "current password is incorrect"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrGeneration indicates the AI boundary failed. The payload carries a
// hint that reconfiguring the credential may resolve it.
type ErrGeneration struct {
	Op    string
	Cause error
}

func (e *ErrGeneration) Error() string {
	return fmt.Sprintf("generation failed (%s): %v", e.Op, e.Cause)
}

func (e *ErrGeneration) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var emailExists *ErrEmailAlreadyExists
	var invalidCreds *ErrInvalidCredentials
	var passwordMismatch *ErrPasswordMismatch
	var userNotFound *ErrUserNotFound
	var validation *ErrValidation
	var generation *ErrGeneration
	var duplicateSkill *profile.ErrDuplicateSkill
	var unsupported *ingestion.ErrUnsupportedFormat

	switch {
	case errors.As(err, &emailExists), errors.As(err, &duplicateSkill):
		return http.StatusConflict
	case errors.As(err, &invalidCreds), errors.As(err, &passwordMismatch):
		return http.StatusUnauthorized
	case errors.As(err, &userNotFound), errors.Is(err, db.ErrTaskNotFound), errors.Is(err, db.ErrUserNotFound):
		return http.StatusNotFound
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &generation):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
