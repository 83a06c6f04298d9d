package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/martinsumner/careerpilot/internal/db"
	"github.com/martinsumner/careerpilot/internal/ingestion"
	"github.com/martinsumner/careerpilot/internal/profile"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "email already exists",
			err:  &ErrEmailAlreadyExists{Email: "dana@example.com"},
			want: http.StatusConflict,
		},
		{
			name: "duplicate skill",
			err:  &profile.ErrDuplicateSkill{Name: "SQL"},
			want: http.StatusConflict,
		},
		{
			name: "invalid credentials",
			err:  &ErrInvalidCredentials{},
			want: http.StatusUnauthorized,
		},
		{
			name: "password mismatch",
			err:  &ErrPasswordMismatch{},
			want: http.StatusUnauthorized,
		},
		{
			name: "user not found",
			err:  &ErrUserNotFound{UserID: uuid.New()},
			want: http.StatusNotFound,
		},
		{
			name: "task not found",
			err:  fmt.Errorf("toggling: %w", db.ErrTaskNotFound),
			want: http.StatusNotFound,
		},
		{
			name: "validation error",
			err:  &ErrValidation{Field: "email", Message: "invalid"},
			want: http.StatusBadRequest,
		},
		{
			name: "unsupported upload format",
			err:  &ingestion.ErrUnsupportedFormat{MIME: "image/png"},
			want: http.StatusUnsupportedMediaType,
		},
		{
			name: "generation failure",
			err:  &ErrGeneration{Op: "roadmap", Cause: errors.New("quota exceeded")},
			want: http.StatusBadGateway,
		},
		{
			name: "wrapped generation failure",
			err:  fmt.Errorf("handler: %w", &ErrGeneration{Op: "roadmap", Cause: errors.New("x")}),
			want: http.StatusBadGateway,
		},
		{
			name: "unknown error",
			err:  errors.New("boom"),
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestErrGenerationUnwrap(t *testing.T) {
	cause := errors.New("quota exceeded")
	err := &ErrGeneration{Op: "gap analysis", Cause: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "gap analysis")
	assert.Contains(t, err.Error(), "quota exceeded")
}
