package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martinsumner/careerpilot/internal/types"
)

func TestRegister_InvalidJSON(t *testing.T) {
	s := newTestServer(t, newFakeStore())

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request body")
}

func TestRegister_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		reqBody map[string]string
	}{
		{
			name:    "missing name",
			reqBody: map[string]string{"email": "dana@example.com", "password": "password123"},
		},
		{
			name:    "invalid email",
			reqBody: map[string]string{"name": "Dana", "email": "not-an-email", "password": "password123"},
		},
		{
			name:    "password too short",
			reqBody: map[string]string{"name": "Dana", "email": "dana@example.com", "password": "short"},
		},
	}

	s := newTestServer(t, newFakeStore())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doUnauthed(t, s, http.MethodPost, "/auth/register", tt.reqBody)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "validation error")
		})
	}
}

func TestRegister_Success(t *testing.T) {
	s := newTestServer(t, newFakeStore())

	w := doUnauthed(t, s, http.MethodPost, "/auth/register", map[string]string{
		"name":     "Dana",
		"email":    "dana@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	resp := decodeBody[types.LoginResponse](t, w)
	require.NotNil(t, resp.User)
	assert.Equal(t, "Dana", resp.User.Name)
	assert.NotEmpty(t, resp.Token)

	// The session token must authenticate subsequent requests.
	me := doAuthed(t, s, resp.User.ID, http.MethodGet, "/me", nil)
	assert.Equal(t, http.StatusOK, me.Code)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s := newTestServer(t, newFakeStore())
	body := map[string]string{"name": "Dana", "email": "dana@example.com", "password": "password123"}

	w := doUnauthed(t, s, http.MethodPost, "/auth/register", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doUnauthed(t, s, http.MethodPost, "/auth/register", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin_Success(t *testing.T) {
	s := newTestServer(t, newFakeStore())

	w := doUnauthed(t, s, http.MethodPost, "/auth/register", map[string]string{
		"name": "Dana", "email": "dana@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doUnauthed(t, s, http.MethodPost, "/auth/login", map[string]string{
		"email": "dana@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody[types.LoginResponse](t, w)
	assert.Equal(t, "dana@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.Token)
}

func TestLogin_WrongPassword(t *testing.T) {
	s := newTestServer(t, newFakeStore())

	w := doUnauthed(t, s, http.MethodPost, "/auth/register", map[string]string{
		"name": "Dana", "email": "dana@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doUnauthed(t, s, http.MethodPost, "/auth/login", map[string]string{
		"email": "dana@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdatePassword_EndToEnd(t *testing.T) {
	s := newTestServer(t, newFakeStore())

	w := doUnauthed(t, s, http.MethodPost, "/auth/register", map[string]string{
		"name": "Dana", "email": "dana@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	resp := decodeBody[types.LoginResponse](t, w)

	w = doAuthed(t, s, resp.User.ID, http.MethodPut, "/auth/password", map[string]string{
		"current_password": "password123",
		"new_password":     "newpassword456",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doUnauthed(t, s, http.MethodPost, "/auth/login", map[string]string{
		"email": "dana@example.com", "password": "newpassword456",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdatePassword_WrongCurrent(t *testing.T) {
	s := newTestServer(t, newFakeStore())

	w := doUnauthed(t, s, http.MethodPost, "/auth/register", map[string]string{
		"name": "Dana", "email": "dana@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	resp := decodeBody[types.LoginResponse](t, w)

	w = doAuthed(t, s, resp.User.ID, http.MethodPut, "/auth/password", map[string]string{
		"current_password": "wrong",
		"new_password":     "newpassword456",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
