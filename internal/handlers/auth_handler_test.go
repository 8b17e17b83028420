package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "user@example.com", "password": "correct-horse",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "authenticated-regular", body["state"])
	assert.Equal(t, "signed.jwt.token", body["access_token"])
	assert.NotEmpty(t, body["expires_at"])
}

func TestLogin_Failure(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "user@example.com", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "unauthenticated", body["state"])
	assert.NotContains(t, body, "access_token")
}

func TestAdminLogin(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  int
		state string
	}{
		{name: "admin", email: "admin@example.com", want: http.StatusOK, state: "authenticated-admin"},
		{name: "regular user is signed out", email: "user@example.com", want: http.StatusUnauthorized, state: "unauthenticated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			w := ts.do(http.MethodPost, "/api/v1/auth/admin/login", "", map[string]string{
				"email": tt.email, "password": "correct-horse",
			})
			assert.Equal(t, tt.want, w.Code)
			assert.Equal(t, tt.state, decode(t, w)["state"])
		})
	}
}

func TestRegister(t *testing.T) {
	ts := newTestServer(t)
	form := map[string]interface{}{
		"name": "Neha", "email": "neha@example.com", "income": 90000,
		"password": "long-enough", "accept_terms": true,
	}

	w := ts.do(http.MethodPost, "/api/v1/auth/register", "", form)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "neha@example.com", decode(t, w)["email"])

	form["email"] = "user@example.com"
	w = ts.do(http.MethodPost, "/api/v1/auth/register", "", form)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegister_TermsRequired(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"name": "Neha", "email": "neha@example.com", "income": 90000, "password": "long-enough",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_PasswordOverBcryptLimit(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"name": "Neha", "email": "neha@example.com", "income": 90000,
		"password": strings.Repeat("p", 80), "accept_terms": true,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, w))
}

func TestLogout(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/api/v1/auth/logout", "regular-token", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, ts.auth.loggedOut)
	assert.Equal(t, "unauthenticated", decode(t, w)["state"])
}

func TestCurrentSession(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/api/v1/auth/session", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "unauthenticated", decode(t, w)["state"])

	w = ts.do(http.MethodGet, "/api/v1/auth/session", "admin-token", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "authenticated-admin", body["state"])
	assert.Equal(t, true, body["is_admin"])
	assert.NotNil(t, body["user"])
}
