package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfile_RequiresSession(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/api/v1/profile", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	body := decode(t, w)
	assert.Equal(t, "No user logged in", body["error"].(map[string]interface{})["message"])
}

func TestGetProfile(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/api/v1/profile", "regular-token", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user@example.com", decode(t, w)["email"])
}

func TestUpdateProfile(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPatch, "/api/v1/profile", "regular-token", map[string]interface{}{
		"name": "Uma Devi", "is_admin": true,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Uma Devi", decode(t, w)["name"])
	require.NotNil(t, ts.auth.lastUpdate)
	assert.Equal(t, []string{"is_admin"}, ts.auth.lastUpdate.ProtectedFields())
}

func TestUpdateProfile_InvalidMobile(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPatch, "/api/v1/profile", "regular-token", map[string]interface{}{"mobile": "abc"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, ts.auth.lastUpdate)
}

func TestListMyApplications(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/api/v1/profile/applications", "regular-token", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["total"])
}
