package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPlans(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/api/v1/plans?category=investment", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.EqualValues(t, 1, body["total"])
	assert.Equal(t, "investment", ts.plans.gotFilter)
}

func TestListPlans_InvalidCategory(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/api/v1/plans?category=crypto", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, w))
}

func TestGetPlan_NotFound(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/api/v1/plans/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, w))
}

func TestApplyForPlan_Anonymous(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/api/v1/plans/plan1/apply", "", map[string]interface{}{
		"name": "Asha", "mobile": "+91 98765 43210", "income": 650000,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Nil(t, ts.apps.gotUserID)
	assert.Equal(t, "PENDING", decode(t, w)["status"])
}

func TestApplyForPlan_LinksSignedInUser(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/api/v1/plans/plan1/apply", "regular-token", map[string]interface{}{
		"name": "Uma", "mobile": "5551234567", "income": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, ts.apps.gotUserID)
	assert.Equal(t, "u1", *ts.apps.gotUserID)
}

func TestApplyForPlan_InvalidBody(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/api/v1/plans/plan1/apply", "", map[string]interface{}{
		"name": "Asha", "mobile": "call me", "income": 0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, w))
	assert.False(t, ts.apps.applied)
}

func TestCreatePlan_Access(t *testing.T) {
	payload := map[string]interface{}{"title": "Gold FD", "category": "FD", "description": "Fixed deposit"}

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{name: "anonymous", want: http.StatusUnauthorized},
		{name: "regular user", token: "regular-token", want: http.StatusForbidden},
		{name: "admin", token: "admin-token", want: http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			w := ts.do(http.MethodPost, "/api/v1/admin/plans", tt.token, payload)
			assert.Equal(t, tt.want, w.Code)
			if tt.want != http.StatusCreated {
				assert.Nil(t, ts.plans.created)
			}
		})
	}
}

func TestCreatePlan_Validation(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/api/v1/admin/plans", "admin-token", map[string]interface{}{
		"title": "  ", "category": "STOCKS",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	details := decode(t, w)["error"].(map[string]interface{})["details"].(map[string]interface{})
	assert.Contains(t, details, "title")
	assert.Contains(t, details, "category")
	assert.Contains(t, details, "description")
}

func TestDeletePlan(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodDelete, "/api/v1/admin/plans/whatever", "admin-token", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
