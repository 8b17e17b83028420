package dto

import (
	"time"

	"financeflow_backend/internal/models"
)

type RegisterRequest struct {
	Name        string  `json:"name" validate:"required,not-blank,min=2,max=255"`
	Email       string  `json:"email" validate:"required,email"`
	Income      float64 `json:"income" validate:"gt=0"`
	Password    string  `json:"password" validate:"required,min=8,max=72"`
	AcceptTerms bool    `json:"accept_terms" validate:"eq=true"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfileUpdateRequest accepts id, email and is_admin only so that attempts to
// change them can be detected and logged. They are never written.
type ProfileUpdateRequest struct {
	Name    *string  `json:"name,omitempty" validate:"omitempty,not-blank,max=255"`
	Mobile  *string  `json:"mobile,omitempty" validate:"omitempty,is-mobile"`
	Income  *float64 `json:"income,omitempty" validate:"omitempty,gt=0"`
	ID      *string  `json:"id,omitempty"`
	Email   *string  `json:"email,omitempty"`
	IsAdmin *bool    `json:"is_admin,omitempty"`
}

// ProtectedFields lists the read-only fields the caller tried to set.
func (r *ProfileUpdateRequest) ProtectedFields() []string {
	var fields []string
	if r.ID != nil {
		fields = append(fields, "id")
	}
	if r.Email != nil {
		fields = append(fields, "email")
	}
	if r.IsAdmin != nil {
		fields = append(fields, "is_admin")
	}
	return fields
}

// Columns returns the writable column/value pairs.
func (r *ProfileUpdateRequest) Columns() map[string]interface{} {
	updates := make(map[string]interface{})
	if r.Name != nil {
		updates["name"] = *r.Name
	}
	if r.Mobile != nil {
		updates["mobile"] = *r.Mobile
	}
	if r.Income != nil {
		updates["income"] = *r.Income
	}
	return updates
}

type LoginResponse struct {
	Success     bool         `json:"success"`
	State       string       `json:"state"`
	AccessToken string       `json:"access_token,omitempty"`
	ExpiresAt   *time.Time   `json:"expires_at,omitempty"`
	User        *models.User `json:"user,omitempty"`
}

type SessionResponse struct {
	State   string       `json:"state"`
	IsAdmin bool         `json:"is_admin"`
	User    *models.User `json:"user,omitempty"`
}
