package auth

import (
	"time"

	"financeflow_backend/internal/models"
)

// State of a request's authentication.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticating  State = "authenticating"
	StateRegular         State = "authenticated-regular"
	StateAdmin           State = "authenticated-admin"
)

// Session is the authentication state of a single request. It is created per
// request and never shared between requests.
type Session struct {
	ID        string    `json:"-"`
	UserID    string    `json:"user_id,omitempty"`
	Email     string    `json:"email,omitempty"`
	IsAdmin   bool      `json:"is_admin"`
	State     State     `json:"state"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
	Token     string    `json:"-"`
}

// NewSession returns a session that has not been resolved yet.
func NewSession() *Session {
	return &Session{State: StateAuthenticating}
}

func (s *Session) Authenticated() bool {
	return s.State == StateRegular || s.State == StateAdmin
}

func (s *Session) IsAdminSession() bool {
	return s.State == StateAdmin
}

// establish moves the session into an authenticated state for user.
// The admin state always comes from the user record, never from the token.
func (s *Session) establish(id string, user *models.User, expiresAt time.Time, token string) {
	s.ID = id
	s.UserID = user.ID
	s.Email = user.Email
	s.IsAdmin = user.IsAdmin
	s.ExpiresAt = expiresAt
	s.Token = token
	if user.IsAdmin {
		s.State = StateAdmin
	} else {
		s.State = StateRegular
	}
}

func (s *Session) reset() {
	*s = Session{State: StateUnauthenticated}
}
