package auth

import (
	"context"
	"errors"
	"strings"

	"financeflow_backend/internal/logger"
	"financeflow_backend/internal/metrics"
	"financeflow_backend/internal/models"
	"financeflow_backend/internal/repositories"
	"financeflow_backend/internal/services/dto"
	"financeflow_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Provider drives the per-request Session through its states:
//
//	authenticating -> authenticated-regular | authenticated-admin | unauthenticated
//
// Login methods never return errors. Failures are logged and leave the session unauthenticated.
type Provider struct {
	identities          IdentityProvider
	users               repositories.UserRepository
	sessions            SessionStore
	tokens              *TokenManager
	bootstrapAdminEmail string
}

func NewProvider(
	identities IdentityProvider,
	users repositories.UserRepository,
	sessions SessionStore,
	tokens *TokenManager,
	bootstrapAdminEmail string,
) *Provider {
	return &Provider{
		identities:          identities,
		users:               users,
		sessions:            sessions,
		tokens:              tokens,
		bootstrapAdminEmail: NormalizeEmail(bootstrapAdminEmail),
	}
}

// Resolve builds the session for a request from its bearer token.
func (p *Provider) Resolve(ctx context.Context, db *gorm.DB, token string) *Session {
	s := NewSession()
	if token == "" {
		s.reset()
		return s
	}

	claims, err := p.tokens.Parse(token)
	if err != nil {
		logger.CtxDebug(ctx, "rejected bearer token", "error", err)
		s.reset()
		return s
	}

	record, err := p.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			logger.CtxWithError(ctx, "session store lookup failed", err, "session_id", claims.SessionID)
		}
		s.reset()
		return s
	}
	if record.UserID != claims.UserID {
		logger.CtxWarn(ctx, "session subject mismatch", "session_id", claims.SessionID)
		s.reset()
		return s
	}

	user, err := p.users.FindByID(db, claims.UserID)
	if err != nil {
		if !errors.Is(err, repositories.ErrUserNotFound) {
			logger.CtxWithError(ctx, "user lookup failed while resolving session", err, "user_id", claims.UserID)
		}
		s.reset()
		return s
	}

	s.establish(record.ID, user, record.ExpiresAt, token)
	return s
}

// Login authenticates any user.
func (p *Provider) Login(ctx context.Context, db *gorm.DB, s *Session, email, secret string) bool {
	ok := p.login(ctx, db, s, email, secret, false)
	recordLogin("regular", ok)
	return ok
}

// AdminLogin authenticates and then requires the user record to be an admin.
// A verified non-admin is signed out again.
func (p *Provider) AdminLogin(ctx context.Context, db *gorm.DB, s *Session, email, secret string) bool {
	ok := p.login(ctx, db, s, email, secret, true)
	recordLogin("admin", ok)
	return ok
}

func (p *Provider) login(ctx context.Context, db *gorm.DB, s *Session, email, secret string, requireAdmin bool) bool {
	s.State = StateAuthenticating
	email = NormalizeEmail(email)

	subject, err := p.identities.Verify(db, email, secret)
	if err != nil {
		if errors.Is(err, ErrBadCredentials) {
			logger.CtxWarn(ctx, "login rejected", "email", email)
		} else {
			logger.CtxWithError(ctx, "identity verification failed", err, "email", email)
		}
		s.reset()
		return false
	}

	sessionID := uuid.NewString()
	token, expiresAt, err := p.tokens.Generate(subject, sessionID)
	if err != nil {
		logger.CtxWithError(ctx, "failed to issue token", err, "user_id", subject)
		s.reset()
		return false
	}

	record := &SessionRecord{ID: sessionID, UserID: subject, Email: email, ExpiresAt: expiresAt}
	if err := p.sessions.Save(ctx, record, p.tokens.TTL()); err != nil {
		logger.CtxWithError(ctx, "failed to open session", err, "user_id", subject)
		s.reset()
		return false
	}
	s.ID = sessionID

	user, err := p.ensureUser(ctx, db, subject, email)
	if err != nil {
		logger.CtxWithError(ctx, "failed to load user record", err, "user_id", subject)
		p.Logout(ctx, s)
		return false
	}

	s.establish(sessionID, user, expiresAt, token)

	if requireAdmin && !user.IsAdmin {
		logger.CtxWarn(ctx, "admin login by non-admin user", "user_id", user.ID)
		p.Logout(ctx, s)
		return false
	}

	logger.CtxInfo(ctx, "user logged in", "user_id", user.ID, "state", s.State)
	return true
}

// ensureUser returns the user record for subject, creating it on first login.
func (p *Provider) ensureUser(ctx context.Context, db *gorm.DB, subject, email string) (*models.User, error) {
	user, err := p.users.FindByID(db, subject)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, err
	}

	user = &models.User{
		Email:   email,
		IsAdmin: p.isBootstrapAdmin(email),
	}
	user.ID = subject
	if err := p.users.Create(db, user); err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "user record created on first login", "user_id", subject, "is_admin", user.IsAdmin)
	return user, nil
}

// Logout revokes the stored session. Store failures are logged, not returned.
func (p *Provider) Logout(ctx context.Context, s *Session) {
	if s.ID != "" {
		if err := p.sessions.Delete(ctx, s.ID); err != nil {
			logger.CtxWithError(ctx, "failed to revoke session", err, "session_id", s.ID)
		}
	}
	s.reset()
}

func (p *Provider) GetProfile(db *gorm.DB, s *Session) (*models.User, error) {
	if !s.Authenticated() {
		return nil, apperrors.ErrNoActiveSession
	}

	user, err := p.users.FindByID(db, s.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.DatabaseError(err, "user")
	}
	return user, nil
}

// UpdateProfile writes name, mobile and income of the session user.
// id, email and is_admin are dropped from the request.
func (p *Provider) UpdateProfile(ctx context.Context, db *gorm.DB, s *Session, req *dto.ProfileUpdateRequest) (*models.User, error) {
	if !s.Authenticated() {
		return nil, apperrors.ErrNoActiveSession
	}

	if protected := req.ProtectedFields(); len(protected) > 0 {
		logger.CtxWarn(ctx, "ignored read-only profile fields", "user_id", s.UserID, "fields", strings.Join(protected, ","))
	}

	updates := req.Columns()
	if len(updates) > 0 {
		if err := p.users.UpdateProfile(db, s.UserID, updates); err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return nil, apperrors.ErrUserNotFound
			}
			logger.CtxWithError(ctx, "failed to update profile", err, "user_id", s.UserID)
			return nil, apperrors.DatabaseError(err, "user")
		}
	}

	return p.GetProfile(db, s)
}

// Register creates an identity and its regular user record in one transaction.
func (p *Provider) Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*models.User, error) {
	email := NormalizeEmail(req.Email)
	if err := ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ValidationError(map[string]string{"password": err.Error()})
	}

	var user *models.User
	err := db.Transaction(func(tx *gorm.DB) error {
		subject, err := p.identities.Register(tx, email, req.Password)
		if err != nil {
			return err
		}

		income := req.Income
		user = &models.User{
			Email:   email,
			Name:    strings.TrimSpace(req.Name),
			Income:  &income,
			IsAdmin: p.isBootstrapAdmin(email),
		}
		user.ID = subject
		return p.users.Create(tx, user)
	})
	if err != nil {
		if errors.Is(err, ErrIdentityExists) || errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		if errors.Is(err, ErrPasswordTooLong) {
			return nil, apperrors.ValidationError(map[string]string{"password": err.Error()})
		}
		logger.CtxWithError(ctx, "registration failed", err, "email", email)
		return nil, apperrors.DatabaseError(err, "auth")
	}

	logger.CtxInfo(ctx, "user registered", "user_id", user.ID, "is_admin", user.IsAdmin)
	return user, nil
}

// EnsureAdmin creates the identity and an admin user record for email if no
// user with that email exists. An existing user is left unchanged.
func (p *Provider) EnsureAdmin(db *gorm.DB, email, secret string) (created bool, err error) {
	email = NormalizeEmail(email)

	err = db.Transaction(func(tx *gorm.DB) error {
		existing, err := p.users.FindByEmail(tx, email)
		if err == nil {
			if !existing.IsAdmin {
				logger.Warn("configured first admin exists as a regular user, leaving it unchanged", "email", email)
			}
			return nil
		}
		if !errors.Is(err, repositories.ErrUserNotFound) {
			return err
		}

		subject, err := p.identities.Register(tx, email, secret)
		if errors.Is(err, ErrIdentityExists) {
			subject, err = p.identities.Verify(tx, email, secret)
		}
		if err != nil {
			return err
		}

		admin := &models.User{Email: email, IsAdmin: true}
		admin.ID = subject
		if err := p.users.Create(tx, admin); err != nil {
			return err
		}
		created = true
		return nil
	})
	return created, err
}

func (p *Provider) isBootstrapAdmin(email string) bool {
	return p.bootstrapAdminEmail != "" && email == p.bootstrapAdminEmail
}

func recordLogin(kind string, ok bool) {
	result := "failure"
	if ok {
		result = "success"
	}
	metrics.LoginAttempts.WithLabelValues(kind, result).Inc()
}
