package auth

import (
	"errors"
	"strings"

	"financeflow_backend/internal/models"
	"financeflow_backend/internal/repositories"

	"gorm.io/gorm"
)

var (
	ErrBadCredentials = errors.New("bad credentials")
	ErrIdentityExists = errors.New("identity already exists")
)

// IdentityProvider maps credentials to an opaque subject id.
type IdentityProvider interface {
	Verify(db *gorm.DB, email, secret string) (subject string, err error)
	Register(db *gorm.DB, email, secret string) (subject string, err error)
}

// PasswordIdentityProvider keeps bcrypt hashed secrets in the identities table.
type PasswordIdentityProvider struct {
	identities repositories.IdentityRepository
}

func NewPasswordIdentityProvider(identities repositories.IdentityRepository) *PasswordIdentityProvider {
	return &PasswordIdentityProvider{identities: identities}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (p *PasswordIdentityProvider) Verify(db *gorm.DB, email, secret string) (string, error) {
	identity, err := p.identities.FindByEmail(db, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repositories.ErrIdentityNotFound) {
			return "", ErrBadCredentials
		}
		return "", err
	}
	if !CheckPasswordHash(secret, identity.PasswordHash) {
		return "", ErrBadCredentials
	}
	return identity.ID, nil
}

func (p *PasswordIdentityProvider) Register(db *gorm.DB, email, secret string) (string, error) {
	hash, err := HashPassword(secret)
	if err != nil {
		return "", err
	}

	identity := &models.Identity{
		Email:        NormalizeEmail(email),
		PasswordHash: hash,
	}
	if err := p.identities.Create(db, identity); err != nil {
		if errors.Is(err, repositories.ErrIdentityAlreadyExists) {
			return "", ErrIdentityExists
		}
		return "", err
	}
	return identity.ID, nil
}
