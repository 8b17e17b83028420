package auth

import (
	"testing"

	"financeflow_backend/internal/models"
	"financeflow_backend/internal/repositories"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type fakeIdentities struct {
	secrets  map[string]string // email -> secret
	subjects map[string]string // email -> subject
}

func newFakeIdentities() *fakeIdentities {
	return &fakeIdentities{secrets: map[string]string{}, subjects: map[string]string{}}
}

func (f *fakeIdentities) add(email, secret, subject string) {
	f.secrets[email] = secret
	f.subjects[email] = subject
}

func (f *fakeIdentities) Verify(db *gorm.DB, email, secret string) (string, error) {
	if s, ok := f.secrets[email]; !ok || s != secret {
		return "", ErrBadCredentials
	}
	return f.subjects[email], nil
}

func (f *fakeIdentities) Register(db *gorm.DB, email, secret string) (string, error) {
	if _, ok := f.secrets[email]; ok {
		return "", ErrIdentityExists
	}
	subject := "sub-" + email
	f.add(email, secret, subject)
	return subject, nil
}

type fakeUsers struct {
	byID map[string]*models.User
}

func newFakeUsers(users ...*models.User) *fakeUsers {
	f := &fakeUsers{byID: map[string]*models.User{}}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) FindByID(db *gorm.DB, id string) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUsers) Create(db *gorm.DB, user *models.User) error {
	if _, err := f.FindByEmail(db, user.Email); err == nil {
		return repositories.ErrUserAlreadyExists
	}
	cp := *user
	f.byID[user.ID] = &cp
	return nil
}

func (f *fakeUsers) UpdateProfile(db *gorm.DB, id string, updates map[string]interface{}) error {
	u, ok := f.byID[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	if v, ok := updates["name"]; ok {
		u.Name = v.(string)
	}
	if v, ok := updates["mobile"]; ok {
		u.Mobile = v.(string)
	}
	if v, ok := updates["income"]; ok {
		income := v.(float64)
		u.Income = &income
	}
	if _, ok := updates["is_admin"]; ok {
		panic("is_admin must never be written")
	}
	return nil
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}
