package repositories

import (
	"errors"
	"time"

	"financeflow_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUserAlreadyExists     = errors.New("user already exists")
	ErrIdentityNotFound      = errors.New("identity not found")
	ErrIdentityAlreadyExists = errors.New("identity already exists")
)

// UserRepository stores the application user records.
type UserRepository interface {
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	Create(db *gorm.DB, user *models.User) error
	UpdateProfile(db *gorm.DB, id string, updates map[string]interface{}) error
}

type UserRepositoryImpl struct{}

// NewUserRepository returns the gorm backed UserRepository.
func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

// FindByID returns the user or ErrUserNotFound.
func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByEmail looks up a user by normalized email. It returns ErrUserNotFound when absent.
func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Create inserts user. A taken email yields ErrUserAlreadyExists, including when a
// concurrent insert wins the unique index.
func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrUserAlreadyExists
	}
	if err := db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

// UpdateProfile writes the given columns. Callers decide which columns are writable.
func (r *UserRepositoryImpl) UpdateProfile(db *gorm.DB, id string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result := db.Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// IdentityRepository stores the credential records of the password identity provider.
type IdentityRepository interface {
	FindByEmail(db *gorm.DB, email string) (*models.Identity, error)
	Create(db *gorm.DB, identity *models.Identity) error
}

type IdentityRepositoryImpl struct{}

// NewIdentityRepository returns the gorm backed IdentityRepository.
func NewIdentityRepository() IdentityRepository {
	return &IdentityRepositoryImpl{}
}

// FindByEmail returns the identity or ErrIdentityNotFound.
func (r *IdentityRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.Identity, error) {
	var identity models.Identity
	err := db.First(&identity, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIdentityNotFound
		}
		return nil, err
	}
	return &identity, nil
}

// Create inserts identity. A taken email yields ErrIdentityAlreadyExists.
func (r *IdentityRepositoryImpl) Create(db *gorm.DB, identity *models.Identity) error {
	var count int64
	if err := db.Model(&models.Identity{}).Where("email = ?", identity.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrIdentityAlreadyExists
	}
	if err := db.Create(identity).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrIdentityAlreadyExists
		}
		return err
	}
	return nil
}
