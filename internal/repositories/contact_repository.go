package repositories

import (
	"financeflow_backend/internal/models"

	"gorm.io/gorm"
)

type ContactRepository interface {
	Create(db *gorm.DB, submission *models.ContactSubmission) error
	Count(db *gorm.DB) (int64, error)
}

type ContactRepositoryImpl struct{}

func NewContactRepository() ContactRepository {
	return &ContactRepositoryImpl{}
}

// Create stores a contact form submission.
func (r *ContactRepositoryImpl) Create(db *gorm.DB, submission *models.ContactSubmission) error {
	return db.Create(submission).Error
}

// Count returns the number of stored submissions.
func (r *ContactRepositoryImpl) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.ContactSubmission{}).Count(&count).Error
	return count, err
}
