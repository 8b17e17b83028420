package repositories

import (
	"errors"
	"time"

	"financeflow_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrApplicationDecided  = errors.New("application already decided")
)

// ApplicationRepository stores plan applications.
type ApplicationRepository interface {
	Create(db *gorm.DB, app *models.Application) error
	FindAll(db *gorm.DB) ([]models.Application, error)
	FindByUser(db *gorm.DB, userID string) ([]models.Application, error)
	FindByID(db *gorm.DB, id string) (*models.Application, error)

	// UpdateStatus writes status and updated_at. With onlyPending the write is
	// conditional on the current status being PENDING.
	UpdateStatus(db *gorm.DB, id string, status models.ApplicationStatus, onlyPending bool) error

	Count(db *gorm.DB) (int64, error)
	CountByStatus(db *gorm.DB) (map[models.ApplicationStatus]int64, error)
}

type ApplicationRepositoryImpl struct{}

// NewApplicationRepository returns the gorm backed ApplicationRepository.
func NewApplicationRepository() ApplicationRepository {
	return &ApplicationRepositoryImpl{}
}

// Create inserts app with its plan snapshot.
func (r *ApplicationRepositoryImpl) Create(db *gorm.DB, app *models.Application) error {
	return db.Create(app).Error
}

// FindAll returns every application, newest submission first.
func (r *ApplicationRepositoryImpl) FindAll(db *gorm.DB) ([]models.Application, error) {
	var apps []models.Application
	err := db.Order("submitted_at DESC").Find(&apps).Error
	return apps, err
}

// FindByUser returns the applications submitted by userID, newest first.
func (r *ApplicationRepositoryImpl) FindByUser(db *gorm.DB, userID string) ([]models.Application, error) {
	var apps []models.Application
	err := db.Where("user_id = ?", userID).Order("submitted_at DESC").Find(&apps).Error
	return apps, err
}

// FindByID returns the application or ErrApplicationNotFound.
func (r *ApplicationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Application, error) {
	var app models.Application
	err := db.First(&app, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

// UpdateStatus sets the status of application id. With onlyPending the write is
// conditional on the current status being PENDING.
func (r *ApplicationRepositoryImpl) UpdateStatus(db *gorm.DB, id string, status models.ApplicationStatus, onlyPending bool) error {
	query := db.Model(&models.Application{}).Where("id = ?", id)
	if onlyPending {
		query = query.Where("status = ?", models.ApplicationStatusPending)
	}

	result := query.Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// Nothing written: either the id is unknown or the status guard rejected it.
	var count int64
	if err := db.Model(&models.Application{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrApplicationNotFound
	}
	return ErrApplicationDecided
}

// Count returns the number of stored applications.
func (r *ApplicationRepositoryImpl) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Application{}).Count(&count).Error
	return count, err
}

// CountByStatus returns the number of applications for each known status, zero included.
func (r *ApplicationRepositoryImpl) CountByStatus(db *gorm.DB) (map[models.ApplicationStatus]int64, error) {
	var rows []struct {
		Status models.ApplicationStatus
		Count  int64
	}
	err := db.Model(&models.Application{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := map[models.ApplicationStatus]int64{
		models.ApplicationStatusPending:  0,
		models.ApplicationStatusApproved: 0,
		models.ApplicationStatusRejected: 0,
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
