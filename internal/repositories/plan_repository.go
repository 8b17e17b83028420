package repositories

import (
	"errors"
	"time"

	"financeflow_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrPlanNotFound = errors.New("plan not found")
)

// PlanRepository stores the plan catalogue. Methods take the request scoped db.
type PlanRepository interface {
	Create(db *gorm.DB, plan *models.Plan) error
	FindAll(db *gorm.DB, category *models.PlanCategory) ([]models.Plan, error)
	FindByID(db *gorm.DB, id string) (*models.Plan, error)
	Update(db *gorm.DB, id string, updates map[string]interface{}) error
	Delete(db *gorm.DB, id string) error
	Count(db *gorm.DB) (int64, error)

	// InsertIfAbsent inserts plans with fixed ids and skips the ones that already exist.
	InsertIfAbsent(db *gorm.DB, plans []models.Plan) (int64, error)
}

type PlanRepositoryImpl struct{}

// NewPlanRepository returns the gorm backed PlanRepository.
func NewPlanRepository() PlanRepository {
	return &PlanRepositoryImpl{}
}

// Create inserts plan. The id is generated when empty.
func (r *PlanRepositoryImpl) Create(db *gorm.DB, plan *models.Plan) error {
	return db.Create(plan).Error
}

// FindAll returns every plan in creation order, restricted to category when it is non-nil.
func (r *PlanRepositoryImpl) FindAll(db *gorm.DB, category *models.PlanCategory) ([]models.Plan, error) {
	var plans []models.Plan
	query := db.Model(&models.Plan{})
	if category != nil {
		query = query.Where("category = ?", *category)
	}
	err := query.Order("created_at ASC").Order("title ASC").Find(&plans).Error
	return plans, err
}

// FindByID returns the plan or ErrPlanNotFound.
func (r *PlanRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Plan, error) {
	var plan models.Plan
	err := db.First(&plan, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// Update writes only the given columns. It returns ErrPlanNotFound when no row matches id.
func (r *PlanRepositoryImpl) Update(db *gorm.DB, id string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result := db.Model(&models.Plan{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPlanNotFound
	}
	return nil
}

// Delete removes the plan permanently. Deleting an unknown id is not an error.
func (r *PlanRepositoryImpl) Delete(db *gorm.DB, id string) error {
	return db.Where("id = ?", id).Delete(&models.Plan{}).Error
}

// Count returns the number of stored plans.
func (r *PlanRepositoryImpl) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Plan{}).Count(&count).Error
	return count, err
}

// InsertIfAbsent inserts plans, skipping ids that already exist, and returns the number of rows written.
func (r *PlanRepositoryImpl) InsertIfAbsent(db *gorm.DB, plans []models.Plan) (int64, error) {
	if len(plans) == 0 {
		return 0, nil
	}
	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&plans)
	return result.RowsAffected, result.Error
}
