package services

import (
	"errors"
	"strings"

	"financeflow_backend/internal/logger"
	"financeflow_backend/internal/models"
	"financeflow_backend/internal/repositories"
	"financeflow_backend/internal/seed"
	"financeflow_backend/internal/services/dto"
	"financeflow_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type PlanService interface {
	CreatePlan(db *gorm.DB, req *dto.CreatePlanRequest) (*models.Plan, error)
	ListPlans(db *gorm.DB, category string) ([]models.Plan, error)
	GetPlan(db *gorm.DB, id string) (*models.Plan, error)
	UpdatePlan(db *gorm.DB, id string, req *dto.UpdatePlanRequest) (*models.Plan, error)
	DeletePlan(db *gorm.DB, id string) error
}

type PlanServiceImpl struct {
	planRepo repositories.PlanRepository
	builtins func() ([]models.Plan, error)
}

func NewPlanService(planRepo repositories.PlanRepository) PlanService {
	return &PlanServiceImpl{
		planRepo: planRepo,
		builtins: seed.BuiltinPlans,
	}
}

func (s *PlanServiceImpl) CreatePlan(db *gorm.DB, req *dto.CreatePlanRequest) (*models.Plan, error) {
	category := models.PlanCategory(strings.ToUpper(req.Category))
	if !category.Valid() {
		return nil, apperrors.ValidationError(map[string]string{"category": "Must be one of: INVESTMENT, INSURANCE, FD, LOAN"})
	}

	plan := &models.Plan{
		Title:       strings.TrimSpace(req.Title),
		Category:    category,
		Description: strings.TrimSpace(req.Description),
		Details:     req.Details,
		Icon:        req.Icon,
		ImageURL:    req.ImageURL,
	}

	if err := s.planRepo.Create(db, plan); err != nil {
		logger.CtxWithError(ctxOf(db), "failed to create plan", err, "title", plan.Title)
		return nil, apperrors.DatabaseError(err, "plan")
	}

	logger.CtxInfo(ctxOf(db), "plan created", "plan_id", plan.ID, "category", plan.Category)
	return plan, nil
}

// ListPlans returns the catalogue, seeding the built-in plans into an empty one first.
func (s *PlanServiceImpl) ListPlans(db *gorm.DB, category string) ([]models.Plan, error) {
	var filter *models.PlanCategory
	if category != "" {
		c := models.PlanCategory(strings.ToUpper(category))
		if !c.Valid() {
			return nil, apperrors.ValidationError(map[string]string{"category": "Must be one of: INVESTMENT, INSURANCE, FD, LOAN"})
		}
		filter = &c
	}

	if err := s.seedIfEmpty(db); err != nil {
		return nil, err
	}

	plans, err := s.planRepo.FindAll(db, filter)
	if err != nil {
		logger.CtxWithError(ctxOf(db), "failed to list plans", err)
		return nil, apperrors.DatabaseError(err, "plan")
	}
	return plans, nil
}

func (s *PlanServiceImpl) seedIfEmpty(db *gorm.DB) error {
	count, err := s.planRepo.Count(db)
	if err != nil {
		logger.CtxWithError(ctxOf(db), "failed to count plans", err)
		return apperrors.DatabaseError(err, "plan")
	}
	if count > 0 {
		return nil
	}

	plans, err := s.builtins()
	if err != nil {
		logger.CtxWithError(ctxOf(db), "failed to load built-in plans", err)
		return apperrors.InternalError(err)
	}

	inserted, err := s.planRepo.InsertIfAbsent(db, plans)
	if err != nil {
		logger.CtxWithError(ctxOf(db), "failed to seed built-in plans", err)
		return apperrors.DatabaseError(err, "plan")
	}

	logger.CtxInfo(ctxOf(db), "seeded built-in plans", "inserted", inserted)
	return nil
}

func (s *PlanServiceImpl) GetPlan(db *gorm.DB, id string) (*models.Plan, error) {
	plan, err := s.planRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlanNotFound) {
			return nil, apperrors.ErrPlanNotFound
		}
		logger.CtxWithError(ctxOf(db), "failed to get plan", err, "plan_id", id)
		return nil, apperrors.DatabaseError(err, "plan")
	}
	return plan, nil
}

// UpdatePlan merges the supplied fields into the stored plan.
func (s *PlanServiceImpl) UpdatePlan(db *gorm.DB, id string, req *dto.UpdatePlanRequest) (*models.Plan, error) {
	if req.Category != nil && !models.PlanCategory(strings.ToUpper(*req.Category)).Valid() {
		return nil, apperrors.ValidationError(map[string]string{"category": "Must be one of: INVESTMENT, INSURANCE, FD, LOAN"})
	}

	updates := req.Columns()
	if len(updates) == 0 {
		return s.GetPlan(db, id)
	}

	if err := s.planRepo.Update(db, id, updates); err != nil {
		if errors.Is(err, repositories.ErrPlanNotFound) {
			return nil, apperrors.ErrPlanNotFound
		}
		logger.CtxWithError(ctxOf(db), "failed to update plan", err, "plan_id", id)
		return nil, apperrors.DatabaseError(err, "plan")
	}

	return s.GetPlan(db, id)
}

// DeletePlan removes the plan. Applications keep their snapshot of it.
func (s *PlanServiceImpl) DeletePlan(db *gorm.DB, id string) error {
	if err := s.planRepo.Delete(db, id); err != nil {
		logger.CtxWithError(ctxOf(db), "failed to delete plan", err, "plan_id", id)
		return apperrors.DatabaseError(err, "plan")
	}
	logger.CtxInfo(ctxOf(db), "plan deleted", "plan_id", id)
	return nil
}
