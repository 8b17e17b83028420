package services

import (
	"errors"
	"strings"
	"time"

	"financeflow_backend/internal/logger"
	"financeflow_backend/internal/metrics"
	"financeflow_backend/internal/models"
	"financeflow_backend/internal/repositories"
	"financeflow_backend/internal/services/dto"
	"financeflow_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ApplicationService interface {
	ApplyForPlan(db *gorm.DB, planID string, userID *string, req *dto.ApplyRequest) (*models.Application, error)
	ListApplications(db *gorm.DB) ([]models.Application, error)
	ListMyApplications(db *gorm.DB, userID string) ([]models.Application, error)
	UpdateApplicationStatus(db *gorm.DB, id string, req *dto.UpdateApplicationStatusRequest) (*models.Application, error)
}

type ApplicationServiceImpl struct {
	applicationRepo   repositories.ApplicationRepository
	planRepo          repositories.PlanRepository
	strictTransitions bool
	now               func() time.Time
}

// NewApplicationService creates the service. With strictTransitions an
// application can only be decided once.
func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	planRepo repositories.PlanRepository,
	strictTransitions bool,
) ApplicationService {
	return &ApplicationServiceImpl{
		applicationRepo:   applicationRepo,
		planRepo:          planRepo,
		strictTransitions: strictTransitions,
		now:               time.Now,
	}
}

func (s *ApplicationServiceImpl) ApplyForPlan(db *gorm.DB, planID string, userID *string, req *dto.ApplyRequest) (*models.Application, error) {
	details := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		details["name"] = "This field is required"
	}
	if strings.TrimSpace(req.Mobile) == "" {
		details["mobile"] = "This field is required"
	}
	if req.Income <= 0 {
		details["income"] = "Must be greater than 0"
	}
	if len(details) > 0 {
		return nil, apperrors.ValidationError(details)
	}

	plan, err := s.planRepo.FindByID(db, planID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlanNotFound) {
			return nil, apperrors.ErrPlanNotFound
		}
		logger.CtxWithError(ctxOf(db), "failed to load plan for application", err, "plan_id", planID)
		return nil, apperrors.DatabaseError(err, "application")
	}

	app := &models.Application{
		ApplicantName:   strings.TrimSpace(req.Name),
		ApplicantMobile: strings.TrimSpace(req.Mobile),
		ApplicantIncome: req.Income,
		Plan:            models.SnapshotOf(plan),
		SubmittedAt:     s.now().UTC(),
		Status:          models.ApplicationStatusPending,
		UserID:          userID,
	}

	if err := s.applicationRepo.Create(db, app); err != nil {
		logger.CtxWithError(ctxOf(db), "failed to create application", err, "plan_id", planID)
		return nil, apperrors.DatabaseError(err, "application")
	}

	metrics.ApplicationsSubmitted.WithLabelValues(string(plan.Category)).Inc()
	logger.CtxInfo(ctxOf(db), "application submitted", "application_id", app.ID, "plan_id", plan.ID)
	return app, nil
}

func (s *ApplicationServiceImpl) ListApplications(db *gorm.DB) ([]models.Application, error) {
	apps, err := s.applicationRepo.FindAll(db)
	if err != nil {
		logger.CtxWithError(ctxOf(db), "failed to list applications", err)
		return nil, apperrors.DatabaseError(err, "application")
	}
	return apps, nil
}

func (s *ApplicationServiceImpl) ListMyApplications(db *gorm.DB, userID string) ([]models.Application, error) {
	apps, err := s.applicationRepo.FindByUser(db, userID)
	if err != nil {
		logger.CtxWithError(ctxOf(db), "failed to list user applications", err)
		return nil, apperrors.DatabaseError(err, "application")
	}
	return apps, nil
}

func (s *ApplicationServiceImpl) UpdateApplicationStatus(db *gorm.DB, id string, req *dto.UpdateApplicationStatusRequest) (*models.Application, error) {
	status := models.ApplicationStatus(req.Status)
	if !status.IsDecision() {
		return nil, apperrors.ValidationError(map[string]string{"status": "Must be one of: APPROVED, REJECTED"})
	}

	err := s.applicationRepo.UpdateStatus(db, id, status, s.strictTransitions)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrApplicationNotFound):
			return nil, apperrors.ErrApplicationNotFound
		case errors.Is(err, repositories.ErrApplicationDecided):
			logger.CtxWarn(ctxOf(db), "application already decided", "application_id", id, "requested", status)
			return nil, apperrors.ErrInvalidStatusTransition
		}
		logger.CtxWithError(ctxOf(db), "failed to update application status", err, "application_id", id)
		return nil, apperrors.DatabaseError(err, "application")
	}

	metrics.ApplicationDecisions.WithLabelValues(string(status)).Inc()
	logger.CtxInfo(ctxOf(db), "application status updated", "application_id", id, "status", status)

	app, err := s.applicationRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, apperrors.DatabaseError(err, "application")
	}
	return app, nil
}
