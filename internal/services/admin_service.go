package services

import (
	"financeflow_backend/internal/logger"
	"financeflow_backend/internal/models"
	"financeflow_backend/internal/repositories"
	"financeflow_backend/internal/services/dto"
	"financeflow_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AdminService interface {
	Stats(db *gorm.DB) (*dto.StatsResponse, error)
}

type AdminServiceImpl struct {
	planRepo        repositories.PlanRepository
	applicationRepo repositories.ApplicationRepository
	contactRepo     repositories.ContactRepository
}

func NewAdminService(
	planRepo repositories.PlanRepository,
	applicationRepo repositories.ApplicationRepository,
	contactRepo repositories.ContactRepository,
) AdminService {
	return &AdminServiceImpl{
		planRepo:        planRepo,
		applicationRepo: applicationRepo,
		contactRepo:     contactRepo,
	}
}

func (s *AdminServiceImpl) Stats(db *gorm.DB) (*dto.StatsResponse, error) {
	plans, err := s.planRepo.Count(db)
	if err != nil {
		return nil, s.storageError(db, err)
	}

	byStatus, err := s.applicationRepo.CountByStatus(db)
	if err != nil {
		return nil, s.storageError(db, err)
	}

	contacts, err := s.contactRepo.Count(db)
	if err != nil {
		return nil, s.storageError(db, err)
	}

	resp := &dto.StatsResponse{
		TotalPlans:           plans,
		ApplicationsByStatus: make(map[string]int64, len(byStatus)),
		PendingApplications:  byStatus[models.ApplicationStatusPending],
		ContactSubmissions:   contacts,
	}
	for status, n := range byStatus {
		resp.ApplicationsByStatus[string(status)] = n
		resp.TotalApplications += n
	}
	return resp, nil
}

func (s *AdminServiceImpl) storageError(db *gorm.DB, err error) error {
	logger.CtxWithError(ctxOf(db), "failed to collect admin stats", err)
	return apperrors.DatabaseError(err, "admin")
}
