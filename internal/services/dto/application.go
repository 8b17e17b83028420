package dto

import "financeflow_backend/internal/models"

// ApplyRequest is the applicant data submitted with a plan application.
type ApplyRequest struct {
	Name   string  `json:"name" validate:"required,not-blank,max=255"`
	Mobile string  `json:"mobile" validate:"required,is-mobile"`
	Income float64 `json:"income" validate:"gt=0"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,is-decision-status"`
}

type ApplicationListResponse struct {
	Applications []models.Application `json:"applications"`
	Total        int                  `json:"total"`
}
