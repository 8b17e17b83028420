package dto

import (
	"strings"

	"financeflow_backend/internal/models"
)

type CreatePlanRequest struct {
	Title       string `json:"title" validate:"required,not-blank,max=255"`
	Category    string `json:"category" validate:"required,is-plan-category"`
	Description string `json:"description" validate:"required,not-blank"`
	Details     string `json:"details,omitempty"`
	Icon        string `json:"icon,omitempty" validate:"max=64"`
	ImageURL    string `json:"image_url,omitempty" validate:"omitempty,url"`
}

// UpdatePlanRequest only touches the fields that are present.
type UpdatePlanRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,not-blank,max=255"`
	Category    *string `json:"category,omitempty" validate:"omitempty,is-plan-category"`
	Description *string `json:"description,omitempty" validate:"omitempty,not-blank"`
	Details     *string `json:"details,omitempty"`
	Icon        *string `json:"icon,omitempty" validate:"omitempty,max=64"`
	ImageURL    *string `json:"image_url,omitempty" validate:"omitempty,url"`
}

// Columns returns the column/value pairs to write.
func (r *UpdatePlanRequest) Columns() map[string]interface{} {
	updates := make(map[string]interface{})
	if r.Title != nil {
		updates["title"] = *r.Title
	}
	if r.Category != nil {
		updates["category"] = models.PlanCategory(strings.ToUpper(*r.Category))
	}
	if r.Description != nil {
		updates["description"] = *r.Description
	}
	if r.Details != nil {
		updates["details"] = *r.Details
	}
	if r.Icon != nil {
		updates["icon"] = *r.Icon
	}
	if r.ImageURL != nil {
		updates["image_url"] = *r.ImageURL
	}
	return updates
}

type ListPlansQuery struct {
	Category string `form:"category" json:"category" validate:"omitempty,is-plan-category"`
}

type PlanListResponse struct {
	Plans []models.Plan `json:"plans"`
	Total int           `json:"total"`
}
