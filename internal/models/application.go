package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlanSnapshot is copied from the plan when the application is submitted.
// Later edits or deletion of the plan leave it untouched.
type PlanSnapshot struct {
	PlanID       string       `gorm:"type:varchar(64);not null;index" json:"plan_id"`
	PlanTitle    string       `gorm:"not null" json:"plan_title"`
	PlanCategory PlanCategory `gorm:"type:varchar(20);not null" json:"plan_category"`
}

func SnapshotOf(p *Plan) PlanSnapshot {
	return PlanSnapshot{
		PlanID:       p.ID,
		PlanTitle:    p.Title,
		PlanCategory: p.Category,
	}
}

type Application struct {
	ID              string            `gorm:"type:varchar(64);primaryKey" json:"id"`
	ApplicantName   string            `gorm:"not null" json:"applicant_name"`
	ApplicantMobile string            `gorm:"type:varchar(32);not null" json:"applicant_mobile"`
	ApplicantIncome float64           `gorm:"not null" json:"applicant_income"`
	Plan            PlanSnapshot      `gorm:"embedded" json:"plan"`
	SubmittedAt     time.Time         `gorm:"not null;index" json:"submitted_at"`
	Status          ApplicationStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	UserID          *string           `gorm:"type:varchar(64);index" json:"user_id"`
	UpdatedAt       *time.Time        `gorm:"autoUpdateTime:false" json:"updated_at,omitempty"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
