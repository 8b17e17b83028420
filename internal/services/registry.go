package services

import (
	"financeflow_backend/internal/auth"
	"financeflow_backend/internal/email"
)

// ServiceContainer holds every service of the application.
type ServiceContainer struct {
	PlanService        PlanService
	ApplicationService ApplicationService
	ContactService     ContactService
	AdviceService      AdviceService
	AdminService       AdminService
	Auth               *auth.Provider
	EmailService       email.Provider
}
