package services

import (
	"strings"

	"financeflow_backend/internal/email"
	"financeflow_backend/internal/logger"
	"financeflow_backend/internal/models"
	"financeflow_backend/internal/repositories"
	"financeflow_backend/internal/services/dto"
	"financeflow_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ContactService interface {
	SubmitContact(db *gorm.DB, req *dto.ContactRequest) (*models.ContactSubmission, error)
}

type ContactServiceImpl struct {
	contactRepo repositories.ContactRepository
	mailer      email.Provider
	adminEmail  string
}

func NewContactService(contactRepo repositories.ContactRepository, mailer email.Provider, adminEmail string) ContactService {
	return &ContactServiceImpl{
		contactRepo: contactRepo,
		mailer:      mailer,
		adminEmail:  adminEmail,
	}
}

// SubmitContact stores the message and notifies the admin mailbox.
// A failed notification does not fail the submission.
func (s *ContactServiceImpl) SubmitContact(db *gorm.DB, req *dto.ContactRequest) (*models.ContactSubmission, error) {
	submission := &models.ContactSubmission{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}

	if err := s.contactRepo.Create(db, submission); err != nil {
		logger.CtxWithError(ctxOf(db), "failed to store contact submission", err)
		return nil, apperrors.DatabaseError(err, "contact")
	}

	s.notify(db, submission)
	return submission, nil
}

func (s *ContactServiceImpl) notify(db *gorm.DB, submission *models.ContactSubmission) {
	if s.adminEmail == "" {
		logger.CtxDebug(ctxOf(db), "no admin mailbox configured, skipping contact notification")
		return
	}

	err := s.mailer.SendTemplate(
		[]string{s.adminEmail},
		"Contact form: "+submission.Subject,
		email.ContactNotificationTemplate,
		email.TemplateData{
			"ID":      submission.ID,
			"Name":    submission.Name,
			"Email":   submission.Email,
			"Subject": submission.Subject,
			"Message": submission.Message,
		},
	)
	if err != nil {
		logger.CtxWithError(ctxOf(db), "failed to send contact notification", err, "submission_id", submission.ID)
	}
}
