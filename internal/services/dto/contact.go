package dto

type ContactRequest struct {
	Name    string `json:"name" validate:"required,not-blank,max=255"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,not-blank,max=255"`
	Message string `json:"message" validate:"required,not-blank,max=5000"`
}

type ContactResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}
