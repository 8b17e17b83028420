package models

type ContactSubmission struct {
	BaseModel
	Name    string `gorm:"not null" json:"name"`
	Email   string `gorm:"type:varchar(255);not null" json:"email"`
	Subject string `gorm:"not null" json:"subject"`
	Message string `gorm:"type:text;not null" json:"message"`
}
