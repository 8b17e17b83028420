package email

import (
	"time"

	"financeflow_backend/internal/config"
)

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	Timeout   time.Duration
}

// ConfigFrom maps the application email settings onto an SMTP configuration.
func ConfigFrom(cfg config.EmailConfig) *SMTPConfig {
	port := cfg.SMTPPort
	if port == 0 {
		port = 587
	}
	return &SMTPConfig{
		Host:      cfg.SMTPHost,
		Port:      port,
		Username:  cfg.SMTPUsername,
		Password:  cfg.SMTPPassword,
		FromEmail: cfg.FromEmail,
		FromName:  cfg.FromName,
		Timeout:   30 * time.Second,
	}
}
