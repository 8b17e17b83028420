package email

import (
	"strings"

	"financeflow_backend/internal/logger"
)

// LogProvider is used when SMTP is not configured. Messages are logged, not sent.
type LogProvider struct {
	renderer TemplateRenderer
}

func NewLogProvider(renderer TemplateRenderer) *LogProvider {
	return &LogProvider{renderer: renderer}
}

func (p *LogProvider) Send(email *Email) error {
	logger.Info("email not sent, SMTP disabled",
		"to", strings.Join(email.To, ","),
		"subject", email.Subject,
	)
	return nil
}

func (p *LogProvider) SendTemplate(to []string, subject string, templateName string, data TemplateData) error {
	body, err := p.renderer.Render(templateName, data)
	if err != nil {
		return err
	}
	return p.Send(&Email{To: to, Subject: subject, HTMLBody: body})
}

func (p *LogProvider) Validate() error { return nil }
