package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

const ContactNotificationTemplate = "contact_notification"

const contactNotificationHTML = `<h2>New contact form submission</h2>
<p><strong>From:</strong> {{.Name}} &lt;{{.Email}}&gt;</p>
<p><strong>Subject:</strong> {{.Subject}}</p>
<p>{{.Message}}</p>
<p style="color:#888">Submission {{.ID}}</p>`

// TemplateManager keeps parsed html templates by name.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager returns a manager preloaded with the built-in templates.
func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	if err := tm.AddTemplate(ContactNotificationTemplate, contactNotificationHTML); err != nil {
		panic(err)
	}
	return tm
}

func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Option("missingkey=error").Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}
