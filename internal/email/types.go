package email

// Email is an outgoing message. Body is plain text, HTMLBody is optional.
type Email struct {
	From     string
	To       []string
	ReplyTo  string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData is the data passed to a message template.
type TemplateData map[string]interface{}
