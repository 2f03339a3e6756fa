package mailer

import (
	tpl "github.com/oksasatya/acquisitions/pkg/mailer/templates"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template+Data or Subject with Text/HTML is set.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "welcome"
	Data     map[string]any `json:"data,omitempty"`
}

// NewWelcomeJob builds the job sent after a successful sign-up.
func NewWelcomeJob(to string, data tpl.EmailData) EmailJob {
	return EmailJob{To: to, Template: tpl.Welcome, Data: tpl.ToMap(data)}
}

// Render resolves the subject and bodies of j, rendering its template if set.
func (j EmailJob) Render() (subject, text, html string, err error) {
	if j.Template == "" {
		return j.Subject, j.Text, j.HTML, nil
	}
	if j.Data == nil {
		j.Data = map[string]any{}
	}
	if v, ok := j.Data["Email"]; !ok || v == "" {
		j.Data["Email"] = j.To
	}
	return tpl.Render(j.Template, j.Data)
}
