package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/lungeable/crunch-backend/internal/infra/queue"
	"gopkg.in/gomail.v2"
)

const leadAlertTemplate = `
<h2>New {{.Site}} signup</h2>
<p><b>{{.Email}}</b>{{if .Name}} ({{.Name}}){{end}}</p>
<ul>
	<li>Form: {{.Source}}</li>
	{{if .IsCoach}}<li>Signed up as a coach</li>{{end}}
	{{if .ReferredBy}}<li>Referred by code {{.ReferredBy}}</li>{{end}}
	<li>At: {{.CreatedAt.Format "2006-01-02 15:04 MST"}}</li>
</ul>
`

var leadAlertTmpl = template.Must(template.New("lead_alert").Parse(leadAlertTemplate))

func NewEmailSender(host string, port int, user, password, from, to string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		To:       to,
	}
}

// SendLeadAlert emails the team about a freshly captured lead. This is the
// downstream consumer of new rows; nothing in the submit path waits on it.
func (s *EmailSender) SendLeadAlert(payload queue.LeadCreatedPayload) error {
	var body bytes.Buffer
	if err := leadAlertTmpl.Execute(&body, payload); err != nil {
		return fmt.Errorf("rendering lead alert: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.To)
	m.SetHeader("Subject", fmt.Sprintf("New lead: %s (%s)", payload.Email, payload.Site))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("sending lead alert: %w", err)
	}

	return nil
}
