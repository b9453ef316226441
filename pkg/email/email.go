package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"time"

	"github.com/miguelmlop25/gestion-vacantes/config"
	"github.com/miguelmlop25/gestion-vacantes/internal/domain"
)

// Notifier delivers platform notifications over SMTP. It satisfies
// domain.Notifier; callers run the sends in goroutines so a slow or broken
// relay never blocks a workflow.
type Notifier struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
}

// NewNotifier creates an SMTP-backed notifier from the loaded configuration.
func NewNotifier(cfg *config.Config) *Notifier {
	return &Notifier{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPFromEmail,
	}
}

// IsConfigured checks whether the notifier has a usable SMTP configuration.
func (n *Notifier) IsConfigured() bool {
	return n.host != "" && n.username != "" && n.password != ""
}

const welcomeTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Welcome</title></head>
<body style="font-family: Arial, sans-serif; color: #333;">
    <h2>Welcome to the platform, {{.Name}}!</h2>
    {{if eq .Role "employer"}}
    <p>Your employer account is ready. You can now publish vacancies and review candidates.</p>
    {{else}}
    <p>Your candidate account is ready. Browse open vacancies and send your first application.</p>
    {{end}}
</body>
</html>`

const interviewTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Interview Scheduled</title></head>
<body style="font-family: Arial, sans-serif; color: #333;">
    <h2>Interview scheduled</h2>
    <p>Hi {{.CandidateName}},</p>
    <p>Your application for <strong>{{.VacancyTitle}}</strong> moved forward. An interview was scheduled for <strong>{{.When}}</strong>.</p>
    {{if .Details}}<p>Details: {{.Details}}</p>{{end}}
</body>
</html>`

const newApplicationTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>New Application</title></head>
<body style="font-family: Arial, sans-serif; color: #333;">
    <h2>New application received</h2>
    <p>Hi {{.EmployerName}},</p>
    <p><strong>{{.CandidateName}}</strong> applied to your vacancy <strong>{{.VacancyTitle}}</strong>. Log in to review the application.</p>
</body>
</html>`

var (
	welcomeTmpl        = template.Must(template.New("welcome").Parse(welcomeTemplate))
	interviewTmpl      = template.Must(template.New("interview").Parse(interviewTemplate))
	newApplicationTmpl = template.Must(template.New("new_application").Parse(newApplicationTemplate))
)

// NotifyWelcome sends the account-created email.
func (n *Notifier) NotifyWelcome(ctx context.Context, email, name, role string) error {
	data := struct {
		Name string
		Role string
	}{Name: name, Role: role}
	return n.send(ctx, email, "Welcome aboard", welcomeTmpl, data)
}

// NotifyInterviewScheduled tells the candidate an interview was booked.
func (n *Notifier) NotifyInterviewScheduled(ctx context.Context, notice domain.InterviewNotice) error {
	data := struct {
		CandidateName string
		VacancyTitle  string
		When          string
		Details       string
	}{
		CandidateName: notice.CandidateName,
		VacancyTitle:  notice.VacancyTitle,
		When:          notice.At.Format("Monday, 2 January 2006 at 15:04"),
		Details:       notice.Details,
	}
	subject := fmt.Sprintf("Interview scheduled: %s", notice.VacancyTitle)
	return n.send(ctx, notice.CandidateEmail, subject, interviewTmpl, data)
}

// NotifyNewApplication tells the employer a candidate applied.
func (n *Notifier) NotifyNewApplication(ctx context.Context, notice domain.NewApplicationNotice) error {
	data := struct {
		EmployerName  string
		CandidateName string
		VacancyTitle  string
	}{
		EmployerName:  notice.EmployerName,
		CandidateName: notice.CandidateName,
		VacancyTitle:  notice.VacancyTitle,
	}
	subject := fmt.Sprintf("New application for %s", notice.VacancyTitle)
	return n.send(ctx, notice.EmployerEmail, subject, newApplicationTmpl, data)
}

func (n *Notifier) send(ctx context.Context, to, subject string, tmpl *template.Template, data any) error {
	if !n.IsConfigured() {
		return fmt.Errorf("email: SMTP not configured, dropping %q to %s", subject, to)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("email: execute template: %w", err)
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"Date: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		n.fromEmail,
		to,
		subject,
		time.Now().Format(time.RFC1123Z),
		body.String(),
	))

	auth := smtp.PlainAuth("", n.username, n.password, n.host)
	addr := fmt.Sprintf("%s:%s", n.host, n.port)
	if err := smtp.SendMail(addr, auth, n.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("email: send to %s: %w", to, err)
	}
	return nil
}
