package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	gomail "gopkg.in/mail.v2"
)

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer renders an embedded template and delivers it over SMTP.
type SMTPMailer struct {
	fromEmail string
	dialer    sender
	backoff   time.Duration
}

func NewSMTPMailer(host string, port int, username, password, fromEmail string) *SMTPMailer {
	return &SMTPMailer{
		fromEmail: fromEmail,
		dialer:    gomail.NewDialer(host, port, username, password),
		backoff:   time.Second,
	}
}

// Send returns 200 once the message is accepted by the server.
func (m *SMTPMailer) Send(templateFile, username, email string, data any) (int, error) {
	tmpl, err := template.ParseFS(FS, "templates/"+templateFile)
	if err != nil {
		return -1, fmt.Errorf("%w: %v", ErrTemplate, err)
	}

	subject := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(subject, "subject", data); err != nil {
		return -1, fmt.Errorf("%w: %v", ErrTemplate, err)
	}

	body := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(body, "body", data); err != nil {
		return -1, fmt.Errorf("%w: %v", ErrTemplate, err)
	}

	message := gomail.NewMessage()
	message.SetAddressHeader("From", m.fromEmail, FromName)
	message.SetAddressHeader("To", email, username)
	message.SetHeader("Subject", subject.String())
	message.AddAlternative("text/html", body.String())

	var lastErr error
	for i := 0; i < maxRetires; i++ {
		if lastErr = m.dialer.DialAndSend(message); lastErr == nil {
			return 200, nil
		}
		time.Sleep(m.backoff * time.Duration(i+1))
	}

	return -1, fmt.Errorf("failed to send email after %d attempts: %w", maxRetires, lastErr)
}
