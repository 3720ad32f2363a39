package smtp

import (
	"fmt"
	"net/smtp"
)

// Mailer sends transactional email.
type Mailer interface {
	SendEmail(to, subject, htmlBody string) error
}

type mailer struct {
	host     string
	port     string
	from     string
	username string
	password string
}

// Options configures the SMTP transport.
type Options struct {
	Host     string
	Port     string
	From     string
	Username string
	Password string
}

func NewMailer(opts Options) Mailer {
	return &mailer{
		host:     opts.Host,
		port:     opts.Port,
		from:     opts.From,
		username: opts.Username,
		password: opts.Password,
	}
}

func (m *mailer) SendEmail(to, subject, htmlBody string) error {
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		m.from, to, subject, htmlBody,
	)
	addr := fmt.Sprintf("%s:%s", m.host, m.port)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg))
}
