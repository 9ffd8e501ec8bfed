package infra

import (
	"fmt"
	"net/smtp"

	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for customer notification emails.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// Configurado indicates whether SMTP credentials were provided. When false
// the worker logs the notice instead of attempting delivery.
func (m *Mailer) Configurado() bool {
	return m.host != "" && m.user != ""
}

// EnviarAviso sends a plain-text notice to the customer email.
func (m *Mailer) EnviarAviso(to, subject, body string) error {
	e := email.NewEmail()
	e.From = m.user
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}
