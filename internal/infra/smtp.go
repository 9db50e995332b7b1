package infra

import (
	"bytes"
	"errors"
	"fmt"
	"net/smtp"

	"eskimo/internal/config"

	"github.com/jordan-wright/email"
)

// ErrSMTPNoConfigurado is returned by Send when SMTP_HOST is empty.
var ErrSMTPNoConfigurado = errors.New("mailer: SMTP no configurado")

// Adjunto is an in-memory attachment.
type Adjunto struct {
	Nombre      string
	ContentType string
	Datos       []byte
}

// Mailer wraps SMTP configuration for sending plain-text emails with optional
// attachments.
type Mailer struct {
	host     string
	user     string
	password string
	addr     string
	from     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		from:     fmt.Sprintf("%s <%s>", cfg.BusinessName, cfg.SMTPUser),
	}
}

// Configurado reports whether an SMTP host was set.
func (m *Mailer) Configurado() bool { return m.host != "" }

// Send delivers one message. Attachments may come from disk (pdfPath) or memory.
func (m *Mailer) Send(to, subject, body, pdfPath string, adjuntos ...Adjunto) error {
	if !m.Configurado() {
		return ErrSMTPNoConfigurado
	}
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	if pdfPath != "" {
		if _, err := e.AttachFile(pdfPath); err != nil {
			return fmt.Errorf("mailer: attach PDF: %w", err)
		}
	}
	for _, a := range adjuntos {
		if _, err := e.Attach(bytes.NewReader(a.Datos), a.Nombre, a.ContentType); err != nil {
			return fmt.Errorf("mailer: attach %s: %w", a.Nombre, err)
		}
	}

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}
	return e.Send(m.addr, auth)
}
