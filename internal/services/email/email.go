// Copyright 2025 Dask
// Licensed under the EUPL-1.2

// Package email relays verification codes and contact-form messages over
// SMTP. All transport failures are reported as errors, never panics; the
// caller decides the user-facing message and offers a resend.
package email

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/daskng/blog/internal/config"
	"github.com/wneessen/go-mail"
)

// ErrNotConfigured is returned when no SMTP relay is configured.
var ErrNotConfigured = errors.New("smtp relay not configured")

// Service handles outbound email.
type Service struct {
	cfg       *config.SMTPConfig
	contact   *config.ContactConfig
	templates []Template
}

// NewService creates a new email service. An empty SMTP host leaves the
// service in disabled mode: every send reports ErrNotConfigured instead of
// failing startup.
func NewService(cfg *config.SMTPConfig, contact *config.ContactConfig) (*Service, error) {
	if cfg.Host == "" {
		slog.Warn("smtp host not configured, email dispatch disabled")
		return &Service{cfg: cfg, contact: contact}, nil
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("SMTP from address is required")
	}

	var templates []Template
	if cfg.TemplatesFile != "" {
		var err error
		templates, err = loadTemplates(cfg.TemplatesFile)
		if err != nil {
			return nil, err
		}
	}

	return &Service{cfg: cfg, contact: contact, templates: templates}, nil
}

// Enabled reports whether a relay is configured.
func (s *Service) Enabled() bool {
	return s.cfg.Host != ""
}

// SendVerificationCode emails a one-time code, using one of the configured
// templates chosen at random.
func (s *Service) SendVerificationCode(to, code string) error {
	if !s.Enabled() {
		return ErrNotConfigured
	}

	subject, body, err := pickTemplate(s.templates).render(to, code)
	if err != nil {
		return fmt.Errorf("rendering verification email: %w", err)
	}

	if err := s.send(to, "", subject, body, s.cfg.Port); err != nil {
		return err
	}

	slog.Info("verification_email_sent", "to", to)
	return nil
}

// SendContactMessage relays a contact-form submission to the configured
// recipient over the STARTTLS path.
func (s *Service) SendContactMessage(name, replyTo, message string) error {
	if !s.Enabled() {
		return ErrNotConfigured
	}
	if s.contact == nil || s.contact.Recipient == "" {
		return fmt.Errorf("contact recipient not configured")
	}

	body := fmt.Sprintf("Message from %s <%s>:\n\n%s", name, replyTo, message)
	if err := s.send(s.contact.Recipient, replyTo, "Contact Form Message", body, s.contact.Port); err != nil {
		return err
	}

	slog.Info("contact_email_sent", "from", replyTo)
	return nil
}

// send submits one message via SMTP using go-mail. Port 465 uses implicit
// TLS, anything else negotiates STARTTLS.
func (s *Service) send(to, replyTo, subject, body string, port int) error {
	msg := mail.NewMsg()

	if s.cfg.FromName != "" {
		if err := msg.FromFormat(s.cfg.FromName, s.cfg.From); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	} else {
		if err := msg.From(s.cfg.From); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	}

	if err := msg.To(to); err != nil {
		return fmt.Errorf("setting to address: %w", err)
	}

	if replyTo != "" {
		if err := msg.ReplyTo(replyTo); err != nil {
			return fmt.Errorf("setting reply-to address: %w", err)
		}
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	opts := []mail.Option{
		mail.WithPort(port),
	}

	if s.cfg.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
		// Implicit TLS (SSL) for port 465, STARTTLS for others
		if port == 465 {
			opts = append(opts, mail.WithSSL())
		}
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	if s.cfg.Username != "" && s.cfg.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}

	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}

	return nil
}
