package integration

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

var (
	// ErrMailerNotConfigured means no SMTP relay is set up for this deployment.
	ErrMailerNotConfigured = errors.New("email delivery is not configured")
	// ErrUpstream covers a failed call to an external provider.
	ErrUpstream = errors.New("upstream provider error")
)

// SMTPConfig holds the relay settings for outbound notifications.
type SMTPConfig struct {
	Host     string
	Port     string
	From     string
	Password string
	// NotifyTo receives order, consultation and subscription notifications.
	NotifyTo string
}

// Mailer sends studio notifications through a plain SMTP relay. One attempt
// per message, no retries; a failure is the final outcome for that request.
type Mailer struct {
	cfg    SMTPConfig
	logger *zap.Logger
	send   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewMailer creates a new Mailer.
func NewMailer(cfg SMTPConfig, logger *zap.Logger) *Mailer {
	return &Mailer{
		cfg:    cfg,
		logger: logger,
		send:   smtp.SendMail,
	}
}

// Enabled reports whether an SMTP relay is configured.
func (m *Mailer) Enabled() bool {
	return m.cfg.Host != "" && m.cfg.From != "" && m.cfg.NotifyTo != ""
}

// Send delivers a plain-text notification to the configured recipient.
func (m *Mailer) Send(subject, body string) error {
	if !m.Enabled() {
		return ErrMailerNotConfigured
	}

	var msg strings.Builder
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("From: " + m.cfg.From + "\r\n")
	msg.WriteString("To: " + m.cfg.NotifyTo + "\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body + "\r\n")

	auth := smtp.PlainAuth("", m.cfg.From, m.cfg.Password, m.cfg.Host)
	addr := m.cfg.Host + ":" + m.cfg.Port

	if err := m.send(addr, auth, m.cfg.From, []string{m.cfg.NotifyTo}, []byte(msg.String())); err != nil {
		m.logger.Error("SMTP delivery failed", zap.Error(err), zap.String("subject", subject))
		return fmt.Errorf("%w: smtp delivery failed", ErrUpstream)
	}

	return nil
}

// OrderNotification formats and sends an order inquiry.
func (m *Mailer) OrderNotification(name, email, message, artworkTitle string) error {
	body := fmt.Sprintf("New order inquiry\n\nName: %s\nEmail: %s\n", name, email)
	if artworkTitle != "" {
		body += fmt.Sprintf("Artwork: %s\n", artworkTitle)
	}
	if message != "" {
		body += fmt.Sprintf("\nMessage:\n%s\n", message)
	}
	return m.Send("Inner Garden — new order inquiry", body)
}

// ConsultationNotification formats and sends a consultation request.
func (m *Mailer) ConsultationNotification(name, email, phone, message string) error {
	body := fmt.Sprintf("New consultation request\n\nName: %s\nEmail: %s\n", name, email)
	if phone != "" {
		body += fmt.Sprintf("Phone: %s\n", phone)
	}
	if message != "" {
		body += fmt.Sprintf("\nMessage:\n%s\n", message)
	}
	return m.Send("Inner Garden — consultation request", body)
}

// SubscriptionNotification reports a newsletter signup.
func (m *Mailer) SubscriptionNotification(email string) error {
	body := fmt.Sprintf("New newsletter subscriber\n\nEmail: %s\n", email)
	return m.Send("Inner Garden — newsletter signup", body)
}
