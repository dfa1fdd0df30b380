package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/municipal-services/complaint-service/internal/config"
	"github.com/municipal-services/complaint-service/internal/domain"
)

// Mailer delivers a status-change notice to a customer. Implementations
// return an error for delivery failures; callers log it and move on, they
// never roll back the transition the notice follows.
type Mailer interface {
	Send(ctx context.Context, payload domain.NotificationPayload) error
}

// New selects a provider from configuration. Without an SMTP host the
// logging provider is used, which keeps local development mail-free.
func New(cfg config.SMTPConfig, logger *zap.Logger) Mailer {
	if strings.TrimSpace(cfg.Host) == "" {
		return &logMailer{logger: logger}
	}
	return &smtpMailer{cfg: cfg}
}

type smtpMailer struct {
	cfg config.SMTPConfig
}

func (m *smtpMailer) Send(ctx context.Context, payload domain.NotificationPayload) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	msg := buildMessage(m.cfg.From, payload)
	return smtp.SendMail(addr, auth, m.cfg.From, []string{payload.CustomerEmail}, msg)
}

func buildMessage(from string, payload domain.NotificationPayload) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", payload.CustomerEmail)
	fmt.Fprintf(&b, "Subject: Complaint %s is now %s\r\n", payload.ComplaintID, payload.Status)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&b, "Hello %s,\r\n\r\nyour complaint %s changed status to %s.\r\n",
		payload.CustomerName, payload.ComplaintID, payload.Status)
	return []byte(b.String())
}

type logMailer struct {
	logger *zap.Logger
}

func (m *logMailer) Send(ctx context.Context, payload domain.NotificationPayload) error {
	m.logger.Info("mail notification",
		zap.String("to", payload.CustomerEmail),
		zap.String("complaint_id", payload.ComplaintID),
		zap.String("status", payload.Status.String()))
	return nil
}
