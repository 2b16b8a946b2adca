package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/dtroode/auth-server/internal/logger"
	"github.com/dtroode/auth-server/internal/model"
)

var _ model.EmailSender = (*SMTP)(nil)

// SMTP sends mail over plain SMTP with optional AUTH PLAIN. With Enabled
// false it only logs the would-be delivery, which keeps local runs and
// tests away from a real mail relay.
type SMTP struct {
	host     string
	port     int
	username string
	password string
	from     string
	enabled  bool
	logger   *logger.Logger
}

func NewSMTP(host string, port int, username, password, from string, enabled bool, logger *logger.Logger) *SMTP {
	return &SMTP{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		enabled:  enabled,
		logger:   logger,
	}
}

// Send delivers a single HTML message. The context deadline is honored
// only between messages; net/smtp has no per-command cancellation.
func (m *SMTP) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if !m.enabled {
		m.logger.Info("Mailer: delivery disabled, dropping message",
			"to", to,
			"subject", subject)
		return nil
	}

	msg := buildMessage(m.from, to, subject, htmlBody)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	if err := smtp.SendMail(addr, auth, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func buildMessage(from, to, subject, htmlBody string) []byte {
	var sb strings.Builder
	sb.WriteString("From: " + from + "\r\n")
	sb.WriteString("To: " + to + "\r\n")
	sb.WriteString("Subject: " + subject + "\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(htmlBody)
	return []byte(sb.String())
}
