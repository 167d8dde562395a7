package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPMailer sends mail through a plain-auth SMTP relay.
type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string
}

// NewSMTPMailer creates a mailer for the given relay. user and pass may be
// empty for an unauthenticated relay.
func NewSMTPMailer(host string, port int, user, pass, from string) *SMTPMailer {
	var auth smtp.Auth
	if user != "" {
		auth = smtp.PlainAuth("", user, pass, host)
	}
	return &SMTPMailer{
		addr: fmt.Sprintf("%s:%d", host, port),
		auth: auth,
		from: from,
	}
}

// SendPasswordReset delivers the reset link. The link expires after ten
// minutes; the body says so.
func (m *SMTPMailer) SendPasswordReset(_ context.Context, to, resetURL string) error {
	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: Reset your Cartmates password",
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		"We received a request to reset your password.",
		"",
		"Open this link to choose a new one (valid for 10 minutes):",
		resetURL,
		"",
		"If you did not request this, you can ignore this email.",
	}, "\r\n")

	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}
	return nil
}
