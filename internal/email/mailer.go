// Package email sends transactional mail. The rest of the application treats
// mail delivery as an external collaborator behind the Mailer interface.
package email

import (
	"context"
	"log/slog"
)

// Mailer delivers transactional email.
type Mailer interface {
	// SendPasswordReset delivers a password reset link to the address.
	SendPasswordReset(ctx context.Context, to, resetURL string) error
}

// LogMailer writes outgoing mail to the log instead of sending it. Used in
// development when no SMTP host is configured.
type LogMailer struct{}

// SendPasswordReset logs the reset link.
func (LogMailer) SendPasswordReset(_ context.Context, to, resetURL string) error {
	slog.Info("Password reset email (log mailer)", "to", to, "url", resetURL)
	return nil
}
