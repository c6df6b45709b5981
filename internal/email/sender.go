// Package email sends transactional mail: issued certificates to
// customers and upcoming-job reminders to engineers.
package email

import (
	"context"
	"time"

	"gascert_backend/platform/config"
)

// Attachment represents a file attachment for an email.
type Attachment struct {
	FileName string
	Content  []byte
}

// Sender delivers transactional emails.
type Sender interface {
	// SendCertificateIssuedEmail mails the customer their issued
	// certificate, usually with the PDF attached.
	SendCertificateIssuedEmail(ctx context.Context, toEmail, customerName, certTitle string, attachments ...Attachment) error

	// SendJobReminderEmail reminds the engineer of an upcoming job.
	SendJobReminderEmail(ctx context.Context, toEmail, jobType, address string, scheduledFor time.Time) error
}

// NoopSender is used when no SMTP server is configured; sends succeed
// silently.
type NoopSender struct{}

func (NoopSender) SendCertificateIssuedEmail(ctx context.Context, toEmail, customerName, certTitle string, attachments ...Attachment) error {
	return nil
}

func (NoopSender) SendJobReminderEmail(ctx context.Context, toEmail, jobType, address string, scheduledFor time.Time) error {
	return nil
}

var _ Sender = (*NoopSender)(nil)

// NewSender returns an SMTP sender when outbound email is configured,
// NoopSender otherwise.
func NewSender(cfg config.SMTPConfig) Sender {
	if !cfg.IsEmailEnabled() {
		return NoopSender{}
	}
	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	)
}
