// Package notification subscribes to domain events and sends the
// resulting emails, so the domain modules never touch mail providers.
package notification

import (
	"context"
	"io"
	"time"

	"gascert_backend/internal/email"
	"gascert_backend/internal/events"
	"gascert_backend/platform/logger"
)

// PDFFetcher streams an issued certificate PDF out of object storage.
type PDFFetcher interface {
	DownloadFile(ctx context.Context, bucket, fileKey string) (io.ReadCloser, error)
}

var certTitles = map[string]string{
	"cp12":           "Landlord Gas Safety Record (CP12)",
	"boiler_service": "Boiler Service Record",
	"commissioning":  "Commissioning Record",
	"breakdown":      "Breakdown Report",
	"general_works":  "General Works Record",
	"warning_notice": "Gas Warning Notice",
}

// Module wires event subscriptions to the email sender.
type Module struct {
	sender email.Sender
	pdfs   PDFFetcher
	bucket string
	log    *logger.Logger
}

// NewModule creates the notification module.
func NewModule(sender email.Sender, pdfs PDFFetcher, certBucket string, log *logger.Logger) *Module {
	return &Module{sender: sender, pdfs: pdfs, bucket: certBucket, log: log}
}

// Subscribe registers the module's event handlers on the bus.
func (m *Module) Subscribe(bus events.Bus) {
	bus.Subscribe(events.CertificateIssued{}.EventName(), events.HandlerFunc(m.onCertificateIssued))
}

// onCertificateIssued emails the customer their certificate with the
// PDF attached. Best effort: a missing customer email or a failed
// attachment download never fails the issuance, it just degrades.
func (m *Module) onCertificateIssued(ctx context.Context, event events.Event) error {
	issued, ok := event.(events.CertificateIssued)
	if !ok {
		return nil
	}
	if issued.CustomerEmail == "" {
		return nil
	}

	title := certTitles[issued.CertType]
	if title == "" {
		title = "Certificate"
	}

	var attachments []email.Attachment
	if m.pdfs != nil {
		if content, err := m.fetchPDF(ctx, issued.PDFPath); err == nil {
			attachments = append(attachments, email.Attachment{
				FileName: issued.CertType + "_" + issued.JobID.String() + ".pdf",
				Content:  content,
			})
		} else if m.log != nil {
			m.log.Error("fetch certificate pdf for email", "jobId", issued.JobID.String(), "error", err)
		}
	}

	sendCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	return m.sender.SendCertificateIssuedEmail(sendCtx, issued.CustomerEmail, issued.CustomerName, title, attachments...)
}

func (m *Module) fetchPDF(ctx context.Context, fileKey string) ([]byte, error) {
	rc, err := m.pdfs.DownloadFile(ctx, m.bucket, fileKey)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
