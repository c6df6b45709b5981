package email

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements Sender over a direct SMTP connection via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates a new SMTPSender with the given SMTP credentials.
func NewSMTPSender(host string, port int, username, password, fromEmail, fromName string) *SMTPSender {
	return &SMTPSender{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

var _ Sender = (*SMTPSender)(nil)

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string, attachments ...Attachment) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	for _, att := range attachments {
		msg.AttachReader(att.FileName, bytes.NewReader(att.Content))
	}

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

// SendCertificateIssuedEmail mails the customer their issued certificate.
func (s *SMTPSender) SendCertificateIssuedEmail(ctx context.Context, toEmail, customerName, certTitle string, attachments ...Attachment) error {
	if customerName == "" {
		customerName = "customer"
	}
	content, err := renderEmailTemplate("certificate_issued.html", certificateIssuedEmailData{
		baseEmailData: baseEmailData{
			Title:   subjectCertificateIssued,
			Heading: "Certificate issued",
		},
		CustomerName:  customerName,
		CertTitle:     certTitle,
		HasAttachment: len(attachments) > 0,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectCertificateIssued, content, attachments...)
}

// SendJobReminderEmail reminds the engineer of an upcoming job.
func (s *SMTPSender) SendJobReminderEmail(ctx context.Context, toEmail, jobType, address string, scheduledFor time.Time) error {
	content, err := renderEmailTemplate("job_reminder.html", jobReminderEmailData{
		baseEmailData: baseEmailData{
			Title:   subjectJobReminder,
			Heading: "Upcoming job",
		},
		JobType:       jobType,
		Address:       address,
		ScheduledDate: scheduledFor.Format("Monday 2 January 2006, 15:04"),
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectJobReminder, content)
}
