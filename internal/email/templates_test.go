package email

import (
	"strings"
	"testing"
)

func TestRenderCertificateIssuedTemplate(t *testing.T) {
	html, err := renderEmailTemplate("certificate_issued.html", certificateIssuedEmailData{
		baseEmailData: baseEmailData{Title: subjectCertificateIssued, Heading: "Your certificate is ready"},
		CustomerName:  "Jane Tenant",
		CertTitle:     "Landlord Gas Safety Record (CP12)",
		HasAttachment: true,
	})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !strings.Contains(html, "Jane Tenant") {
		t.Fatalf("expected customer name in body:\n%s", html)
	}
	if !strings.Contains(html, "Landlord Gas Safety Record (CP12)") {
		t.Fatalf("expected certificate title in body:\n%s", html)
	}
}

func TestRenderJobReminderTemplate(t *testing.T) {
	html, err := renderEmailTemplate("job_reminder.html", jobReminderEmailData{
		baseEmailData: baseEmailData{Title: subjectJobReminder, Heading: "Upcoming job"},
		JobType:       "cp12",
		Address:       "12 High Street, Leeds",
		ScheduledDate: "Monday 2 March 2026, 09:00",
	})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !strings.Contains(html, "12 High Street, Leeds") {
		t.Fatalf("expected address in body:\n%s", html)
	}
	if !strings.Contains(html, "Monday 2 March 2026, 09:00") {
		t.Fatalf("expected schedule in body:\n%s", html)
	}
}
