package pdf

import (
	"strings"
	"testing"
	"time"

	"gascert_backend/internal/certificates/service"
	"gascert_backend/internal/fields"
)

func TestBuildHTML_CP12IncludesApplianceTableAndSignatures(t *testing.T) {
	doc := service.Document{
		Fields: fields.Map{
			"property_address":             "12 High Street, Leeds",
			"customer_name":                "Jane Tenant",
			"landlord_name":                "A. Landlord",
			"engineer_name":                "J. Smith",
			"gas_safe_number":              "123456",
			"inspection_date":              "2026-03-01",
			"engineer_signature_url":       "https://files.example.test/engineer.png",
			"customer_signature_url":       "https://files.example.test/customer.png",
		},
		Appliances: []service.Appliance{
			{ApplianceType: "Boiler", Location: "Kitchen", SafetyRating: "safe"},
		},
		IssuedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	html, err := buildHTML("Landlord Gas Safety Record (CP12)", "cp12", doc)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	body := string(html)

	for _, want := range []string{
		"Landlord Gas Safety Record (CP12)",
		"12 High Street, Leeds",
		"Boiler",
		"Kitchen",
		"https://files.example.test/engineer.png",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in rendered html", want)
		}
	}
	if strings.Contains(body, "PREVIEW") {
		t.Fatal("final document must not carry the preview banner")
	}
}

func TestBuildHTML_PreviewBanner(t *testing.T) {
	doc := service.Document{Fields: fields.Map{}, Preview: true, IssuedAt: time.Now()}

	html, err := buildHTML("Breakdown Report", "breakdown", doc)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !strings.Contains(string(html), "PREVIEW") {
		t.Fatal("preview documents must carry the preview banner")
	}
}

func TestRender_UnknownTypeFails(t *testing.T) {
	r := NewRenderer(nil)
	if _, err := r.Render(t.Context(), "invoice", service.Document{}); err == nil {
		t.Fatal("expected error for unknown certificate type")
	}
}

func TestFormatClassification(t *testing.T) {
	if got := formatClassification("IMMEDIATELY_DANGEROUS"); got != "Immediately Dangerous (ID)" {
		t.Fatalf("unexpected %q", got)
	}
	if got := formatClassification("custom"); got != "custom" {
		t.Fatalf("unknown codes pass through, got %q", got)
	}
}
