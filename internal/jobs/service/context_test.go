package service

import (
	"testing"

	"gascert_backend/internal/fields"
	"gascert_backend/internal/jobs/repository"
)

func TestCanonicalFields_StoredOverrideWinsOverClientAndRow(t *testing.T) {
	jc := &JobContext{
		Job: repository.Job{
			ClientName: "Row Name",
			Address:    "Row Address",
			Postcode:   "LS1 1AA",
		},
		Client: &ClientView{
			Name:     "Registry Name",
			Address:  "Registry Address",
			Postcode: "LS2 2BB",
		},
		Stored: fields.Map{
			fields.KeyCustomerName: "Stored Name",
		},
	}

	got := jc.CanonicalFields()

	if got[fields.KeyCustomerName] != "Stored Name" {
		t.Fatalf("stored override should win, got %q", got[fields.KeyCustomerName])
	}
	if got[fields.KeyCustomerAddress] != "Registry Address" {
		t.Fatalf("client record should beat the job row, got %q", got[fields.KeyCustomerAddress])
	}
	if got[fields.KeyPostcode] != "LS2 2BB" {
		t.Fatalf("client postcode should beat the row, got %q", got[fields.KeyPostcode])
	}
}

func TestCanonicalFields_UnlinkedJobFallsBackToRowColumns(t *testing.T) {
	jc := &JobContext{
		Job: repository.Job{
			ClientName: "Row Name",
			Address:    "Row Address",
			Postcode:   "LS1 1AA",
		},
	}

	got := jc.CanonicalFields()

	if got[fields.KeyCustomerName] != "Row Name" {
		t.Fatalf("expected row fallback, got %q", got[fields.KeyCustomerName])
	}
	if got[fields.KeyPropertyAddress] != "Row Address" {
		t.Fatalf("expected row fallback, got %q", got[fields.KeyPropertyAddress])
	}
	if got[fields.KeyLandlordName] != "" {
		t.Fatalf("landlord has no row fallback, got %q", got[fields.KeyLandlordName])
	}
}

func TestResolvedFields_KeepsNonCanonicalStoredKeys(t *testing.T) {
	jc := &JobContext{
		Job: repository.Job{ClientName: "Row Name"},
		Stored: fields.Map{
			"reg_26_9_confirmed": "true",
			"inspection_date":    "2026-03-01",
		},
	}

	got := jc.ResolvedFields()

	if got["reg_26_9_confirmed"] != "true" || got["inspection_date"] != "2026-03-01" {
		t.Fatalf("wizard-specific keys must pass through, got %v", got)
	}
	if got[fields.KeyCustomerName] != "Row Name" {
		t.Fatalf("canonical keys must still resolve, got %q", got[fields.KeyCustomerName])
	}
}

func TestResolvedFields_SignatureKeysPreferStoredOverride(t *testing.T) {
	jc := &JobContext{
		Stored: fields.Map{
			fields.KeyEngineerSignatureURL: "overrides/engineer.png",
		},
		Signatures: map[string]string{
			"engineer": "signatures/engineer-latest.png",
			"customer": "signatures/customer-latest.png",
		},
	}

	got := jc.ResolvedFields()

	if got[fields.KeyEngineerSignatureURL] != "overrides/engineer.png" {
		t.Fatalf("stored override should win, got %q", got[fields.KeyEngineerSignatureURL])
	}
	if got[fields.KeyCustomerSignatureURL] != "signatures/customer-latest.png" {
		t.Fatalf("latest capture should surface, got %q", got[fields.KeyCustomerSignatureURL])
	}
}
