package service

import (
	"testing"

	"gascert_backend/internal/fields"
)

func compliantCP12Fields() fields.Map {
	return fields.Map{
		"property_address":            "12 High Street, Leeds",
		"inspection_date":             "2026-03-01",
		"landlord_name":               "A. Landlord",
		"landlord_address":            "1 Owner Road, Leeds",
		"engineer_name":               "J. Smith",
		"gas_safe_number":             "123456",
		"reg_26_9_confirmed":          "true",
		fields.KeyEngineerSignatureURL: "signatures/engineer.png",
		fields.KeyCustomerSignatureURL: "signatures/customer.png",
	}
}

func compliantCP12Appliances() []Appliance {
	return []Appliance{
		{ApplianceType: "Boiler", Location: "Kitchen", SafetyRating: "safe"},
	}
}

func countRule(v Violations, rule string) int {
	n := 0
	for _, violation := range v {
		if violation.Rule == rule {
			n++
		}
	}
	return n
}

func TestValidateCP12_CompliantRecordHasNoViolations(t *testing.T) {
	got := ValidateCP12(compliantCP12Fields(), compliantCP12Appliances())
	if len(got) != 0 {
		t.Fatalf("expected no violations, got %v", got)
	}
}

func TestValidateCP12_MissingReg269ConfirmationIsSingleViolation(t *testing.T) {
	f := compliantCP12Fields()
	f["reg_26_9_confirmed"] = "false"

	got := ValidateCP12(f, compliantCP12Appliances())

	if len(got) != 1 {
		t.Fatalf("expected exactly one violation, got %v", got)
	}
	if got[0].Rule != "reg_26_9_confirmed" {
		t.Fatalf("expected rule reg_26_9_confirmed, got %q", got[0].Rule)
	}
	if got[0].Message != "Regulation 26(9) confirmation is required" {
		t.Fatalf("unexpected message %q", got[0].Message)
	}
}

func TestValidateCP12_TruthyValuesAreCaseInsensitive(t *testing.T) {
	for _, value := range []string{"true", "TRUE", "Yes", "yes"} {
		f := compliantCP12Fields()
		f["reg_26_9_confirmed"] = value
		if got := ValidateCP12(f, compliantCP12Appliances()); countRule(got, "reg_26_9_confirmed") != 0 {
			t.Fatalf("value %q should satisfy the confirmation, got %v", value, got)
		}
	}
	for _, value := range []string{"", "no", "1", "y"} {
		f := compliantCP12Fields()
		f["reg_26_9_confirmed"] = value
		if got := ValidateCP12(f, compliantCP12Appliances()); countRule(got, "reg_26_9_confirmed") != 1 {
			t.Fatalf("value %q should fail the confirmation, got %v", value, got)
		}
	}
}

func TestValidateCP12_RequiresAtLeastOneCompleteAppliance(t *testing.T) {
	got := ValidateCP12(compliantCP12Fields(), nil)
	if countRule(got, "appliance_required") != 1 {
		t.Fatalf("expected appliance_required violation, got %v", got)
	}

	// Type without location does not count as inspected.
	got = ValidateCP12(compliantCP12Fields(), []Appliance{{ApplianceType: "Boiler"}})
	if countRule(got, "appliance_required") != 1 {
		t.Fatalf("expected appliance_required violation for partial appliance, got %v", got)
	}
}

func TestValidateCP12_ClassificationOnSafeApplianceIsConflict(t *testing.T) {
	appliances := []Appliance{
		{ApplianceType: "Boiler", Location: "Kitchen", SafetyRating: "Safe", ClassificationCode: "AR"},
	}

	got := ValidateCP12(compliantCP12Fields(), appliances)

	if countRule(got, "classification_safe_conflict") != 1 {
		t.Fatalf("expected classification_safe_conflict, got %v", got)
	}
	for _, v := range got {
		if v.Rule == "classification_safe_conflict" && v.Message != "Classification code should only be set when safety rating is not safe" {
			t.Fatalf("unexpected message %q", v.Message)
		}
	}

	// Classification on an unsafe appliance is the expected shape.
	appliances[0].SafetyRating = "at_risk"
	if got := ValidateCP12(compliantCP12Fields(), appliances); countRule(got, "classification_safe_conflict") != 0 {
		t.Fatalf("classification on unsafe appliance should pass, got %v", got)
	}
}

func TestValidateCP12_DefectAndRemedialMustComeTogether(t *testing.T) {
	f := compliantCP12Fields()
	f["defect_description"] = "Corroded flue joint"

	got := ValidateCP12(f, compliantCP12Appliances())
	if countRule(got, "defect_pair_incomplete") != 1 {
		t.Fatalf("expected defect_pair_incomplete, got %v", got)
	}

	f["remedial_action"] = "Joint resealed and retested"
	got = ValidateCP12(f, compliantCP12Appliances())
	if countRule(got, "defect_pair_incomplete") != 0 {
		t.Fatalf("complete defect pair should pass, got %v", got)
	}

	delete(f, "defect_description")
	got = ValidateCP12(f, compliantCP12Appliances())
	if countRule(got, "defect_pair_incomplete") != 1 {
		t.Fatalf("remedial action without description should fail, got %v", got)
	}
}

func TestValidateCP12_MissingSignatures(t *testing.T) {
	f := compliantCP12Fields()
	delete(f, fields.KeyEngineerSignatureURL)
	delete(f, fields.KeyCustomerSignatureURL)

	got := ValidateCP12(f, compliantCP12Appliances())

	if countRule(got, "engineer_signature_required") != 1 {
		t.Fatalf("expected engineer_signature_required, got %v", got)
	}
	if countRule(got, "customer_signature_required") != 1 {
		t.Fatalf("expected customer_signature_required, got %v", got)
	}
}

func TestValidateCP12_AllRequiredFieldsReported(t *testing.T) {
	got := ValidateCP12(fields.Map{}, nil)

	for _, key := range cp12Required {
		if countRule(got, key+"_required") != 1 {
			t.Fatalf("expected %s_required violation, got %v", key, got)
		}
	}
}

func TestValidateBoilerService_DefectsFoundRequiresDetails(t *testing.T) {
	f := fields.Map{
		"property_address":   "12 High Street, Leeds",
		"service_date":       "2026-03-01",
		"engineer_name":      "J. Smith",
		"gas_safe_number":    "123456",
		"appliance_type":     "Boiler",
		"appliance_location": "Kitchen",
		"defects_found":      "yes",
	}

	got := ValidateBoilerService(f, nil)
	if len(got) != 1 || got[0].Rule != "defects_details_required" {
		t.Fatalf("expected only defects_details_required, got %v", got)
	}

	f["defects_details"] = "Low operating pressure"
	if got := ValidateBoilerService(f, nil); len(got) != 0 {
		t.Fatalf("expected no violations, got %v", got)
	}
}

func TestValidateGeneralWorks_RequiredFields(t *testing.T) {
	got := ValidateGeneralWorks(fields.Map{}, nil)
	for _, key := range generalWorksRequired {
		if countRule(got, key+"_required") != 1 {
			t.Fatalf("expected %s_required violation, got %v", key, got)
		}
	}

	f := fields.Map{
		"property_address": "12 High Street, Leeds",
		"work_date":        "2026-03-01",
		"engineer_name":    "J. Smith",
		"gas_safe_number":  "123456",
		"work_description": "Replaced gas hob supply pipe",
	}
	if got := ValidateGeneralWorks(f, nil); len(got) != 0 {
		t.Fatalf("expected no violations, got %v", got)
	}
}

func compliantWarningNoticeFields() fields.Map {
	return fields.Map{
		"property_address":   "12 High Street, Leeds",
		"issue_date":         "2026-03-01",
		"engineer_name":      "J. Smith",
		"gas_safe_number":    "123456",
		"appliance_type":     "Fire",
		"appliance_location": "Lounge",
		"classification":     "AT_RISK",
		"defect_details":     "Ventilation below requirement",
	}
}

func TestValidateWarningNotice_AtRiskNeedsNoIsolationProtocol(t *testing.T) {
	if got := ValidateWarningNotice(compliantWarningNoticeFields(), nil); len(got) != 0 {
		t.Fatalf("expected no violations, got %v", got)
	}
}

func TestValidateWarningNotice_ImmediatelyDangerousProtocol(t *testing.T) {
	f := compliantWarningNoticeFields()
	f["classification"] = "IMMEDIATELY_DANGEROUS"

	got := ValidateWarningNotice(f, nil)
	if countRule(got, "danger_label_required") != 1 {
		t.Fatalf("expected danger_label_required, got %v", got)
	}
	if countRule(got, "isolation_required") != 1 {
		t.Fatalf("expected isolation_required, got %v", got)
	}

	f["danger_do_not_use_label_fitted"] = "yes"
	f["gas_supply_isolated"] = "true"
	if got := ValidateWarningNotice(f, nil); len(got) != 0 {
		t.Fatalf("expected no violations once protocol satisfied, got %v", got)
	}

	// Recorded customer refusal is an accepted alternative to isolation.
	f["gas_supply_isolated"] = ""
	f["customer_refused_isolation"] = "yes"
	if got := ValidateWarningNotice(f, nil); len(got) != 0 {
		t.Fatalf("expected refusal to satisfy isolation rule, got %v", got)
	}
}

func TestValidatorFor_UngatedTypesReturnNil(t *testing.T) {
	for _, certType := range []string{"commissioning", "breakdown", "unknown"} {
		if ValidatorFor(certType) != nil {
			t.Fatalf("expected nil validator for %q", certType)
		}
	}
	for _, certType := range []string{"cp12", "boiler_service", "general_works", "warning_notice"} {
		if ValidatorFor(certType) == nil {
			t.Fatalf("expected validator for %q", certType)
		}
	}
}

func TestViolations_JoinUsesSemicolons(t *testing.T) {
	v := Violations{
		{Rule: "a", Message: "First problem"},
		{Rule: "b", Message: "Second problem"},
	}
	if got := v.Join(); got != "First problem; Second problem" {
		t.Fatalf("unexpected join %q", got)
	}
}
