package service

import (
	"strings"

	"gascert_backend/internal/fields"
)

// Violation is one issuance rule failure. Rule is a stable identifier
// for exact-match testing; Message is what the engineer sees.
type Violation struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Violations is an ordered rule failure list; empty means eligible for
// issuance.
type Violations []Violation

// Join renders the list as a single semicolon-joined message.
func (v Violations) Join() string {
	msgs := make([]string, len(v))
	for i, violation := range v {
		msgs[i] = violation.Message
	}
	return strings.Join(msgs, "; ")
}

// Appliance is the validator's view of one inspected CP12 appliance.
type Appliance struct {
	ApplianceType      string
	Location           string
	MakeModel          string
	FlueType           string
	OperatingPressure  string
	HeatInput          string
	CombustionReading  string
	SafetyRating       string
	ClassificationCode string
	DefectIdentified   string
}

// Validator checks a merged field map (and appliances where relevant)
// for issuance readiness.
type Validator func(f fields.Map, appliances []Appliance) Violations

// ValidatorFor returns the issuance validator for a certificate type,
// or nil when the type has no issuance rules (commissioning and
// breakdown reports are issued without gating).
func ValidatorFor(certType string) Validator {
	switch certType {
	case "cp12":
		return ValidateCP12
	case "boiler_service":
		return ValidateBoilerService
	case "general_works":
		return ValidateGeneralWorks
	case "warning_notice":
		return ValidateWarningNotice
	default:
		return nil
	}
}

func requireFields(f fields.Map, out Violations, keys []string, labels map[string]string) Violations {
	for _, key := range keys {
		if strings.TrimSpace(f.Get(key)) == "" {
			out = append(out, Violation{
				Rule:    key + "_required",
				Message: labels[key] + " is required",
			})
		}
	}
	return out
}

var cp12Required = []string{
	"property_address",
	"inspection_date",
	"landlord_name",
	"landlord_address",
	"engineer_name",
	"gas_safe_number",
}

var fieldLabels = map[string]string{
	"property_address":   "Property address",
	"inspection_date":    "Inspection date",
	"landlord_name":      "Landlord name",
	"landlord_address":   "Landlord address",
	"engineer_name":      "Engineer name",
	"gas_safe_number":    "Gas Safe registration number",
	"service_date":       "Service date",
	"appliance_type":     "Appliance type",
	"appliance_location": "Appliance location",
	"work_date":          "Work date",
	"work_description":   "Description of work carried out",
	"issue_date":         "Issue date",
	"classification":     "Warning classification",
	"defect_details":     "Defect details",
}

// ValidateCP12 checks a CP12 (Landlord Gas Safety Record) for issuance
// readiness.
func ValidateCP12(f fields.Map, appliances []Appliance) Violations {
	var out Violations

	out = requireFields(f, out, cp12Required, fieldLabels)

	if !fields.IsTruthy(f.Get("reg_26_9_confirmed")) {
		out = append(out, Violation{
			Rule:    "reg_26_9_confirmed",
			Message: "Regulation 26(9) confirmation is required",
		})
	}

	inspected := false
	for _, a := range appliances {
		if strings.TrimSpace(a.ApplianceType) != "" && strings.TrimSpace(a.Location) != "" {
			inspected = true
			break
		}
	}
	if !inspected {
		out = append(out, Violation{
			Rule:    "appliance_required",
			Message: "At least one appliance with type and location is required",
		})
	}

	for _, a := range appliances {
		if strings.TrimSpace(a.ClassificationCode) == "" {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(a.SafetyRating), "safe") {
			out = append(out, Violation{
				Rule:    "classification_safe_conflict",
				Message: "Classification code should only be set when safety rating is not safe",
			})
		}
	}

	defect := strings.TrimSpace(f.Get("defect_description"))
	remedial := strings.TrimSpace(f.Get("remedial_action"))
	if (defect == "") != (remedial == "") {
		out = append(out, Violation{
			Rule:    "defect_pair_incomplete",
			Message: "Defect description and remedial action must be provided together",
		})
	}

	if strings.TrimSpace(f.Get(fields.KeyEngineerSignatureURL)) == "" {
		out = append(out, Violation{
			Rule:    "engineer_signature_required",
			Message: "Engineer signature is required",
		})
	}
	if strings.TrimSpace(f.Get(fields.KeyCustomerSignatureURL)) == "" {
		out = append(out, Violation{
			Rule:    "customer_signature_required",
			Message: "Customer signature is required",
		})
	}

	return out
}

var boilerServiceRequired = []string{
	"property_address",
	"service_date",
	"engineer_name",
	"gas_safe_number",
	"appliance_type",
	"appliance_location",
}

// ValidateBoilerService checks a boiler service record for issuance
// readiness.
func ValidateBoilerService(f fields.Map, _ []Appliance) Violations {
	var out Violations
	out = requireFields(f, out, boilerServiceRequired, fieldLabels)
	out = requireDefectDetails(f, out)
	return out
}

var generalWorksRequired = []string{
	"property_address",
	"work_date",
	"engineer_name",
	"gas_safe_number",
	"work_description",
}

// ValidateGeneralWorks checks a general works record for issuance
// readiness.
func ValidateGeneralWorks(f fields.Map, _ []Appliance) Violations {
	var out Violations
	out = requireFields(f, out, generalWorksRequired, fieldLabels)
	out = requireDefectDetails(f, out)
	return out
}

var warningNoticeRequired = []string{
	"property_address",
	"issue_date",
	"engineer_name",
	"gas_safe_number",
	"appliance_type",
	"appliance_location",
	"classification",
	"defect_details",
}

// ValidateWarningNotice checks a gas warning notice for issuance
// readiness, including the immediately-dangerous isolation protocol.
func ValidateWarningNotice(f fields.Map, _ []Appliance) Violations {
	var out Violations
	out = requireFields(f, out, warningNoticeRequired, fieldLabels)
	out = requireDefectDetails(f, out)

	if strings.TrimSpace(f.Get("classification")) == "IMMEDIATELY_DANGEROUS" {
		if !fields.IsTruthy(f.Get("danger_do_not_use_label_fitted")) {
			out = append(out, Violation{
				Rule:    "danger_label_required",
				Message: "A Danger Do Not Use label must be fitted for an immediately dangerous installation",
			})
		}
		if !fields.IsTruthy(f.Get("gas_supply_isolated")) && !fields.IsTruthy(f.Get("customer_refused_isolation")) {
			out = append(out, Violation{
				Rule:    "isolation_required",
				Message: "The gas supply must be isolated, or customer refusal of isolation must be recorded",
			})
		}
	}

	return out
}

// requireDefectDetails enforces the shared conditional: when the
// defects-found flag is truthy, details must be given.
func requireDefectDetails(f fields.Map, out Violations) Violations {
	if fields.IsTruthy(f.Get("defects_found")) && strings.TrimSpace(f.Get("defects_details")) == "" {
		out = append(out, Violation{
			Rule:    "defects_details_required",
			Message: "Details of the defects found are required",
		})
	}
	return out
}
