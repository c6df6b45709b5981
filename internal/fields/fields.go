// Package fields defines the canonical wizard field keys and the single
// precedence utility every resolver in the system uses. The same field
// (customer name, property address, ...) can arrive from a wizard
// submission, the job_fields store, the client record, or legacy job
// columns; precedence is always resolved through FirstNonEmpty so the
// rule lives in exactly one place.
package fields

import "strings"

// Canonical field keys shared across wizard types.
const (
	KeyCustomerName    = "customer_name"
	KeyCustomerAddress = "customer_address"
	KeyCustomerEmail   = "customer_email"
	KeyCustomerPhone   = "customer_phone"
	KeyCustomerContact = "customer_contact"
	KeyPropertyAddress = "property_address"
	KeyPostcode        = "postcode"
	KeyLandlordName    = "landlord_name"
	KeyLandlordAddress = "landlord_address"
)

// Keys populated by the system rather than a wizard form.
const (
	KeyEngineerSignatureURL = "engineer_signature_url"
	KeyCustomerSignatureURL = "customer_signature_url"
	KeyIssuedAt             = "issued_at"
)

// CanonicalKeys is the fixed key set the context merge operates over.
var CanonicalKeys = []string{
	KeyCustomerName,
	KeyCustomerAddress,
	KeyCustomerEmail,
	KeyCustomerPhone,
	KeyCustomerContact,
	KeyPropertyAddress,
	KeyPostcode,
	KeyLandlordName,
	KeyLandlordAddress,
}

// Map is a wizard field map: field key to stored value.
type Map map[string]string

// Get returns the trimmed value for a key, "" when absent.
func (m Map) Get(key string) string {
	return strings.TrimSpace(m[key])
}

// Has reports whether the key holds a non-empty value.
func (m Map) Has(key string) bool {
	return m.Get(key) != ""
}

// Clone returns a shallow copy of the map.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// FirstNonEmpty returns the first value that is non-empty after
// trimming, or "" when every value is blank. This is the precedence
// rule for the whole system: callers pass values highest-priority
// first.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// Merge combines wizard-submitted fields with job-context defaults over
// the canonical key set. Context wins unless empty: previously saved
// structured data takes priority over a blank resubmission, so
// revisiting a wizard step without reloading prior values never clears
// a field. Keys outside the canonical set pass through from the wizard
// map untouched. Pure and idempotent.
func Merge(wizard, context Map) Map {
	out := wizard.Clone()
	for _, key := range CanonicalKeys {
		out[key] = FirstNonEmpty(context[key], wizard[key])
	}
	return out
}

// IsTruthy reports whether a stored field value represents an
// affirmative answer. Wizards persist booleans inconsistently
// ("true", "YES", "yes"), so comparison is case-insensitive.
func IsTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes":
		return true
	}
	return false
}
