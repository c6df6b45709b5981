package fields

import "testing"

func TestFirstNonEmpty(t *testing.T) {
	if got := FirstNonEmpty("", "  ", "second", "third"); got != "second" {
		t.Fatalf("expected second, got %q", got)
	}
	if got := FirstNonEmpty("first", "second"); got != "first" {
		t.Fatalf("expected first, got %q", got)
	}
	if got := FirstNonEmpty("", "   "); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
	if got := FirstNonEmpty(); got != "" {
		t.Fatalf("expected empty for no args, got %q", got)
	}
	if got := FirstNonEmpty("  padded  "); got != "padded" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
}

func TestMerge_ContextWinsUnlessEmpty(t *testing.T) {
	wizard := Map{
		KeyCustomerName:    "Wizard Name",
		KeyPropertyAddress: "12 Wizard Road",
		"flue_type":        "open",
	}
	context := Map{
		KeyCustomerName: "Context Name",
		KeyPostcode:     "SW1A 1AA",
	}

	merged := Merge(wizard, context)

	if merged[KeyCustomerName] != "Context Name" {
		t.Fatalf("context value should win, got %q", merged[KeyCustomerName])
	}
	if merged[KeyPropertyAddress] != "12 Wizard Road" {
		t.Fatalf("wizard value should fill empty context, got %q", merged[KeyPropertyAddress])
	}
	if merged[KeyPostcode] != "SW1A 1AA" {
		t.Fatalf("context-only value should appear, got %q", merged[KeyPostcode])
	}
	if merged["flue_type"] != "open" {
		t.Fatalf("non-canonical wizard keys should pass through, got %q", merged["flue_type"])
	}
}

func TestMerge_BlankResubmissionDoesNotClear(t *testing.T) {
	wizard := Map{KeyCustomerEmail: ""}
	context := Map{KeyCustomerEmail: "saved@example.com"}

	merged := Merge(wizard, context)
	if merged[KeyCustomerEmail] != "saved@example.com" {
		t.Fatalf("blank resubmission cleared saved value, got %q", merged[KeyCustomerEmail])
	}
}

func TestMerge_Idempotent(t *testing.T) {
	wizard := Map{KeyCustomerName: "A", KeyPostcode: "B1 1BB"}
	context := Map{KeyCustomerName: "C"}

	once := Merge(wizard, context)
	twice := Merge(once, context)

	if len(once) != len(twice) {
		t.Fatalf("merge not idempotent: %d vs %d keys", len(once), len(twice))
	}
	for k, v := range once {
		if twice[k] != v {
			t.Fatalf("merge not idempotent for %s: %q vs %q", k, v, twice[k])
		}
	}
}

func TestMerge_NeverPanicsOnNilMaps(t *testing.T) {
	merged := Merge(nil, nil)
	for _, key := range CanonicalKeys {
		if merged[key] != "" {
			t.Fatalf("expected empty value for %s", key)
		}
	}
}

func TestIsTruthy(t *testing.T) {
	truthy := []string{"true", "TRUE", "yes", "YES", " yes ", "True"}
	for _, v := range truthy {
		if !IsTruthy(v) {
			t.Fatalf("expected %q to be truthy", v)
		}
	}

	falsy := []string{"", "false", "no", "1", "y", "on"}
	for _, v := range falsy {
		if IsTruthy(v) {
			t.Fatalf("expected %q to be falsy", v)
		}
	}
}

func TestMapGet(t *testing.T) {
	m := Map{"k": "  v  "}
	if m.Get("k") != "v" {
		t.Fatalf("expected trimmed value, got %q", m.Get("k"))
	}
	if m.Get("missing") != "" {
		t.Fatal("expected empty for missing key")
	}
	if !m.Has("k") || m.Has("missing") {
		t.Fatal("Has misreported presence")
	}
}
