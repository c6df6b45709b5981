package service

import (
	"reflect"
	"testing"
	"time"

	"gascert_backend/internal/clients/repository"

	"github.com/google/uuid"
)

func TestNewIdentityKey_NormalizesAndCollidesOnBlanks(t *testing.T) {
	if NewIdentityKey(" John Smith ", "JOHN@Example.COM") != NewIdentityKey("john smith", "john@example.com") {
		t.Fatal("expected normalized keys to match")
	}
	if NewIdentityKey("John", "") != NewIdentityKey("john", "   ") {
		t.Fatal("blank emails should normalize to the same key")
	}
	if NewIdentityKey("John", "a@b.com") == NewIdentityKey("John", "c@d.com") {
		t.Fatal("different emails must not collide")
	}
}

func clientRow(name, email string, updated time.Time) repository.Client {
	return repository.Client{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		CreatedAt: updated.Add(-time.Hour),
		UpdatedAt: updated,
	}
}

func TestGroupByIdentity(t *testing.T) {
	now := time.Now()
	rows := []repository.Client{
		clientRow("John Smith", "john@example.com", now),
		clientRow("JOHN SMITH", "John@Example.com", now.Add(-time.Minute)),
		clientRow("Jane Doe", "jane@example.com", now),
	}

	groups := GroupByIdentity(rows)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if len(groups[NewIdentityKey("john smith", "john@example.com")]) != 2 {
		t.Fatal("expected the two John rows to group together")
	}
}

func TestMergeGroup_PrimaryIsMostRecent(t *testing.T) {
	now := time.Now()
	older := clientRow("John Smith", "john@example.com", now.Add(-time.Hour))
	older.Phone = "+447700900001"
	newer := clientRow("John Smith", "john@example.com", now)

	merged := MergeGroup([]repository.Client{older, newer})
	if merged.ID != newer.ID {
		t.Fatal("primary id should come from the most recently updated row")
	}
	if len(merged.ClientIDs) != 2 {
		t.Fatalf("expected both row ids retained, got %d", len(merged.ClientIDs))
	}
}

func TestMergeGroup_FieldLevelFirstNonEmptyInRecencyOrder(t *testing.T) {
	now := time.Now()
	newest := clientRow("John Smith", "john@example.com", now)
	newest.Postcode = "SW1A 1AA"
	middle := clientRow("John Smith", "john@example.com", now.Add(-time.Hour))
	middle.Phone = "+447700900123"
	middle.Postcode = "OLD 9ZZ"
	oldest := clientRow("John Smith", "john@example.com", now.Add(-2*time.Hour))
	oldest.LandlordName = "Acme Lettings"

	merged := MergeGroup([]repository.Client{oldest, middle, newest})

	if merged.Postcode != "SW1A 1AA" {
		t.Fatalf("newest non-empty postcode should win, got %q", merged.Postcode)
	}
	if merged.Phone != "+447700900123" {
		t.Fatalf("phone should fall through to the middle row, got %q", merged.Phone)
	}
	if merged.LandlordName != "Acme Lettings" {
		t.Fatalf("landlord name should fall through to the oldest row, got %q", merged.LandlordName)
	}
}

func TestMergeGroup_OrderIndependentAndIdempotent(t *testing.T) {
	now := time.Now()
	a := clientRow("John Smith", "john@example.com", now)
	a.Address = "1 New Road"
	b := clientRow("John Smith", "john@example.com", now.Add(-time.Hour))
	b.Organization = "Smith Ltd"
	c := clientRow("John Smith", "john@example.com", now.Add(-2*time.Hour))
	c.Address = "9 Old Road"

	first := MergeGroup([]repository.Client{a, b, c})
	second := MergeGroup([]repository.Client{c, a, b})

	if first.ID != second.ID || first.Address != second.Address ||
		first.Organization != second.Organization {
		t.Fatal("merge output must not depend on input row order")
	}

	again := MergeGroup([]repository.Client{a, b, c})
	if !reflect.DeepEqual(stripIDs(again), stripIDs(first)) {
		t.Fatal("merge must be idempotent for identical input")
	}
	if first.Address != "1 New Road" {
		t.Fatalf("expected newest address, got %q", first.Address)
	}
}

// stripIDs strips the slice field so struct equality can be used.
func stripIDs(m MergedClient) MergedClient {
	m.ClientIDs = nil
	return m
}

func TestMergeGroup_TieBreakIsDeterministic(t *testing.T) {
	now := time.Now()
	a := clientRow("John Smith", "john@example.com", now)
	b := clientRow("John Smith", "john@example.com", now)

	first := MergeGroup([]repository.Client{a, b})
	second := MergeGroup([]repository.Client{b, a})
	if first.ID != second.ID {
		t.Fatal("equal-recency rows must pick the same primary either way")
	}
}

func TestPatchEmptyFields(t *testing.T) {
	existing := repository.Client{
		Name:  "John Smith",
		Email: "john@example.com",
		Phone: "+447700900123",
	}
	input := repository.Client{
		Phone:    "+447700999999",
		Address:  "5 Filled Lane",
		Postcode: "AB1 2CD",
	}

	changed := patchEmptyFields(&existing, input)
	if !changed {
		t.Fatal("expected back-fill to report a change")
	}
	if existing.Phone != "+447700900123" {
		t.Fatal("populated field must never be overwritten")
	}
	if existing.Address != "5 Filled Lane" || existing.Postcode != "AB1 2CD" {
		t.Fatal("empty fields should be back-filled from input")
	}

	if patchEmptyFields(&existing, input) {
		t.Fatal("second patch with same input should be a no-op")
	}
}
