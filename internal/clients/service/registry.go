package service

import (
	"sort"
	"strings"
	"time"

	"gascert_backend/internal/clients/repository"
	"gascert_backend/internal/fields"

	"github.com/google/uuid"
)

// IdentityKey identifies a logical customer. Uniqueness of customers is
// defined by normalized (name, email), not by primary key: rows created
// at different times through different wizards may share a key and must
// be treated as one customer at read time.
type IdentityKey string

// NewIdentityKey builds the identity key for a name/email pair. Blank
// values normalize to the empty string, so two customers with the same
// name and no email collide deliberately.
func NewIdentityKey(name, email string) IdentityKey {
	return IdentityKey(normalizeIdentity(name) + "::" + normalizeIdentity(email))
}

func normalizeIdentity(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// MergedClient is the read-time view of one logical customer. ID and
// Name come from the primary (most recently updated) row; every other
// field is the first non-empty value across the group in recency order.
// ClientIDs retains all physical row ids so job lookups by client id
// match any row in the group.
type MergedClient struct {
	ID              uuid.UUID
	ClientIDs       []uuid.UUID
	Name            string
	Organization    string
	Email           string
	Phone           string
	Address         string
	Postcode        string
	LandlordName    string
	LandlordAddress string
	UpdatedAt       time.Time
}

// recency returns the timestamp used to order rows within a group:
// updated_at, falling back to created_at.
func recency(c repository.Client) time.Time {
	if !c.UpdatedAt.IsZero() {
		return c.UpdatedAt
	}
	return c.CreatedAt
}

// GroupByIdentity partitions client rows into groups sharing an
// identity key.
func GroupByIdentity(rows []repository.Client) map[IdentityKey][]repository.Client {
	groups := make(map[IdentityKey][]repository.Client)
	for _, row := range rows {
		key := NewIdentityKey(row.Name, row.Email)
		groups[key] = append(groups[key], row)
	}
	return groups
}

// MergeGroup collapses a group of rows with the same identity key into
// one view. Pure: the input slice is not modified, and equal inputs
// always produce equal outputs regardless of initial row order.
func MergeGroup(rows []repository.Client) MergedClient {
	sorted := append([]repository.Client(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, tj := recency(sorted[i]), recency(sorted[j])
		if ti.Equal(tj) {
			// Tie-break on id so merge output is deterministic.
			return sorted[i].ID.String() < sorted[j].ID.String()
		}
		return ti.After(tj)
	})

	primary := sorted[0]
	merged := MergedClient{
		ID:        primary.ID,
		Name:      primary.Name,
		UpdatedAt: recency(primary),
	}

	for _, row := range sorted {
		merged.ClientIDs = append(merged.ClientIDs, row.ID)
		merged.Organization = fields.FirstNonEmpty(merged.Organization, row.Organization)
		merged.Email = fields.FirstNonEmpty(merged.Email, row.Email)
		merged.Phone = fields.FirstNonEmpty(merged.Phone, row.Phone)
		merged.Address = fields.FirstNonEmpty(merged.Address, row.Address)
		merged.Postcode = fields.FirstNonEmpty(merged.Postcode, row.Postcode)
		merged.LandlordName = fields.FirstNonEmpty(merged.LandlordName, row.LandlordName)
		merged.LandlordAddress = fields.FirstNonEmpty(merged.LandlordAddress, row.LandlordAddress)
	}

	return merged
}

// ContainsID reports whether the merged view includes the physical row id.
func (m MergedClient) ContainsID(id uuid.UUID) bool {
	for _, cid := range m.ClientIDs {
		if cid == id {
			return true
		}
	}
	return false
}
