package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"gascert_backend/internal/clients/repository"
	"gascert_backend/internal/clients/transport"
	"gascert_backend/platform/apperr"
	"gascert_backend/platform/phone"
	"gascert_backend/platform/sanitize"

	"github.com/google/uuid"
)

// Service provides the customer registry: the deduplicating read/write
// layer over client rows.
type Service struct {
	repo *repository.Repository
}

// New creates a clients service.
func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// List returns the user's clients as merged views, one per identity key,
// sorted by name.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]MergedClient, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	groups := GroupByIdentity(rows)
	merged := make([]MergedClient, 0, len(groups))
	for _, group := range groups {
		merged = append(merged, MergeGroup(group))
	}

	sort.Slice(merged, func(i, j int) bool {
		ni, nj := strings.ToLower(merged[i].Name), strings.ToLower(merged[j].Name)
		if ni == nj {
			return merged[i].ID.String() < merged[j].ID.String()
		}
		return ni < nj
	})
	return merged, nil
}

// Resolve returns the merged view for the group containing the given
// physical row id. Any id in a group resolves to the same view.
func (s *Service) Resolve(ctx context.Context, userID, clientID uuid.UUID) (*MergedClient, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, group := range GroupByIdentity(rows) {
		view := MergeGroup(group)
		if view.ContainsID(clientID) {
			return &view, nil
		}
	}
	return nil, apperr.NotFound("client not found")
}

// CreateOrMerge creates a client, or merges into an existing row when
// one with the same identity key already exists for this user. On a
// match only fields that are empty on the existing row are back-filled
// from non-empty input; populated fields are never overwritten, and no
// new row is created. Returns the row id and whether a row was inserted.
func (s *Service) CreateOrMerge(ctx context.Context, userID uuid.UUID, req transport.CreateClientRequest) (uuid.UUID, bool, error) {
	input := repository.Client{
		Name:            sanitize.Text(req.Name),
		Organization:    sanitize.Text(req.Organization),
		Email:           strings.TrimSpace(req.Email),
		Phone:           phone.NormalizeE164(req.Phone),
		Address:         sanitize.Text(req.Address),
		Postcode:        strings.ToUpper(strings.TrimSpace(req.Postcode)),
		LandlordName:    sanitize.Text(req.LandlordName),
		LandlordAddress: sanitize.Text(req.LandlordAddress),
	}

	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return uuid.Nil, false, err
	}

	key := NewIdentityKey(input.Name, input.Email)
	for i := range rows {
		if NewIdentityKey(rows[i].Name, rows[i].Email) != key {
			continue
		}

		existing := rows[i]
		if patchEmptyFields(&existing, input) {
			existing.UpdatedAt = time.Now()
			if err := s.repo.Update(ctx, &existing); err != nil {
				return uuid.Nil, false, err
			}
		}
		return existing.ID, false, nil
	}

	now := time.Now()
	input.ID = uuid.New()
	input.UserID = userID
	input.CreatedAt = now
	input.UpdatedAt = now
	if err := s.repo.Insert(ctx, &input); err != nil {
		return uuid.Nil, false, err
	}
	return input.ID, true, nil
}

// Get returns the merged view for a client id.
func (s *Service) Get(ctx context.Context, userID, clientID uuid.UUID) (*MergedClient, error) {
	return s.Resolve(ctx, userID, clientID)
}

// patchEmptyFields copies non-empty input values into empty fields on
// dst, reporting whether anything changed. Name and email are the
// identity key and are left alone.
func patchEmptyFields(dst *repository.Client, input repository.Client) bool {
	changed := false
	patch := func(field *string, value string) {
		if strings.TrimSpace(*field) == "" && strings.TrimSpace(value) != "" {
			*field = value
			changed = true
		}
	}

	patch(&dst.Organization, input.Organization)
	patch(&dst.Phone, input.Phone)
	patch(&dst.Address, input.Address)
	patch(&dst.Postcode, input.Postcode)
	patch(&dst.LandlordName, input.LandlordName)
	patch(&dst.LandlordAddress, input.LandlordAddress)
	return changed
}
