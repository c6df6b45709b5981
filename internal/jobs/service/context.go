package service

import (
	"context"

	"gascert_backend/internal/fields"
	"gascert_backend/internal/jobs/repository"

	"github.com/google/uuid"
)

// ClientView captures the merged client fields the job context resolver
// needs, without importing the clients domain.
type ClientView struct {
	Name            string
	Organization    string
	Email           string
	Phone           string
	Address         string
	Postcode        string
	LandlordName    string
	LandlordAddress string
}

// ClientResolver resolves a job's linked client to its merged registry
// view. Implemented by an adapter wrapping the clients service.
type ClientResolver interface {
	ResolveView(ctx context.Context, userID, clientID uuid.UUID) (*ClientView, error)
}

// JobContext is the canonical view of one job: the row, its stored
// wizard fields, its linked client's merged view (nil when unlinked),
// and its latest signatures.
type JobContext struct {
	Job        repository.Job
	Client     *ClientView
	Stored     fields.Map
	Signatures map[string]string // role -> file key
}

// ResolveContext loads a job and assembles its canonical context. The
// linked client resolves through the registry; a client_id that no
// longer resolves degrades silently to nil so legacy jobs keep working.
func (s *Service) ResolveContext(ctx context.Context, userID, jobID uuid.UUID) (*JobContext, error) {
	job, err := s.repo.GetByID(ctx, jobID, userID)
	if err != nil {
		return nil, err
	}

	jc := &JobContext{Job: *job, Signatures: make(map[string]string)}

	if job.ClientID != nil && s.clients != nil {
		if view, err := s.clients.ResolveView(ctx, userID, *job.ClientID); err == nil {
			jc.Client = view
		}
	}

	stored, err := s.repo.GetFields(ctx, jobID, userID)
	if err != nil {
		return nil, err
	}
	jc.Stored = fields.Map(stored)

	sigs, err := s.repo.ListSignatures(ctx, jobID, userID)
	if err != nil {
		return nil, err
	}
	for _, sig := range sigs {
		// Newest first; keep only the latest per role.
		if _, ok := jc.Signatures[sig.Role]; !ok {
			jc.Signatures[sig.Role] = sig.FileKey
		}
	}

	return jc, nil
}

// CanonicalFields resolves every canonical key once, highest priority
// first: stored wizard field override, then the merged client record,
// then the job row's legacy denormalized columns. This ordering is what
// lets newer structured fields supersede old free-text values without a
// data migration.
func (c *JobContext) CanonicalFields() fields.Map {
	client := c.Client
	if client == nil {
		client = &ClientView{}
	}

	out := fields.Map{
		fields.KeyCustomerName:    fields.FirstNonEmpty(c.Stored[fields.KeyCustomerName], client.Name, c.Job.ClientName),
		fields.KeyCustomerAddress: fields.FirstNonEmpty(c.Stored[fields.KeyCustomerAddress], client.Address, c.Job.Address),
		fields.KeyCustomerEmail:   fields.FirstNonEmpty(c.Stored[fields.KeyCustomerEmail], client.Email),
		fields.KeyCustomerPhone:   fields.FirstNonEmpty(c.Stored[fields.KeyCustomerPhone], client.Phone),
		fields.KeyCustomerContact: fields.FirstNonEmpty(c.Stored[fields.KeyCustomerContact], client.Organization),
		fields.KeyPropertyAddress: fields.FirstNonEmpty(c.Stored[fields.KeyPropertyAddress], client.Address, c.Job.Address),
		fields.KeyPostcode:        fields.FirstNonEmpty(c.Stored[fields.KeyPostcode], client.Postcode, c.Job.Postcode),
		fields.KeyLandlordName:    fields.FirstNonEmpty(c.Stored[fields.KeyLandlordName], client.LandlordName),
		fields.KeyLandlordAddress: fields.FirstNonEmpty(c.Stored[fields.KeyLandlordAddress], client.LandlordAddress),
	}
	return out
}

// ResolvedFields returns the full merged field map for the job: every
// stored wizard field, with canonical keys resolved through the
// precedence chain and signature URLs surfaced under their well-known
// keys. Stored values win over signature table entries so an explicit
// override sticks.
func (c *JobContext) ResolvedFields() fields.Map {
	out := fields.Merge(c.Stored, c.CanonicalFields())
	out[fields.KeyEngineerSignatureURL] = fields.FirstNonEmpty(
		c.Stored[fields.KeyEngineerSignatureURL], c.Signatures["engineer"])
	out[fields.KeyCustomerSignatureURL] = fields.FirstNonEmpty(
		c.Stored[fields.KeyCustomerSignatureURL], c.Signatures["customer"])
	return out
}
