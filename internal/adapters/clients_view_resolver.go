// Package adapters wires modules together through their consumer-side
// interfaces, keeping the domain packages free of each other's types.
package adapters

import (
	"context"

	clientsvc "gascert_backend/internal/clients/service"
	jobsvc "gascert_backend/internal/jobs/service"

	"github.com/google/uuid"
)

// ClientViewResolver adapts the customer registry to the job context
// resolver. It implements jobs/service.ClientResolver.
type ClientViewResolver struct {
	clients *clientsvc.Service
}

// NewClientViewResolver creates the adapter.
func NewClientViewResolver(clients *clientsvc.Service) *ClientViewResolver {
	return &ClientViewResolver{clients: clients}
}

var _ jobsvc.ClientResolver = (*ClientViewResolver)(nil)

// ResolveView returns the merged registry view for the group containing
// the given client row id.
func (a *ClientViewResolver) ResolveView(ctx context.Context, userID, clientID uuid.UUID) (*jobsvc.ClientView, error) {
	merged, err := a.clients.Resolve(ctx, userID, clientID)
	if err != nil {
		return nil, err
	}
	return &jobsvc.ClientView{
		Name:            merged.Name,
		Organization:    merged.Organization,
		Email:           merged.Email,
		Phone:           merged.Phone,
		Address:         merged.Address,
		Postcode:        merged.Postcode,
		LandlordName:    merged.LandlordName,
		LandlordAddress: merged.LandlordAddress,
	}, nil
}
