// Package transport defines request/response DTOs for the clients module.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// CreateClientRequest is the payload for creating (or merging into) a client.
type CreateClientRequest struct {
	Name            string `json:"name" validate:"required,max=200"`
	Organization    string `json:"organization" validate:"max=200"`
	Email           string `json:"email" validate:"omitempty,email"`
	Phone           string `json:"phone" validate:"max=50"`
	Address         string `json:"address" validate:"max=500"`
	Postcode        string `json:"postcode" validate:"max=20"`
	LandlordName    string `json:"landlordName" validate:"max=200"`
	LandlordAddress string `json:"landlordAddress" validate:"max=500"`
}

// ClientResponse is the merged view of one logical client.
type ClientResponse struct {
	ID              uuid.UUID   `json:"id"`
	ClientIDs       []uuid.UUID `json:"clientIds"`
	Name            string      `json:"name"`
	Organization    string      `json:"organization,omitempty"`
	Email           string      `json:"email,omitempty"`
	Phone           string      `json:"phone,omitempty"`
	Address         string      `json:"address,omitempty"`
	Postcode        string      `json:"postcode,omitempty"`
	LandlordName    string      `json:"landlordName,omitempty"`
	LandlordAddress string      `json:"landlordAddress,omitempty"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// CreateClientResponse reports the row the create resolved to.
type CreateClientResponse struct {
	ID      uuid.UUID `json:"id"`
	Created bool      `json:"created"`
}
