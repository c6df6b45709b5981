// Package events provides domain event definitions for decoupled
// communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"gascert_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// JobCreated is published when a new certificate job is started.
type JobCreated struct {
	BaseEvent
	JobID        uuid.UUID  `json:"jobId"`
	UserID       uuid.UUID  `json:"userId"`
	JobType      string     `json:"jobType"`
	ScheduledFor *time.Time `json:"scheduledFor,omitempty"`
}

func (e JobCreated) EventName() string { return "jobs.created" }

// CertificateIssued is published after a final (non-preview) certificate
// PDF has been generated and recorded.
type CertificateIssued struct {
	BaseEvent
	JobID         uuid.UUID `json:"jobId"`
	UserID        uuid.UUID `json:"userId"`
	CertType      string    `json:"certType"`
	PDFPath       string    `json:"pdfPath"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
}

func (e CertificateIssued) EventName() string { return "certificates.issued" }
