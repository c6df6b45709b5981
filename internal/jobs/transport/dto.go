// Package transport defines request/response DTOs for the jobs module.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus is the lifecycle state of a certificate job.
type JobStatus string

const (
	JobStatusDraft              JobStatus = "draft"
	JobStatusActive             JobStatus = "active"
	JobStatusAwaitingSignatures JobStatus = "awaiting_signatures"
	JobStatusAwaitingReport     JobStatus = "awaiting_report"
	JobStatusCompleted          JobStatus = "completed"
)

// JobType identifies which certificate wizard a job belongs to.
type JobType string

const (
	JobTypeCP12          JobType = "cp12"
	JobTypeBoilerService JobType = "boiler_service"
	JobTypeCommissioning JobType = "commissioning"
	JobTypeBreakdown     JobType = "breakdown"
	JobTypeGeneralWorks  JobType = "general_works"
	JobTypeWarningNotice JobType = "warning_notice"
)

// CreateJobRequest starts a new certificate job in draft.
type CreateJobRequest struct {
	JobType      string     `json:"jobType" validate:"required,oneof=cp12 boiler_service commissioning breakdown general_works warning_notice"`
	ClientID     *uuid.UUID `json:"clientId"`
	ClientName   string     `json:"clientName" validate:"max=200"`
	Address      string     `json:"address" validate:"max=500"`
	Postcode     string     `json:"postcode" validate:"max=20"`
	ScheduledFor *time.Time `json:"scheduledFor"`
}

// UpdateJobStatusRequest moves a job to a new lifecycle state.
// Completion is reserved for the certificate generator.
type UpdateJobStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft active awaiting_signatures awaiting_report"`
}

// SaveFieldsRequest persists wizard field values for a job.
type SaveFieldsRequest struct {
	Fields map[string]string `json:"fields" validate:"required,min=1"`
}

// ApplianceRequest is one inspected appliance within a CP12 save.
type ApplianceRequest struct {
	ApplianceType      string `json:"applianceType" validate:"max=100"`
	Location           string `json:"location" validate:"max=100"`
	MakeModel          string `json:"makeModel" validate:"max=200"`
	FlueType           string `json:"flueType" validate:"max=50"`
	OperatingPressure  string `json:"operatingPressure" validate:"max=50"`
	HeatInput          string `json:"heatInput" validate:"max=50"`
	CombustionReading  string `json:"combustionReading" validate:"max=50"`
	SafetyRating       string `json:"safetyRating" validate:"max=50"`
	ClassificationCode string `json:"classificationCode" validate:"max=10"`
	DefectIdentified   string `json:"defectIdentified" validate:"max=500"`
}

// SaveAppliancesRequest replaces the appliance set for a CP12 job.
type SaveAppliancesRequest struct {
	Appliances []ApplianceRequest `json:"appliances" validate:"required,dive"`
}

// PresignUploadRequest asks for a presigned upload URL for a photo or
// signature file.
type PresignUploadRequest struct {
	FileName    string `json:"fileName" validate:"required,max=255"`
	ContentType string `json:"contentType" validate:"required,max=100"`
	SizeBytes   int64  `json:"sizeBytes" validate:"required,gt=0"`
	Kind        string `json:"kind" validate:"max=50"`
	Role        string `json:"role" validate:"omitempty,oneof=engineer customer"`
}

// RecordPhotoRequest confirms a completed photo upload.
type RecordPhotoRequest struct {
	FileKey string `json:"fileKey" validate:"required,max=512"`
	Kind    string `json:"kind" validate:"max=50"`
}

// RecordSignatureRequest confirms a completed signature upload.
type RecordSignatureRequest struct {
	FileKey string `json:"fileKey" validate:"required,max=512"`
	Role    string `json:"role" validate:"required,oneof=engineer customer"`
}

// PresignResponse carries a presigned URL back to the caller.
type PresignResponse struct {
	URL       string    `json:"url"`
	FileKey   string    `json:"fileKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// JobResponse is the API view of a job row.
type JobResponse struct {
	ID           uuid.UUID  `json:"id"`
	ClientID     *uuid.UUID `json:"clientId,omitempty"`
	ClientName   string     `json:"clientName,omitempty"`
	Address      string     `json:"address,omitempty"`
	Postcode     string     `json:"postcode,omitempty"`
	Status       JobStatus  `json:"status"`
	JobType      JobType    `json:"jobType"`
	ScheduledFor *time.Time `json:"scheduledFor,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// ApplianceResponse is the API view of an appliance row.
type ApplianceResponse struct {
	ID                 uuid.UUID `json:"id"`
	ApplianceType      string    `json:"applianceType,omitempty"`
	Location           string    `json:"location,omitempty"`
	MakeModel          string    `json:"makeModel,omitempty"`
	FlueType           string    `json:"flueType,omitempty"`
	OperatingPressure  string    `json:"operatingPressure,omitempty"`
	HeatInput          string    `json:"heatInput,omitempty"`
	CombustionReading  string    `json:"combustionReading,omitempty"`
	SafetyRating       string    `json:"safetyRating,omitempty"`
	ClassificationCode string    `json:"classificationCode,omitempty"`
	DefectIdentified   string    `json:"defectIdentified,omitempty"`
	SortOrder          int       `json:"sortOrder"`
}

// PhotoPreview is a photo with a short-lived download URL.
type PhotoPreview struct {
	ID         uuid.UUID `json:"id"`
	Kind       string    `json:"kind,omitempty"`
	PreviewURL string    `json:"previewUrl,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// WizardStateResponse is the merged view a wizard needs to resume a job:
// canonical fields after precedence resolution, appliances, and photo
// previews.
type WizardStateResponse struct {
	Job        JobResponse         `json:"job"`
	Fields     map[string]string   `json:"fields"`
	Appliances []ApplianceResponse `json:"appliances"`
	Photos     []PhotoPreview      `json:"photos"`
}
