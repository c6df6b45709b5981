// Package transport defines request/response DTOs for certificates.
package transport

import "github.com/google/uuid"

// GenerateRequest asks for a certificate PDF for a job. PreviewOnly
// renders without validation and without touching the database.
type GenerateRequest struct {
	JobID       uuid.UUID `json:"jobId" validate:"required"`
	PreviewOnly bool      `json:"previewOnly"`
}

// GenerateResponse carries the generated PDF's short-lived URL.
type GenerateResponse struct {
	JobID   uuid.UUID `json:"jobId"`
	PDFURL  string    `json:"pdfUrl"`
	Preview bool      `json:"preview"`
}

// DownloadResponse carries a short-lived URL for an issued certificate.
type DownloadResponse struct {
	JobID  uuid.UUID `json:"jobId"`
	PDFURL string    `json:"pdfUrl"`
}
