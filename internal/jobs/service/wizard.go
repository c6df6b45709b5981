package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gascert_backend/internal/jobs/repository"
	"gascert_backend/internal/jobs/transport"
	"gascert_backend/platform/apperr"

	"github.com/google/uuid"
)

// PresignedFile is an object key together with a short-lived URL.
type PresignedFile struct {
	URL       string
	FileKey   string
	ExpiresAt time.Time
}

// ObjectStore is the slice of the storage adapter the jobs module needs:
// presigned upload URLs for photos and signatures, and presigned
// download URLs for wizard previews.
type ObjectStore interface {
	GenerateUploadURL(ctx context.Context, bucket, folder, fileName, contentType string, sizeBytes int64) (*PresignedFile, error)
	GenerateDownloadURL(ctx context.Context, bucket, fileKey string) (*PresignedFile, error)
}

// Buckets names the object storage buckets the jobs module writes to.
type Buckets struct {
	Photos     string
	Signatures string
}

// SetObjectStore injects the storage adapter and bucket names.
func (s *Service) SetObjectStore(store ObjectStore, buckets Buckets) {
	s.store = store
	s.buckets = buckets
}

// PresignPhotoUpload returns a presigned PUT URL for a job photo. The
// returned file key must be echoed back on a follow-up record call once
// the upload completes.
func (s *Service) PresignPhotoUpload(ctx context.Context, userID, jobID uuid.UUID, req transport.PresignUploadRequest) (*PresignedFile, error) {
	if s.store == nil {
		return nil, apperr.Internal("object storage is not configured")
	}
	if _, err := s.repo.GetByID(ctx, jobID, userID); err != nil {
		return nil, err
	}
	folder := fmt.Sprintf("%s/%s", userID, jobID)
	presigned, err := s.store.GenerateUploadURL(ctx, s.buckets.Photos, folder, req.FileName, req.ContentType, req.SizeBytes)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}
	return presigned, nil
}

// PresignSignatureUpload returns a presigned PUT URL for an engineer or
// customer signature image.
func (s *Service) PresignSignatureUpload(ctx context.Context, userID, jobID uuid.UUID, req transport.PresignUploadRequest) (*PresignedFile, error) {
	if s.store == nil {
		return nil, apperr.Internal("object storage is not configured")
	}
	if req.Role == "" {
		return nil, apperr.Validation("signature role is required")
	}
	if !strings.HasPrefix(strings.ToLower(req.ContentType), "image/") {
		return nil, apperr.Validation("signatures must be image uploads")
	}
	if _, err := s.repo.GetByID(ctx, jobID, userID); err != nil {
		return nil, err
	}
	folder := fmt.Sprintf("%s/%s/%s", userID, jobID, req.Role)
	presigned, err := s.store.GenerateUploadURL(ctx, s.buckets.Signatures, folder, req.FileName, req.ContentType, req.SizeBytes)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}
	return presigned, nil
}

// WizardState assembles everything a wizard needs to resume a job: the
// job row, the precedence-resolved field map, CP12 appliances, and photo
// records with short-lived preview URLs.
func (s *Service) WizardState(ctx context.Context, userID, jobID uuid.UUID) (*transport.WizardStateResponse, error) {
	jc, err := s.ResolveContext(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}

	resp := transport.WizardStateResponse{
		Job:        ToJobResponse(&jc.Job),
		Fields:     jc.ResolvedFields(),
		Appliances: []transport.ApplianceResponse{},
		Photos:     []transport.PhotoPreview{},
	}

	if jc.Job.JobType == string(transport.JobTypeCP12) {
		appliances, err := s.repo.ListAppliances(ctx, jobID, userID)
		if err != nil {
			return nil, err
		}
		for _, a := range appliances {
			resp.Appliances = append(resp.Appliances, ToApplianceResponse(a))
		}
	}

	photos, err := s.repo.ListPhotos(ctx, jobID, userID)
	if err != nil {
		return nil, err
	}
	for _, p := range photos {
		preview := transport.PhotoPreview{
			ID:        p.ID,
			Kind:      p.Kind,
			CreatedAt: p.CreatedAt,
		}
		// Previews degrade to key-only entries when presigning fails.
		if s.store != nil {
			if signed, err := s.store.GenerateDownloadURL(ctx, s.buckets.Photos, p.FileKey); err == nil {
				preview.PreviewURL = signed.URL
			}
		}
		resp.Photos = append(resp.Photos, preview)
	}

	return &resp, nil
}

// ToJobResponse maps a job row to its API view.
func ToJobResponse(j *repository.Job) transport.JobResponse {
	return transport.JobResponse{
		ID:           j.ID,
		ClientID:     j.ClientID,
		ClientName:   j.ClientName,
		Address:      j.Address,
		Postcode:     j.Postcode,
		Status:       transport.JobStatus(j.Status),
		JobType:      transport.JobType(j.JobType),
		ScheduledFor: j.ScheduledFor,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}
}

// ToApplianceResponse maps an appliance row to its API view.
func ToApplianceResponse(a repository.Appliance) transport.ApplianceResponse {
	return transport.ApplianceResponse{
		ID:                 a.ID,
		ApplianceType:      a.ApplianceType,
		Location:           a.Location,
		MakeModel:          a.MakeModel,
		FlueType:           a.FlueType,
		OperatingPressure:  a.OperatingPressure,
		HeatInput:          a.HeatInput,
		CombustionReading:  a.CombustionReading,
		SafetyRating:       a.SafetyRating,
		ClassificationCode: a.ClassificationCode,
		DefectIdentified:   a.DefectIdentified,
		SortOrder:          a.SortOrder,
	}
}
