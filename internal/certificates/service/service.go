package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"gascert_backend/internal/certificates/repository"
	"gascert_backend/internal/events"
	"gascert_backend/internal/fields"
	"gascert_backend/platform/apperr"
	"gascert_backend/platform/logger"

	"github.com/google/uuid"
)

// JobData is the generator's view of a job: the row essentials plus the
// precedence-resolved field map and appliance list.
type JobData struct {
	JobID      uuid.UUID
	JobType    string
	Status     string
	Fields     fields.Map
	Appliances []Appliance
}

// JobGateway is the slice of the jobs module the generator needs.
type JobGateway interface {
	// ResolveJob loads a job with freshly merged canonical fields.
	ResolveJob(ctx context.Context, userID, jobID uuid.UUID) (*JobData, error)
	// WriteIssuedAt records the issuance timestamp as a job field.
	WriteIssuedAt(ctx context.Context, userID, jobID uuid.UUID, issuedAt time.Time) error
	// MarkCompleted transitions the job to completed.
	MarkCompleted(ctx context.Context, userID, jobID uuid.UUID) error
}

// Document is the renderer input for one certificate.
type Document struct {
	Fields     fields.Map
	Appliances []Appliance
	IssuedAt   time.Time
	Preview    bool
}

// Renderer converts a certificate document into PDF bytes.
type Renderer interface {
	Render(ctx context.Context, certType string, doc Document) ([]byte, error)
}

// ObjectStore is the slice of the storage adapter the generator needs.
type ObjectStore interface {
	UploadObject(ctx context.Context, bucket, key, contentType string, body io.Reader, size int64) error
	GenerateDownloadURL(ctx context.Context, bucket, key string) (string, error)
}

// CertificateStore persists issued certificate rows.
type CertificateStore interface {
	Upsert(ctx context.Context, cert *repository.Certificate) error
	GetByJobID(ctx context.Context, jobID, userID uuid.UUID) (*repository.Certificate, error)
}

// Result is the outcome of one generation run.
type Result struct {
	JobID   uuid.UUID
	PDFURL  string
	PDFPath string
	Preview bool
}

// Service orchestrates certificate generation: validation, rendering,
// upload, and the final-write sequence.
type Service struct {
	repo     CertificateStore
	jobs     JobGateway
	renderer Renderer
	store    ObjectStore
	bucket   string
	bus      events.Bus
	log      *logger.Logger
}

// New creates a certificates service.
func New(repo CertificateStore, jobs JobGateway, renderer Renderer, store ObjectStore, bucket string, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		jobs:     jobs,
		renderer: renderer,
		store:    store,
		bucket:   bucket,
		log:      log,
	}
}

// SetEventBus injects the domain event bus.
func (s *Service) SetEventBus(bus events.Bus) {
	s.bus = bus
}

// Generate produces a certificate PDF for a job. Preview runs skip
// validation and leave the database untouched; final runs are gated by
// the type's issuance validator and finish with the certificate upsert,
// the issued_at field write, and the completed status transition. Those
// three writes are sequential and individually atomic only: a failure
// partway leaves the earlier writes in place.
func (s *Service) Generate(ctx context.Context, userID, jobID uuid.UUID, previewOnly bool) (*Result, error) {
	job, err := s.jobs.ResolveJob(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}

	if !previewOnly {
		if validate := ValidatorFor(job.JobType); validate != nil {
			if violations := validate(job.Fields, job.Appliances); len(violations) > 0 {
				return nil, apperr.Validation(violations.Join())
			}
		}
	}

	issuedAt := time.Now()
	pdf, err := s.renderer.Render(ctx, job.JobType, Document{
		Fields:     job.Fields,
		Appliances: job.Appliances,
		IssuedAt:   issuedAt,
		Preview:    previewOnly,
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "certificate rendering failed", err)
	}

	key := objectKey(userID, jobID, previewOnly)
	if err := s.store.UploadObject(ctx, s.bucket, key, "application/pdf", bytes.NewReader(pdf), int64(len(pdf))); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "certificate upload failed", err)
	}

	url, err := s.store.GenerateDownloadURL(ctx, s.bucket, key)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "signing certificate url failed", err)
	}

	if previewOnly {
		return &Result{JobID: jobID, PDFURL: url, PDFPath: key, Preview: true}, nil
	}

	if err := s.repo.Upsert(ctx, &repository.Certificate{
		JobID:    jobID,
		UserID:   userID,
		CertType: job.JobType,
		PDFPath:  key,
	}); err != nil {
		return nil, err
	}
	if err := s.jobs.WriteIssuedAt(ctx, userID, jobID, issuedAt); err != nil {
		return nil, err
	}
	if err := s.jobs.MarkCompleted(ctx, userID, jobID); err != nil {
		return nil, err
	}

	if s.log != nil {
		s.log.CertificateEvent("issued", job.JobType, jobID.String())
	}
	if s.bus != nil {
		s.bus.Publish(ctx, events.CertificateIssued{
			BaseEvent:     events.NewBaseEvent(),
			JobID:         jobID,
			UserID:        userID,
			CertType:      job.JobType,
			PDFPath:       key,
			CustomerName:  job.Fields.Get(fields.KeyCustomerName),
			CustomerEmail: job.Fields.Get(fields.KeyCustomerEmail),
		})
	}

	return &Result{JobID: jobID, PDFURL: url, PDFPath: key, Preview: false}, nil
}

// Download returns a short-lived URL for a job's issued certificate.
func (s *Service) Download(ctx context.Context, userID, jobID uuid.UUID) (string, error) {
	cert, err := s.repo.GetByJobID(ctx, jobID, userID)
	if err != nil {
		return "", err
	}
	return s.store.GenerateDownloadURL(ctx, s.bucket, cert.PDFPath)
}

func objectKey(userID, jobID uuid.UUID, preview bool) string {
	prefix := "certificates"
	if preview {
		prefix = "previews"
	}
	return fmt.Sprintf("%s/%s/%s.pdf", prefix, userID, jobID)
}
