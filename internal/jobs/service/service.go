package service

import (
	"context"
	"strings"
	"time"

	"gascert_backend/internal/events"
	"gascert_backend/internal/fields"
	"gascert_backend/internal/jobs/repository"
	"gascert_backend/internal/jobs/transport"
	"gascert_backend/platform/apperr"
	"gascert_backend/platform/sanitize"

	"github.com/google/uuid"
)

// ReminderScheduler enqueues a reminder for a scheduled job. Implemented
// by the asynq scheduler client; nil disables reminders.
type ReminderScheduler interface {
	ScheduleJobReminder(ctx context.Context, jobID, userID uuid.UUID, scheduledFor time.Time) error
}

// Service provides business logic for jobs, the field store, and CP12
// appliances.
type Service struct {
	repo      *repository.Repository
	clients   ClientResolver
	bus       events.Bus
	reminders ReminderScheduler
	store     ObjectStore
	buckets   Buckets
}

// New creates a jobs service.
func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// SetClientResolver injects the registry adapter (set after construction
// to keep module wiring acyclic).
func (s *Service) SetClientResolver(r ClientResolver) {
	s.clients = r
}

// SetEventBus injects the domain event bus.
func (s *Service) SetEventBus(bus events.Bus) {
	s.bus = bus
}

// SetReminderScheduler injects the reminder scheduler.
func (s *Service) SetReminderScheduler(r ReminderScheduler) {
	s.reminders = r
}

// Create starts a new certificate job in draft.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req transport.CreateJobRequest) (*repository.Job, error) {
	now := time.Now()
	job := repository.Job{
		ID:           uuid.New(),
		UserID:       userID,
		ClientID:     req.ClientID,
		ClientName:   sanitize.Text(req.ClientName),
		Address:      sanitize.Text(req.Address),
		Postcode:     strings.ToUpper(strings.TrimSpace(req.Postcode)),
		Status:       string(transport.JobStatusDraft),
		JobType:      req.JobType,
		ScheduledFor: req.ScheduledFor,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, &job); err != nil {
		return nil, err
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.JobCreated{
			BaseEvent:    events.NewBaseEvent(),
			JobID:        job.ID,
			UserID:       userID,
			JobType:      job.JobType,
			ScheduledFor: job.ScheduledFor,
		})
	}

	// Reminder scheduling is best effort; a failed enqueue never fails
	// the create.
	if s.reminders != nil && job.ScheduledFor != nil && job.ScheduledFor.After(now) {
		_ = s.reminders.ScheduleJobReminder(ctx, job.ID, userID, *job.ScheduledFor)
	}

	return &job, nil
}

// List returns the user's jobs.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]repository.Job, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Get returns one job.
func (s *Service) Get(ctx context.Context, userID, jobID uuid.UUID) (*repository.Job, error) {
	return s.repo.GetByID(ctx, jobID, userID)
}

// UpdateStatus moves a job between wizard lifecycle states. The
// completed state is owned by the certificate generator and cannot be
// set here.
func (s *Service) UpdateStatus(ctx context.Context, userID, jobID uuid.UUID, status string) error {
	if status == string(transport.JobStatusCompleted) {
		return apperr.Validation("completed is set by certificate generation")
	}
	return s.repo.UpdateStatus(ctx, jobID, userID, status)
}

// Delete removes a job and its child records.
func (s *Service) Delete(ctx context.Context, userID, jobID uuid.UUID) error {
	return s.repo.Delete(ctx, jobID, userID)
}

// SaveFields persists wizard field values for a job using the field
// store's delete-then-insert contract. Values are sanitized; keys are
// trimmed and blank keys dropped.
func (s *Service) SaveFields(ctx context.Context, userID, jobID uuid.UUID, values map[string]string) error {
	// Ownership check up front so a foreign job id reads as not found.
	if _, err := s.repo.GetByID(ctx, jobID, userID); err != nil {
		return err
	}

	cleaned := make(map[string]string, len(values))
	for key, value := range values {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		cleaned[key] = sanitize.Text(value)
	}
	if len(cleaned) == 0 {
		return apperr.Validation("no fields to save")
	}

	if err := s.repo.SaveFields(ctx, jobID, userID, cleaned); err != nil {
		return err
	}
	return s.repo.Touch(ctx, jobID, userID)
}

// SaveAppliances replaces the appliance set for a CP12 job. A
// classification code together with a "safe" rating is rejected here as
// well as at issuance time.
func (s *Service) SaveAppliances(ctx context.Context, userID, jobID uuid.UUID, req transport.SaveAppliancesRequest) ([]repository.Appliance, error) {
	job, err := s.repo.GetByID(ctx, jobID, userID)
	if err != nil {
		return nil, err
	}
	if job.JobType != string(transport.JobTypeCP12) {
		return nil, apperr.Validation("appliances are only recorded on CP12 jobs")
	}

	now := time.Now()
	appliances := make([]repository.Appliance, len(req.Appliances))
	for i, a := range req.Appliances {
		if err := checkApplianceClassification(a.SafetyRating, a.ClassificationCode); err != nil {
			return nil, err
		}
		appliances[i] = repository.Appliance{
			ID:                 uuid.New(),
			JobID:              jobID,
			UserID:             userID,
			ApplianceType:      sanitize.Text(a.ApplianceType),
			Location:           sanitize.Text(a.Location),
			MakeModel:          sanitize.Text(a.MakeModel),
			FlueType:           strings.TrimSpace(a.FlueType),
			OperatingPressure:  strings.TrimSpace(a.OperatingPressure),
			HeatInput:          strings.TrimSpace(a.HeatInput),
			CombustionReading:  strings.TrimSpace(a.CombustionReading),
			SafetyRating:       strings.TrimSpace(a.SafetyRating),
			ClassificationCode: strings.ToUpper(strings.TrimSpace(a.ClassificationCode)),
			DefectIdentified:   sanitize.Text(a.DefectIdentified),
			SortOrder:          i,
			CreatedAt:          now,
		}
	}

	if err := s.repo.ReplaceAppliances(ctx, jobID, userID, appliances); err != nil {
		return nil, err
	}
	if err := s.repo.Touch(ctx, jobID, userID); err != nil {
		return nil, err
	}
	return appliances, nil
}

// ListAppliances returns a job's appliances.
func (s *Service) ListAppliances(ctx context.Context, userID, jobID uuid.UUID) ([]repository.Appliance, error) {
	return s.repo.ListAppliances(ctx, jobID, userID)
}

// RecordPhoto stores a photo file key against a job.
func (s *Service) RecordPhoto(ctx context.Context, userID, jobID uuid.UUID, kind, fileKey string) error {
	if _, err := s.repo.GetByID(ctx, jobID, userID); err != nil {
		return err
	}
	return s.repo.InsertPhoto(ctx, &repository.Photo{
		ID:        uuid.New(),
		JobID:     jobID,
		UserID:    userID,
		Kind:      strings.TrimSpace(kind),
		FileKey:   fileKey,
		CreatedAt: time.Now(),
	})
}

// RecordSignature stores a signature file key against a job.
func (s *Service) RecordSignature(ctx context.Context, userID, jobID uuid.UUID, role, fileKey string) error {
	if _, err := s.repo.GetByID(ctx, jobID, userID); err != nil {
		return err
	}
	return s.repo.InsertSignature(ctx, &repository.Signature{
		ID:        uuid.New(),
		JobID:     jobID,
		UserID:    userID,
		Role:      role,
		FileKey:   fileKey,
		CreatedAt: time.Now(),
	})
}

// ListPhotos returns a job's photo records.
func (s *Service) ListPhotos(ctx context.Context, userID, jobID uuid.UUID) ([]repository.Photo, error) {
	return s.repo.ListPhotos(ctx, jobID, userID)
}

// WriteIssuedAt records the issuance timestamp in the field store. Used
// by the certificate generator after a final render.
func (s *Service) WriteIssuedAt(ctx context.Context, userID, jobID uuid.UUID, issuedAt time.Time) error {
	return s.repo.SaveFields(ctx, jobID, userID, map[string]string{
		fields.KeyIssuedAt: issuedAt.Format(time.RFC3339),
	})
}

// MarkCompleted transitions a job to completed. Reserved for the
// certificate generator; UpdateStatus rejects this state.
func (s *Service) MarkCompleted(ctx context.Context, userID, jobID uuid.UUID) error {
	return s.repo.UpdateStatus(ctx, jobID, userID, string(transport.JobStatusCompleted))
}

// checkApplianceClassification enforces the classification invariant: a
// classification code is only meaningful when the appliance is not safe.
func checkApplianceClassification(safetyRating, classificationCode string) error {
	if strings.TrimSpace(classificationCode) == "" {
		return nil
	}
	if strings.EqualFold(strings.TrimSpace(safetyRating), "safe") {
		return apperr.Validation("classification code should only be set when safety rating is not safe")
	}
	return nil
}
