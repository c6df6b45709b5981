package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"gascert_backend/internal/certificates/repository"
	"gascert_backend/internal/fields"
	"gascert_backend/platform/apperr"

	"github.com/google/uuid"
)

type fakeJobGateway struct {
	job    *JobData
	writes []string

	issuedAt time.Time
}

func (f *fakeJobGateway) ResolveJob(_ context.Context, _, _ uuid.UUID) (*JobData, error) {
	return f.job, nil
}

func (f *fakeJobGateway) WriteIssuedAt(_ context.Context, _, _ uuid.UUID, issuedAt time.Time) error {
	f.writes = append(f.writes, "issued_at")
	f.issuedAt = issuedAt
	return nil
}

func (f *fakeJobGateway) MarkCompleted(_ context.Context, _, _ uuid.UUID) error {
	f.writes = append(f.writes, "completed")
	return nil
}

type fakeStore struct {
	upserts []*repository.Certificate
}

func (f *fakeStore) Upsert(_ context.Context, cert *repository.Certificate) error {
	f.upserts = append(f.upserts, cert)
	return nil
}

func (f *fakeStore) GetByJobID(_ context.Context, jobID, userID uuid.UUID) (*repository.Certificate, error) {
	if len(f.upserts) == 0 {
		return nil, apperr.NotFound("certificate not found")
	}
	return f.upserts[len(f.upserts)-1], nil
}

type fakeRenderer struct {
	calls []Document
	fail  bool
}

func (f *fakeRenderer) Render(_ context.Context, certType string, doc Document) ([]byte, error) {
	f.calls = append(f.calls, doc)
	if f.fail {
		return nil, io.ErrUnexpectedEOF
	}
	return []byte("%PDF-1.4 " + certType), nil
}

type fakeObjectStore struct {
	uploads []string
}

func (f *fakeObjectStore) UploadObject(_ context.Context, _, key, _ string, _ io.Reader, _ int64) error {
	f.uploads = append(f.uploads, key)
	return nil
}

func (f *fakeObjectStore) GenerateDownloadURL(_ context.Context, _, key string) (string, error) {
	return "https://files.example.test/" + key, nil
}

func generatorFixture(job *JobData) (*Service, *fakeStore, *fakeJobGateway, *fakeRenderer, *fakeObjectStore) {
	store := &fakeStore{}
	jobs := &fakeJobGateway{job: job}
	renderer := &fakeRenderer{}
	objects := &fakeObjectStore{}
	svc := New(store, jobs, renderer, objects, "certificates", nil)
	return svc, store, jobs, renderer, objects
}

func incompleteCP12Job() *JobData {
	return &JobData{
		JobID:   uuid.New(),
		JobType: "cp12",
		Status:  "in_progress",
		Fields:  fields.Map{"property_address": "12 High Street, Leeds"},
	}
}

func TestGenerate_PreviewSkipsValidationAndWritesNothing(t *testing.T) {
	job := incompleteCP12Job()
	svc, store, jobs, renderer, objects := generatorFixture(job)

	result, err := svc.Generate(context.Background(), uuid.New(), job.JobID, true)
	if err != nil {
		t.Fatalf("preview of incomplete job should succeed, got %v", err)
	}
	if !result.Preview {
		t.Fatal("expected preview result")
	}
	if len(store.upserts) != 0 {
		t.Fatalf("preview must not persist a certificate, got %d upserts", len(store.upserts))
	}
	if len(jobs.writes) != 0 {
		t.Fatalf("preview must not touch the job, got writes %v", jobs.writes)
	}
	if len(renderer.calls) != 1 || !renderer.calls[0].Preview {
		t.Fatalf("expected one preview render, got %+v", renderer.calls)
	}
	if len(objects.uploads) != 1 || !strings.HasPrefix(objects.uploads[0], "previews/") {
		t.Fatalf("preview must upload under previews/, got %v", objects.uploads)
	}
}

func TestGenerate_FinalRejectsInvalidJobBeforeAnySideEffect(t *testing.T) {
	job := incompleteCP12Job()
	svc, store, jobs, renderer, objects := generatorFixture(job)

	_, err := svc.Generate(context.Background(), uuid.New(), job.JobID, false)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(renderer.calls) != 0 || len(objects.uploads) != 0 {
		t.Fatal("validation failure must abort before rendering and upload")
	}
	if len(store.upserts) != 0 || len(jobs.writes) != 0 {
		t.Fatal("validation failure must not write anything")
	}
	// Every violation is reported in one message.
	if msg := err.Error(); !strings.Contains(msg, "; ") {
		t.Fatalf("expected joined violation list, got %q", msg)
	}
}

func TestGenerate_FinalWriteSequence(t *testing.T) {
	job := &JobData{
		JobID:   uuid.New(),
		JobType: "general_works",
		Status:  "in_progress",
		Fields: fields.Map{
			"property_address": "12 High Street, Leeds",
			"work_date":        "2026-03-01",
			"engineer_name":    "J. Smith",
			"gas_safe_number":  "123456",
			"work_description": "Replaced gas hob supply pipe",
		},
	}
	svc, store, jobs, _, objects := generatorFixture(job)
	userID := uuid.New()

	result, err := svc.Generate(context.Background(), userID, job.JobID, false)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if result.Preview {
		t.Fatal("expected final result")
	}

	if len(store.upserts) != 1 {
		t.Fatalf("expected one certificate upsert, got %d", len(store.upserts))
	}
	cert := store.upserts[0]
	if cert.CertType != "general_works" || cert.JobID != job.JobID || cert.UserID != userID {
		t.Fatalf("unexpected certificate row %+v", cert)
	}
	if !strings.HasPrefix(cert.PDFPath, "certificates/") {
		t.Fatalf("final upload must live under certificates/, got %q", cert.PDFPath)
	}
	if len(objects.uploads) != 1 || objects.uploads[0] != cert.PDFPath {
		t.Fatalf("stored path must match uploaded key, got %v vs %q", objects.uploads, cert.PDFPath)
	}

	// Certificate row first, then the issuance timestamp, then status.
	if len(jobs.writes) != 2 || jobs.writes[0] != "issued_at" || jobs.writes[1] != "completed" {
		t.Fatalf("unexpected job write order %v", jobs.writes)
	}
	if jobs.issuedAt.IsZero() {
		t.Fatal("expected issued_at to carry the issuance time")
	}
}

func TestGenerate_UngatedTypeIssuesWithoutValidation(t *testing.T) {
	job := &JobData{
		JobID:   uuid.New(),
		JobType: "breakdown",
		Status:  "in_progress",
		Fields:  fields.Map{},
	}
	svc, store, _, _, _ := generatorFixture(job)

	if _, err := svc.Generate(context.Background(), uuid.New(), job.JobID, false); err != nil {
		t.Fatalf("breakdown reports are ungated, got %v", err)
	}
	if len(store.upserts) != 1 {
		t.Fatalf("expected certificate upsert, got %d", len(store.upserts))
	}
}

func TestGenerate_RenderFailureIsInternal(t *testing.T) {
	job := &JobData{JobID: uuid.New(), JobType: "commissioning", Fields: fields.Map{}}
	svc, store, jobs, renderer, _ := generatorFixture(job)
	renderer.fail = true

	_, err := svc.Generate(context.Background(), uuid.New(), job.JobID, false)
	if !apperr.Is(err, apperr.KindInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
	if len(store.upserts) != 0 || len(jobs.writes) != 0 {
		t.Fatal("render failure must not write anything")
	}
}

func TestDownload_ReturnsSignedURLForStoredPath(t *testing.T) {
	job := incompleteCP12Job()
	svc, store, _, _, _ := generatorFixture(job)
	userID := uuid.New()

	if _, err := svc.Download(context.Background(), userID, job.JobID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found before issuance, got %v", err)
	}

	store.upserts = append(store.upserts, &repository.Certificate{
		JobID: job.JobID, UserID: userID, CertType: "cp12", PDFPath: "certificates/x/y.pdf",
	})

	url, err := svc.Download(context.Background(), userID, job.JobID)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if url != "https://files.example.test/certificates/x/y.pdf" {
		t.Fatalf("unexpected url %q", url)
	}
}
