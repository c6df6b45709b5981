// Package repository provides data access for issued certificates.
package repository

import (
	"context"
	"errors"
	"time"

	"gascert_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Certificate is one issued certificate row. At most one exists per
// job; regeneration overwrites the stored path.
type Certificate struct {
	ID        uuid.UUID
	JobID     uuid.UUID
	UserID    uuid.UUID
	CertType  string
	PDFPath   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository provides certificate data access.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a certificates repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const undefinedColumnCode = "42703"

func isUndefinedColumn(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == undefinedColumnCode
}

// Upsert records the latest generated PDF path for a job, updating the
// existing row when one exists. Deployments that predate the pdf_path
// column still carry pdf_url; writes retry against that column when
// Postgres reports 42703 (undefined column).
func (r *Repository) Upsert(ctx context.Context, cert *Certificate) error {
	err := r.upsertColumn(ctx, cert, "pdf_path")
	if isUndefinedColumn(err) {
		err = r.upsertColumn(ctx, cert, "pdf_url")
	}
	return err
}

func (r *Repository) upsertColumn(ctx context.Context, cert *Certificate, pathColumn string) error {
	now := time.Now()

	tag, err := r.pool.Exec(ctx, `
		UPDATE certificates
		SET cert_type = $1, `+pathColumn+` = $2, updated_at = $3
		WHERE job_id = $4 AND user_id = $5`,
		cert.CertType, cert.PDFPath, now, cert.JobID, cert.UserID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		cert.UpdatedAt = now
		return nil
	}

	cert.ID = uuid.New()
	cert.CreatedAt = now
	cert.UpdatedAt = now
	_, err = r.pool.Exec(ctx, `
		INSERT INTO certificates (id, job_id, user_id, cert_type, `+pathColumn+`, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		cert.ID, cert.JobID, cert.UserID, cert.CertType, cert.PDFPath, cert.CreatedAt, cert.UpdatedAt,
	)
	return err
}

// GetByJobID returns the issued certificate for a job.
func (r *Repository) GetByJobID(ctx context.Context, jobID, userID uuid.UUID) (*Certificate, error) {
	cert, err := r.getByJobIDColumn(ctx, jobID, userID, "pdf_path")
	if isUndefinedColumn(err) {
		cert, err = r.getByJobIDColumn(ctx, jobID, userID, "pdf_url")
	}
	return cert, err
}

func (r *Repository) getByJobIDColumn(ctx context.Context, jobID, userID uuid.UUID, pathColumn string) (*Certificate, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, job_id, user_id, cert_type, `+pathColumn+`, created_at, updated_at
		FROM certificates
		WHERE job_id = $1 AND user_id = $2`,
		jobID, userID,
	)

	var cert Certificate
	err := row.Scan(&cert.ID, &cert.JobID, &cert.UserID, &cert.CertType, &cert.PDFPath, &cert.CreatedAt, &cert.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("certificate not found")
	}
	if err != nil {
		return nil, err
	}
	return &cert, nil
}
