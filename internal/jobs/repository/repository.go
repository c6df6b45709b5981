package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gascert_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const jobNotFoundMsg = "job not found"

// Job is the database model for a certificate job. ClientName, Address
// and Postcode are legacy denormalized columns kept as a fallback for
// jobs created before structured client records existed; the context
// resolver consults them last.
type Job struct {
	ID           uuid.UUID  `db:"id"`
	UserID       uuid.UUID  `db:"user_id"`
	ClientID     *uuid.UUID `db:"client_id"`
	ClientName   string     `db:"client_name"`
	Address      string     `db:"address"`
	Postcode     string     `db:"postcode"`
	Status       string     `db:"status"`
	JobType      string     `db:"job_type"`
	ScheduledFor *time.Time `db:"scheduled_for"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

// Repository provides database operations for jobs and their child
// records (fields, appliances, photos, signatures).
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a jobs repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const jobColumns = `id, user_id, client_id, client_name, address, postcode,
	status, job_type, scheduled_for, created_at, updated_at`

func scanJob(row pgx.Row) (Job, error) {
	var j Job
	err := row.Scan(
		&j.ID, &j.UserID, &j.ClientID, &j.ClientName, &j.Address, &j.Postcode,
		&j.Status, &j.JobType, &j.ScheduledFor, &j.CreatedAt, &j.UpdatedAt,
	)
	return j, err
}

// Insert creates a job row.
func (r *Repository) Insert(ctx context.Context, j *Job) error {
	query := `
		INSERT INTO jobs (
			id, user_id, client_id, client_name, address, postcode,
			status, job_type, scheduled_for, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	if _, err := r.pool.Exec(ctx, query,
		j.ID, j.UserID, j.ClientID, j.ClientName, j.Address, j.Postcode,
		j.Status, j.JobType, j.ScheduledFor, j.CreatedAt, j.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert job: %w", err)
	}
	return nil
}

// GetByID retrieves a job scoped to its owner.
func (r *Repository) GetByID(ctx context.Context, id, userID uuid.UUID) (*Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1 AND user_id = $2`

	j, err := scanJob(r.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(jobNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &j, nil
}

// ListByUser returns the user's jobs, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate jobs: %w", err)
	}
	return jobs, nil
}

// UpdateStatus moves a job to a new lifecycle state.
func (r *Repository) UpdateStatus(ctx context.Context, id, userID uuid.UUID, status string) error {
	query := `UPDATE jobs SET status = $3, updated_at = $4 WHERE id = $1 AND user_id = $2`
	result, err := r.pool.Exec(ctx, query, id, userID, status, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(jobNotFoundMsg)
	}
	return nil
}

// Touch bumps a job's updated_at after a child-record write.
func (r *Repository) Touch(ctx context.Context, id, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE jobs SET updated_at = $3 WHERE id = $1 AND user_id = $2`,
		id, userID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to touch job: %w", err)
	}
	return nil
}

// Delete removes a job and cascades to its child records.
func (r *Repository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(jobNotFoundMsg)
	}
	return nil
}
