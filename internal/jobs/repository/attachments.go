package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Photo records an uploaded job photo's storage key.
type Photo struct {
	ID        uuid.UUID `db:"id"`
	JobID     uuid.UUID `db:"job_id"`
	UserID    uuid.UUID `db:"user_id"`
	Kind      string    `db:"kind"`
	FileKey   string    `db:"file_key"`
	CreatedAt time.Time `db:"created_at"`
}

// Signature records an uploaded signature image for a job, one of
// role "engineer" or "customer".
type Signature struct {
	ID        uuid.UUID `db:"id"`
	JobID     uuid.UUID `db:"job_id"`
	UserID    uuid.UUID `db:"user_id"`
	Role      string    `db:"role"`
	FileKey   string    `db:"file_key"`
	CreatedAt time.Time `db:"created_at"`
}

// InsertPhoto records a photo file key for a job.
func (r *Repository) InsertPhoto(ctx context.Context, p *Photo) error {
	query := `INSERT INTO photos (id, job_id, user_id, kind, file_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.pool.Exec(ctx, query, p.ID, p.JobID, p.UserID, p.Kind, p.FileKey, p.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert photo: %w", err)
	}
	return nil
}

// ListPhotos returns a job's photos, oldest first.
func (r *Repository) ListPhotos(ctx context.Context, jobID, userID uuid.UUID) ([]Photo, error) {
	query := `SELECT id, job_id, user_id, kind, file_key, created_at
		FROM photos WHERE job_id = $1 AND user_id = $2 ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, jobID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query photos: %w", err)
	}
	defer rows.Close()

	var photos []Photo
	for rows.Next() {
		var p Photo
		if err := rows.Scan(&p.ID, &p.JobID, &p.UserID, &p.Kind, &p.FileKey, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate photos: %w", err)
	}
	return photos, nil
}

// InsertSignature records a signature file key for a job.
func (r *Repository) InsertSignature(ctx context.Context, s *Signature) error {
	query := `INSERT INTO signatures (id, job_id, user_id, role, file_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.pool.Exec(ctx, query, s.ID, s.JobID, s.UserID, s.Role, s.FileKey, s.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert signature: %w", err)
	}
	return nil
}

// ListSignatures returns a job's signatures, newest first so the latest
// per role is found first.
func (r *Repository) ListSignatures(ctx context.Context, jobID, userID uuid.UUID) ([]Signature, error) {
	query := `SELECT id, job_id, user_id, role, file_key, created_at
		FROM signatures WHERE job_id = $1 AND user_id = $2 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, jobID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query signatures: %w", err)
	}
	defer rows.Close()

	var signatures []Signature
	for rows.Next() {
		var s Signature
		if err := rows.Scan(&s.ID, &s.JobID, &s.UserID, &s.Role, &s.FileKey, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan signature: %w", err)
		}
		signatures = append(signatures, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate signatures: %w", err)
	}
	return signatures, nil
}
