package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GetFields returns the stored field map for a job.
func (r *Repository) GetFields(ctx context.Context, jobID, userID uuid.UUID) (map[string]string, error) {
	query := `SELECT key, value FROM job_fields WHERE job_id = $1 AND user_id = $2`

	rows, err := r.pool.Query(ctx, query, jobID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query job fields: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan job field: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate job fields: %w", err)
	}
	return out, nil
}

// SaveFields overwrites the given field keys for a job.
//
// Write contract: this is a delete of the matching keys followed by a
// batch insert, issued as two separate statements with NO wrapping
// transaction. Two concurrent saves touching overlapping keys can
// interleave and leave duplicate or lost values. The dominant usage is
// one engineer editing one job serially, so this matches the original
// system's behavior; do not quietly convert it to an atomic upsert.
func (r *Repository) SaveFields(ctx context.Context, jobID, userID uuid.UUID, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}

	if _, err := r.pool.Exec(ctx,
		`DELETE FROM job_fields WHERE job_id = $1 AND user_id = $2 AND key = ANY($3)`,
		jobID, userID, keys,
	); err != nil {
		return fmt.Errorf("failed to delete job fields: %w", err)
	}

	now := time.Now()
	insert := `INSERT INTO job_fields (id, job_id, user_id, key, value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for key, value := range values {
		if _, err := r.pool.Exec(ctx, insert, uuid.New(), jobID, userID, key, value, now); err != nil {
			return fmt.Errorf("failed to insert job field %q: %w", key, err)
		}
	}
	return nil
}
