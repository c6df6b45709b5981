package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Appliance is the database model for one inspected appliance on a CP12
// job.
type Appliance struct {
	ID                 uuid.UUID `db:"id"`
	JobID              uuid.UUID `db:"job_id"`
	UserID             uuid.UUID `db:"user_id"`
	ApplianceType      string    `db:"appliance_type"`
	Location           string    `db:"location"`
	MakeModel          string    `db:"make_model"`
	FlueType           string    `db:"flue_type"`
	OperatingPressure  string    `db:"operating_pressure"`
	HeatInput          string    `db:"heat_input"`
	CombustionReading  string    `db:"combustion_reading"`
	SafetyRating       string    `db:"safety_rating"`
	ClassificationCode string    `db:"classification_code"`
	DefectIdentified   string    `db:"defect_identified"`
	SortOrder          int       `db:"sort_order"`
	CreatedAt          time.Time `db:"created_at"`
}

// ReplaceAppliances swaps the full appliance set for a job in a single
// transaction.
func (r *Repository) ReplaceAppliances(ctx context.Context, jobID, userID uuid.UUID, appliances []Appliance) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM cp12_appliances WHERE job_id = $1 AND user_id = $2`,
		jobID, userID,
	); err != nil {
		return fmt.Errorf("failed to delete appliances: %w", err)
	}

	insert := `
		INSERT INTO cp12_appliances (
			id, job_id, user_id, appliance_type, location, make_model, flue_type,
			operating_pressure, heat_input, combustion_reading, safety_rating,
			classification_code, defect_identified, sort_order, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	for _, a := range appliances {
		if _, err := tx.Exec(ctx, insert,
			a.ID, jobID, userID, a.ApplianceType, a.Location, a.MakeModel, a.FlueType,
			a.OperatingPressure, a.HeatInput, a.CombustionReading, a.SafetyRating,
			a.ClassificationCode, a.DefectIdentified, a.SortOrder, a.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert appliance: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// ListAppliances returns a job's appliances in wizard order.
func (r *Repository) ListAppliances(ctx context.Context, jobID, userID uuid.UUID) ([]Appliance, error) {
	query := `
		SELECT id, job_id, user_id, appliance_type, location, make_model, flue_type,
			operating_pressure, heat_input, combustion_reading, safety_rating,
			classification_code, defect_identified, sort_order, created_at
		FROM cp12_appliances WHERE job_id = $1 AND user_id = $2
		ORDER BY sort_order ASC`

	rows, err := r.pool.Query(ctx, query, jobID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query appliances: %w", err)
	}
	defer rows.Close()

	var appliances []Appliance
	for rows.Next() {
		var a Appliance
		if err := rows.Scan(
			&a.ID, &a.JobID, &a.UserID, &a.ApplianceType, &a.Location, &a.MakeModel,
			&a.FlueType, &a.OperatingPressure, &a.HeatInput, &a.CombustionReading,
			&a.SafetyRating, &a.ClassificationCode, &a.DefectIdentified,
			&a.SortOrder, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan appliance: %w", err)
		}
		appliances = append(appliances, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate appliances: %w", err)
	}
	return appliances, nil
}
