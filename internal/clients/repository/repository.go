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

const clientNotFoundMsg = "client not found"

// Client is the database model for a client (customer) row. Several
// physical rows may represent the same logical customer; deduplication
// happens at read time in the service layer, never in the database.
type Client struct {
	ID              uuid.UUID `db:"id"`
	UserID          uuid.UUID `db:"user_id"`
	Name            string    `db:"name"`
	Organization    string    `db:"organization"`
	Email           string    `db:"email"`
	Phone           string    `db:"phone"`
	Address         string    `db:"address"`
	Postcode        string    `db:"postcode"`
	LandlordName    string    `db:"landlord_name"`
	LandlordAddress string    `db:"landlord_address"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// Repository provides database operations for clients.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a clients repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const clientColumns = `id, user_id, name, organization, email, phone, address, postcode,
	landlord_name, landlord_address, created_at, updated_at`

func scanClient(row pgx.Row) (Client, error) {
	var c Client
	err := row.Scan(
		&c.ID, &c.UserID, &c.Name, &c.Organization, &c.Email, &c.Phone,
		&c.Address, &c.Postcode, &c.LandlordName, &c.LandlordAddress,
		&c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

// ListByUser returns every client row owned by the user, most recently
// updated first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients WHERE user_id = $1
		ORDER BY updated_at DESC, created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	var clients []Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clients: %w", err)
	}
	return clients, nil
}

// GetByID retrieves a client row scoped to its owner.
func (r *Repository) GetByID(ctx context.Context, id, userID uuid.UUID) (*Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1 AND user_id = $2`

	c, err := scanClient(r.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(clientNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return &c, nil
}

// Insert creates a new client row.
func (r *Repository) Insert(ctx context.Context, c *Client) error {
	query := `
		INSERT INTO clients (
			id, user_id, name, organization, email, phone, address, postcode,
			landlord_name, landlord_address, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	if _, err := r.pool.Exec(ctx, query,
		c.ID, c.UserID, c.Name, c.Organization, c.Email, c.Phone,
		c.Address, c.Postcode, c.LandlordName, c.LandlordAddress,
		c.CreatedAt, c.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert client: %w", err)
	}
	return nil
}

// Update overwrites a client row's mutable fields.
func (r *Repository) Update(ctx context.Context, c *Client) error {
	query := `
		UPDATE clients SET
			name = $3, organization = $4, email = $5, phone = $6,
			address = $7, postcode = $8, landlord_name = $9, landlord_address = $10,
			updated_at = $11
		WHERE id = $1 AND user_id = $2`

	result, err := r.pool.Exec(ctx, query,
		c.ID, c.UserID, c.Name, c.Organization, c.Email, c.Phone,
		c.Address, c.Postcode, c.LandlordName, c.LandlordAddress, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(clientNotFoundMsg)
	}
	return nil
}

// Delete removes a client row. Jobs referencing it keep their client_id;
// resolution degrades to the legacy denormalized columns.
func (r *Repository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(clientNotFoundMsg)
	}
	return nil
}
