package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stephdawes/moneymash-backend/internal/domain"
)

// observationRepository implements domain.ObservationRepository
// Listing queries order by (observed_at, seq): seq is a bigserial, so
// same-timestamp observations come back in insertion order.
type observationRepository struct {
	db *DB
}

// NewObservationRepository creates a new observation repository
func NewObservationRepository(db *DB) domain.ObservationRepository {
	return &observationRepository{db: db}
}

// Add creates a new observation
func (r *observationRepository) Add(ctx context.Context, obs *domain.Observation) error {
	query := `
		INSERT INTO observations (id, account_id, amount, observed_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(ctx, query,
		obs.ID,
		obs.AccountID,
		obs.Amount.String(),
		obs.ObservedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert observation: %w", err)
	}

	return nil
}

// GetByID retrieves an observation by its ID
func (r *observationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Observation, error) {
	query := `
		SELECT id, account_id, amount, observed_at
		FROM observations
		WHERE id = $1
	`

	obs, err := scanObservation(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrObservationNotFound
		}
		return nil, fmt.Errorf("failed to get observation: %w", err)
	}
	return obs, nil
}

// ListByAccount retrieves an account's observations ordered by (observed_at, seq)
func (r *observationRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*domain.Observation, error) {
	query := `
		SELECT id, account_id, amount, observed_at
		FROM observations
		WHERE account_id = $1
		ORDER BY observed_at, seq
	`

	return r.list(ctx, query, accountID)
}

// ListAll retrieves every observation ordered by (observed_at, seq)
func (r *observationRepository) ListAll(ctx context.Context) ([]*domain.Observation, error) {
	query := `
		SELECT id, account_id, amount, observed_at
		FROM observations
		ORDER BY observed_at, seq
	`

	return r.list(ctx, query)
}

// ListFrom retrieves every observation with observed_at >= from
func (r *observationRepository) ListFrom(ctx context.Context, from time.Time) ([]*domain.Observation, error) {
	query := `
		SELECT id, account_id, amount, observed_at
		FROM observations
		WHERE observed_at >= $1
		ORDER BY observed_at, seq
	`

	return r.list(ctx, query, from)
}

// CountByAccount returns the number of observations an account holds
func (r *observationRepository) CountByAccount(ctx context.Context, accountID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM observations WHERE account_id = $1`

	var count int
	if err := r.db.QueryRowContext(ctx, query, accountID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count observations: %w", err)
	}
	return count, nil
}

// Delete removes a single observation
func (r *observationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM observations WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete observation: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrObservationNotFound
	}

	return nil
}

func (r *observationRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Observation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query observations: %w", err)
	}
	defer rows.Close()

	var observations []*domain.Observation
	for rows.Next() {
		obs, err := scanObservation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan observation: %w", err)
		}
		observations = append(observations, obs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate observations: %w", err)
	}

	return observations, nil
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanObservation(row scanner) (*domain.Observation, error) {
	var obs domain.Observation
	var amountStr string

	if err := row.Scan(&obs.ID, &obs.AccountID, &amountStr, &obs.ObservedAt); err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse amount: %w", err)
	}
	obs.Amount = amount

	return &obs, nil
}
