package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stephdawes/moneymash-backend/internal/domain"
)

// snapshotRepository implements domain.SnapshotRepository
type snapshotRepository struct {
	db *DB
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *DB) domain.SnapshotRepository {
	return &snapshotRepository{db: db}
}

// Add creates a new snapshot; the day column is unique, so a duplicate day is
// a caller bug and surfaces as a constraint violation
func (r *snapshotRepository) Add(ctx context.Context, snap *domain.Snapshot) error {
	query := `
		INSERT INTO snapshots (id, day, net_worth)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.ExecContext(ctx, query,
		snap.ID,
		snap.Day.Time(),
		snap.NetWorth.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	return nil
}

// GetByDay retrieves the snapshot for one calendar day, nil when absent
func (r *snapshotRepository) GetByDay(ctx context.Context, day domain.Day) (*domain.Snapshot, error) {
	query := `
		SELECT id, day, net_worth
		FROM snapshots
		WHERE day = $1
	`

	snap, err := scanSnapshot(r.db.QueryRowContext(ctx, query, day.Time()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	return snap, nil
}

// List retrieves all snapshots ordered by day ascending
func (r *snapshotRepository) List(ctx context.Context) ([]*domain.Snapshot, error) {
	query := `
		SELECT id, day, net_worth
		FROM snapshots
		ORDER BY day
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*domain.Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snapshots = append(snapshots, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshots: %w", err)
	}

	return snapshots, nil
}

// Count returns the number of stored snapshots
func (r *snapshotRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshots`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count snapshots: %w", err)
	}
	return count, nil
}

// Update replaces the net worth recorded for an existing snapshot
func (r *snapshotRepository) Update(ctx context.Context, snap *domain.Snapshot) error {
	query := `UPDATE snapshots SET net_worth = $1 WHERE day = $2`

	result, err := r.db.ExecContext(ctx, query, snap.NetWorth.String(), snap.Day.Time())
	if err != nil {
		return fmt.Errorf("failed to update snapshot: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("no snapshot to update for day %s", snap.Day)
	}

	return nil
}

// DeleteFrom removes every snapshot with day >= from
func (r *snapshotRepository) DeleteFrom(ctx context.Context, from domain.Day) error {
	query := `DELETE FROM snapshots WHERE day >= $1`

	if _, err := r.db.ExecContext(ctx, query, from.Time()); err != nil {
		return fmt.Errorf("failed to delete snapshots: %w", err)
	}
	return nil
}

// DeleteAll removes every snapshot
func (r *snapshotRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM snapshots`); err != nil {
		return fmt.Errorf("failed to clear snapshots: %w", err)
	}
	return nil
}

func scanSnapshot(row scanner) (*domain.Snapshot, error) {
	var snap domain.Snapshot
	var day time.Time
	var netWorthStr string

	if err := row.Scan(&snap.ID, &day, &netWorthStr); err != nil {
		return nil, err
	}

	snap.Day = domain.DayOf(day)

	netWorth, err := decimal.NewFromString(netWorthStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse net_worth: %w", err)
	}
	snap.NetWorth = netWorth

	return &snap, nil
}
