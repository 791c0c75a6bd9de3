package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AccountRepository defines the interface for account persistence operations
type AccountRepository interface {
	// Create creates a new account
	Create(ctx context.Context, account *Account) error

	// GetByID retrieves an account by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// List retrieves all accounts
	List(ctx context.Context) ([]*Account, error)

	// Delete removes an account and cascades to all of its observations
	Delete(ctx context.Context, id uuid.UUID) error
}

// ObservationRepository defines the interface for observation persistence
// operations. Every listing method returns observations ordered by
// (ObservedAt, insertion order) so that same-timestamp ties resolve
// deterministically everywhere.
type ObservationRepository interface {
	// Add creates a new observation
	Add(ctx context.Context, obs *Observation) error

	// GetByID retrieves an observation by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Observation, error)

	// ListByAccount retrieves all observations belonging to one account
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*Observation, error)

	// ListAll retrieves every observation across all accounts
	ListAll(ctx context.Context) ([]*Observation, error)

	// ListFrom retrieves every observation with ObservedAt >= from
	ListFrom(ctx context.Context, from time.Time) ([]*Observation, error)

	// CountByAccount returns the number of observations an account holds
	CountByAccount(ctx context.Context, accountID uuid.UUID) (int, error)

	// Delete removes a single observation
	Delete(ctx context.Context, id uuid.UUID) error
}

// SnapshotRepository defines the interface for snapshot persistence operations
type SnapshotRepository interface {
	// Add creates a new snapshot
	Add(ctx context.Context, snap *Snapshot) error

	// GetByDay retrieves the snapshot for one calendar day, if present
	// Returns nil and no error when the day has no snapshot
	GetByDay(ctx context.Context, day Day) (*Snapshot, error)

	// List retrieves all snapshots ordered by day ascending
	List(ctx context.Context) ([]*Snapshot, error)

	// Count returns the number of stored snapshots
	Count(ctx context.Context) (int, error)

	// Update replaces the net worth recorded for an existing snapshot
	Update(ctx context.Context, snap *Snapshot) error

	// DeleteFrom removes every snapshot with day >= from
	DeleteFrom(ctx context.Context, from Day) error

	// DeleteAll removes every snapshot
	DeleteAll(ctx context.Context) error
}
