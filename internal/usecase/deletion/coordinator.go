package deletion

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/stephdawes/moneymash-backend/internal/domain"
)

// SnapshotRegenerator rebuilds the snapshot suffix affected by a ledger
// mutation. Implemented by the snapshot manager.
type SnapshotRegenerator interface {
	RegenerateFrom(ctx context.Context, day domain.Day, policy domain.InclusionPolicy) error
}

// Coordinator is the single mutating entry point into the derived-data graph:
// it deletes observations from the ledger and triggers regeneration of every
// snapshot the deletion could have invalidated. All other components only read.
type Coordinator struct {
	Observations domain.ObservationRepository
	Snapshots    SnapshotRegenerator

	logger *zap.Logger
}

// NewCoordinator creates a new deletion Coordinator instance
func NewCoordinator(observations domain.ObservationRepository, snapshots SnapshotRegenerator, logger *zap.Logger) *Coordinator {
	return &Coordinator{
		Observations: observations,
		Snapshots:    snapshots,
		logger:       logger,
	}
}

// DeleteObservation removes one observation from an account's history.
// It refuses with domain.ErrLastObservation when the account has only one
// observation left: an account may never be stripped of its entire history.
// On success, every snapshot dated on or after the observation's day is
// regenerated; earlier snapshots are untouched.
func (c *Coordinator) DeleteObservation(ctx context.Context, accountID, observationID uuid.UUID, policy domain.InclusionPolicy) error {
	count, err := c.Observations.CountByAccount(ctx, accountID)
	if err != nil {
		return &domain.PersistenceError{Op: "count observations", Err: err}
	}
	if count <= 1 {
		return domain.ErrLastObservation
	}

	obs, err := c.Observations.GetByID(ctx, observationID)
	if err != nil {
		return err
	}
	if obs.AccountID != accountID {
		return domain.ErrObservationNotFound
	}

	day := obs.Day()

	if err := c.Observations.Delete(ctx, observationID); err != nil {
		return &domain.PersistenceError{Op: "delete observation", Err: err}
	}

	c.logger.Info("observation deleted, regenerating affected snapshots",
		zap.String("account_id", accountID.String()),
		zap.String("observation_id", observationID.String()),
		zap.String("from", day.String()))

	if err := c.Snapshots.RegenerateFrom(ctx, day, policy); err != nil {
		return errors.Wrap(err, "observation deleted but snapshot regeneration failed")
	}
	return nil
}
