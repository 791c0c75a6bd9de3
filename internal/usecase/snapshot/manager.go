package snapshot

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/stephdawes/moneymash-backend/internal/domain"
)

// Valuer computes net worth as of a day. Implemented by the valuation service.
type Valuer interface {
	NetWorth(ctx context.Context, policy domain.InclusionPolicy, asOf *domain.Day) (decimal.Decimal, error)
}

// Manager maintains the derived one-row-per-calendar-day cache of net worth.
// Per day the cache is either absent or present-and-valid; invalidated
// snapshots are always deleted before replacements are written, never left
// stale. The manager is the only component that mutates the snapshot store.
type Manager struct {
	Snapshots    domain.SnapshotRepository
	Observations domain.ObservationRepository
	Valuer       Valuer
	Clock        domain.Clock

	logger *zap.Logger
}

// NewManager creates a new snapshot Manager instance
func NewManager(
	snapshots domain.SnapshotRepository,
	observations domain.ObservationRepository,
	valuer Valuer,
	clock domain.Clock,
	logger *zap.Logger,
) *Manager {
	return &Manager{
		Snapshots:    snapshots,
		Observations: observations,
		Valuer:       valuer,
		Clock:        clock,
		logger:       logger,
	}
}

// BuildAll populates the snapshot store from the full observation history:
// one snapshot per distinct observation day, each valued as of that day.
// A store that already holds more than one snapshot is left alone. A store
// with exactly one snapshot is treated as degenerate legacy state and rebuilt
// from scratch.
func (m *Manager) BuildAll(ctx context.Context, policy domain.InclusionPolicy) error {
	count, err := m.Snapshots.Count(ctx)
	if err != nil {
		return &domain.PersistenceError{Op: "count snapshots", Err: err}
	}
	if count > 1 {
		m.logger.Info("snapshot store already populated, keeping it", zap.Int("snapshots", count))
		return nil
	}
	if count == 1 {
		m.logger.Info("found a single legacy snapshot, rebuilding history from observations")
	}

	if err := m.Snapshots.DeleteAll(ctx); err != nil {
		return &domain.PersistenceError{Op: "clear snapshot store", Err: err}
	}

	observations, err := m.Observations.ListAll(ctx)
	if err != nil {
		return &domain.PersistenceError{Op: "list observations", Err: err}
	}

	days := distinctDays(observations)
	m.logger.Info("building snapshots from observation history", zap.Int("days", len(days)))

	return m.writeDays(ctx, days, policy)
}

// UpsertToday recomputes net worth as of today and overwrites or inserts
// today's snapshot. Calling it repeatedly with unchanged data is idempotent:
// the day keeps a single snapshot with the same value.
func (m *Manager) UpsertToday(ctx context.Context, policy domain.InclusionPolicy) error {
	today := domain.DayOf(m.Clock.Now())

	netWorth, err := m.Valuer.NetWorth(ctx, policy, &today)
	if err != nil {
		return errors.Wrap(err, "failed to value portfolio for today's snapshot")
	}

	existing, err := m.Snapshots.GetByDay(ctx, today)
	if err != nil {
		return &domain.PersistenceError{Op: "look up today's snapshot", Err: err}
	}

	if existing != nil {
		existing.NetWorth = netWorth
		if err := m.Snapshots.Update(ctx, existing); err != nil {
			return &domain.PersistenceError{Op: "update today's snapshot", Err: err}
		}
		return nil
	}

	snap := &domain.Snapshot{ID: uuid.New(), Day: today, NetWorth: netWorth}
	if err := m.Snapshots.Add(ctx, snap); err != nil {
		return &domain.PersistenceError{Op: "insert today's snapshot", Err: err}
	}
	return nil
}

// RegenerateFrom deletes every snapshot dated on or after the given day and
// rebuilds one for each distinct observation day in that range. Snapshots
// strictly before the day are never touched, keeping the cost proportional to
// the affected range. Deletion happens before reinsertion, so a failure
// partway leaves missing days, never stale ones; the next call reconciles.
func (m *Manager) RegenerateFrom(ctx context.Context, day domain.Day, policy domain.InclusionPolicy) error {
	if err := m.Snapshots.DeleteFrom(ctx, day); err != nil {
		return &domain.PersistenceError{Op: "delete affected snapshots", Err: err}
	}

	observations, err := m.Observations.ListFrom(ctx, day.Time())
	if err != nil {
		return &domain.PersistenceError{Op: "list affected observations", Err: err}
	}

	days := distinctDays(observations)
	m.logger.Info("regenerating snapshots",
		zap.String("from", day.String()),
		zap.Int("days", len(days)))

	return m.writeDays(ctx, days, policy)
}

// writeDays values and inserts one snapshot per day. On a write failure the
// snapshots already written stay in place and the error reports the day that
// failed.
func (m *Manager) writeDays(ctx context.Context, days []domain.Day, policy domain.InclusionPolicy) error {
	for _, day := range days {
		netWorth, err := m.Valuer.NetWorth(ctx, policy, &day)
		if err != nil {
			return errors.Wrapf(err, "failed to value portfolio as of %s", day)
		}

		snap := &domain.Snapshot{ID: uuid.New(), Day: day, NetWorth: netWorth}
		if err := m.Snapshots.Add(ctx, snap); err != nil {
			return &domain.PersistenceError{Op: "insert snapshot for " + day.String(), Err: err}
		}
	}
	return nil
}

// distinctDays collapses observations to their unique calendar days, sorted
// ascending. Multiple intraday observations produce a single day.
func distinctDays(observations []*domain.Observation) []domain.Day {
	seen := make(map[domain.Day]struct{}, len(observations))
	for _, obs := range observations {
		seen[obs.Day()] = struct{}{}
	}

	days := make([]domain.Day, 0, len(seen))
	for day := range seen {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}
