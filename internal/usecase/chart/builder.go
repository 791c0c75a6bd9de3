package chart

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/stephdawes/moneymash-backend/internal/domain"
)

// Point is one chart sample: the portfolio value at a moment in time.
type Point struct {
	Date  time.Time       `json:"date"`
	Value decimal.Decimal `json:"value"`
}

// cacheKey invalidates the cached series whenever the account set size or the
// inclusion policy changes.
type cacheKey struct {
	accountCount int
	policy       domain.InclusionPolicy
}

// Builder turns raw per-account observations into chart-ready cumulative
// net-worth series. Debt accounts are always excluded from this series;
// retirement accounts follow the policy's pension toggle.
type Builder struct {
	Accounts     domain.AccountRepository
	Observations domain.ObservationRepository
	Snapshots    domain.SnapshotRepository

	logger *zap.Logger

	// The HTTP adapter serves concurrent readers; the lock protects the map,
	// not the engine's single-writer assumption.
	mu    sync.Mutex
	cache map[cacheKey][]Point
}

// NewBuilder creates a new chart Builder instance
func NewBuilder(
	accounts domain.AccountRepository,
	observations domain.ObservationRepository,
	snapshots domain.SnapshotRepository,
	logger *zap.Logger,
) *Builder {
	return &Builder{
		Accounts:     accounts,
		Observations: observations,
		Snapshots:    snapshots,
		logger:       logger,
		cache:        make(map[cacheKey][]Point),
	}
}

// Series returns the cumulative asset series: one point per distinct
// observation timestamp, each valued as the sum of every eligible account's
// latest known balance at that moment. The result is cached per
// (account set size, policy).
func (b *Builder) Series(ctx context.Context, policy domain.InclusionPolicy) ([]Point, error) {
	accounts, err := b.Accounts.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list accounts")
	}

	key := cacheKey{accountCount: len(accounts), policy: policy}
	b.mu.Lock()
	cached, ok := b.cache[key]
	b.mu.Unlock()
	if ok {
		return cached, nil
	}

	points, err := b.buildSeries(ctx, accounts, policy)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	b.cache[key] = points
	b.mu.Unlock()
	return points, nil
}

// SnapshotSeries returns the materialized daily net-worth history as chart
// points, one per stored snapshot, ordered by day.
func (b *Builder) SnapshotSeries(ctx context.Context) ([]Point, error) {
	snapshots, err := b.Snapshots.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list snapshots")
	}

	points := make([]Point, 0, len(snapshots))
	for _, snap := range snapshots {
		points = append(points, Point{Date: snap.Day.Time(), Value: snap.NetWorth})
	}
	return points, nil
}

// buildSeries is the forward sweep: observations of eligible accounts in
// global timestamp order, maintaining a per-account latest-balance table and
// emitting one point per distinct timestamp with the fully updated table.
func (b *Builder) buildSeries(ctx context.Context, accounts []*domain.Account, policy domain.InclusionPolicy) ([]Point, error) {
	eligible := make(map[uuid.UUID]bool, len(accounts))
	for _, account := range accounts {
		if account.Type.IncludedAsAsset(policy) {
			eligible[account.ID] = true
		}
	}

	all, err := b.Observations.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list observations")
	}

	var points []Point
	balances := make(map[uuid.UUID]decimal.Decimal)
	for i, obs := range all {
		if !eligible[obs.AccountID] {
			continue
		}
		balances[obs.AccountID] = obs.Amount

		// Emit once per distinct timestamp, after every same-timestamp
		// observation has updated the table
		if next := nextEligible(all, i+1, eligible); next == nil || !next.ObservedAt.Equal(obs.ObservedAt) {
			total := decimal.Zero
			for _, balance := range balances {
				total = total.Add(balance)
			}
			points = append(points, Point{Date: obs.ObservedAt, Value: total})
		}
	}

	b.logger.Debug("built cumulative series",
		zap.Int("eligible_accounts", len(eligible)),
		zap.Int("points", len(points)))

	return points, nil
}

// nextEligible finds the next observation at or after index i that belongs to
// an eligible account.
func nextEligible(all []*domain.Observation, i int, eligible map[uuid.UUID]bool) *domain.Observation {
	for ; i < len(all); i++ {
		if eligible[all[i].AccountID] {
			return all[i]
		}
	}
	return nil
}
