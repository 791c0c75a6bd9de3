package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/stephdawes/moneymash-backend/internal/domain"
)

// SnapshotUpserter refreshes the derived snapshot for the current day after
// the ledger changes. Implemented by the snapshot manager.
type SnapshotUpserter interface {
	UpsertToday(ctx context.Context, policy domain.InclusionPolicy) error
}

// Trend describes how an account's balance moved between its two most recent
// observations.
type Trend struct {
	Current decimal.Decimal
	Change  decimal.Decimal
	// ChangePercent is display-only and deliberately a float; every stored
	// amount stays decimal.
	ChangePercent float64
	HasPrior      bool
}

// Service is the read/write entry point into the ledger: account lifecycle,
// balance observations, and the read-only value accessors every aggregation
// builds on.
type Service struct {
	Accounts     domain.AccountRepository
	Observations domain.ObservationRepository
	Snapshots    SnapshotUpserter

	logger *zap.Logger
}

// NewService creates a new ledger Service instance
func NewService(
	accounts domain.AccountRepository,
	observations domain.ObservationRepository,
	snapshots SnapshotUpserter,
	logger *zap.Logger,
) *Service {
	return &Service{
		Accounts:     accounts,
		Observations: observations,
		Snapshots:    snapshots,
		logger:       logger,
	}
}

// CurrentValue returns the account's most recent observed balance, or zero if
// the account has no observations. A zero-observation account is a data
// integrity problem, not a fatal one: it is logged and treated as zero.
func (s *Service) CurrentValue(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	observations, err := s.Observations.ListByAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "failed to list observations")
	}

	value, ok := Latest(observations)
	if !ok {
		s.logger.Warn("account has no observations, treating current value as zero",
			zap.String("account_id", accountID.String()))
	}
	return value, nil
}

// ValueAsOf returns the account's balance as it was known at the end of the
// given day, or zero if nothing had been observed by then.
func (s *Service) ValueAsOf(ctx context.Context, accountID uuid.UUID, day domain.Day) (decimal.Decimal, error) {
	observations, err := s.Observations.ListByAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "failed to list observations")
	}

	value, _ := LatestAsOf(observations, day)
	return value, nil
}

// PriorValue returns the second-most-recent observed balance. The bool is
// false when the account has fewer than two observations.
func (s *Service) PriorValue(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, bool, error) {
	observations, err := s.Observations.ListByAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, false, errors.Wrap(err, "failed to list observations")
	}

	value, ok := Prior(observations)
	return value, ok, nil
}

// AccountTrend returns the current balance together with its delta against
// the previous observation, for change indicators.
func (s *Service) AccountTrend(ctx context.Context, accountID uuid.UUID) (*Trend, error) {
	observations, err := s.Observations.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list observations")
	}

	current, _ := Latest(observations)
	prior, hasPrior := Prior(observations)

	trend := &Trend{Current: current, HasPrior: hasPrior}
	if hasPrior {
		trend.Change = current.Sub(prior)
		if !prior.IsZero() {
			trend.ChangePercent, _ = trend.Change.Div(prior).Mul(decimal.NewFromInt(100)).Float64()
		}
	}
	return trend, nil
}

// RecordObservation appends a new balance observation to an account's history
// and refreshes today's snapshot. Returns the created observation.
func (s *Service) RecordObservation(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, observedAt time.Time) (*domain.Observation, error) {
	// Verify the account exists before touching its history
	if _, err := s.Accounts.GetByID(ctx, accountID); err != nil {
		return nil, err
	}

	obs := &domain.Observation{
		ID:         uuid.New(),
		AccountID:  accountID,
		Amount:     amount,
		ObservedAt: observedAt,
	}
	if err := obs.Validate(); err != nil {
		return nil, err
	}

	if err := s.Observations.Add(ctx, obs); err != nil {
		return nil, &domain.PersistenceError{Op: "record observation", Err: err}
	}

	// Snapshots always record canonical full net worth.
	if err := s.Snapshots.UpsertToday(ctx, domain.FullPolicy()); err != nil {
		return nil, errors.Wrap(err, "observation recorded but snapshot refresh failed")
	}

	return obs, nil
}

// CreateAccount creates an account together with its required initial
// observation. An account never exists without at least one observation.
func (s *Service) CreateAccount(ctx context.Context, accountType domain.AccountType, provider string, initialAmount decimal.Decimal, observedAt time.Time) (*domain.Account, error) {
	account := &domain.Account{
		ID:       uuid.New(),
		Type:     accountType,
		Provider: provider,
	}
	if err := account.Validate(); err != nil {
		return nil, err
	}

	if err := s.Accounts.Create(ctx, account); err != nil {
		return nil, &domain.PersistenceError{Op: "create account", Err: err}
	}

	obs := &domain.Observation{
		ID:         uuid.New(),
		AccountID:  account.ID,
		Amount:     initialAmount,
		ObservedAt: observedAt,
	}
	if err := s.Observations.Add(ctx, obs); err != nil {
		return nil, &domain.PersistenceError{Op: "create initial observation", Err: err}
	}

	if err := s.Snapshots.UpsertToday(ctx, domain.FullPolicy()); err != nil {
		return nil, errors.Wrap(err, "account created but snapshot refresh failed")
	}

	s.logger.Info("account created",
		zap.String("account_id", account.ID.String()),
		zap.String("type", string(account.Type)),
		zap.String("provider", account.Provider))

	return account, nil
}

// DeleteAccount removes an account and its entire observation history, then
// refreshes today's snapshot to reflect the reduced portfolio.
func (s *Service) DeleteAccount(ctx context.Context, accountID uuid.UUID) error {
	if _, err := s.Accounts.GetByID(ctx, accountID); err != nil {
		return err
	}

	if err := s.Accounts.Delete(ctx, accountID); err != nil {
		return &domain.PersistenceError{Op: "delete account", Err: err}
	}

	s.logger.Info("account deleted", zap.String("account_id", accountID.String()))

	return s.Snapshots.UpsertToday(ctx, domain.FullPolicy())
}

// GetAccount retrieves a single account by ID.
func (s *Service) GetAccount(ctx context.Context, accountID uuid.UUID) (*domain.Account, error) {
	return s.Accounts.GetByID(ctx, accountID)
}

// ListAccounts retrieves all accounts.
func (s *Service) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	return s.Accounts.List(ctx)
}
