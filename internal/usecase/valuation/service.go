package valuation

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/stephdawes/moneymash-backend/internal/domain"
	"github.com/stephdawes/moneymash-backend/internal/usecase/ledger"
)

// Summary holds the aggregate totals for the summary view.
// NetWorth always equals TotalAssets plus TotalDebt exactly: debt amounts are
// stored negative, so adding them subtracts.
type Summary struct {
	NetWorth    decimal.Decimal
	TotalAssets decimal.Decimal
	TotalDebt   decimal.Decimal
	// IntegrityWarnings counts accounts that were found with zero
	// observations during the valuation. They contribute zero and are
	// logged; the valuation still succeeds.
	IntegrityWarnings int
}

// Service computes aggregate portfolio totals over all accounts for a given
// moment, parameterized by an explicit inclusion policy.
type Service struct {
	Accounts     domain.AccountRepository
	Observations domain.ObservationRepository

	logger *zap.Logger
}

// NewService creates a new valuation Service instance
func NewService(accounts domain.AccountRepository, observations domain.ObservationRepository, logger *zap.Logger) *Service {
	return &Service{
		Accounts:     accounts,
		Observations: observations,
		logger:       logger,
	}
}

// NetWorth computes aggregate net worth under the given policy. A nil asOf
// values every account at its most recent observation; otherwise each account
// is valued as it was known at the end of the given day.
func (s *Service) NetWorth(ctx context.Context, policy domain.InclusionPolicy, asOf *domain.Day) (decimal.Decimal, error) {
	assets, debt, _, err := s.totals(ctx, policy, asOf)
	if err != nil {
		return decimal.Zero, err
	}
	return assets.Add(debt), nil
}

// TotalAssets computes the asset side of net worth under the given policy.
func (s *Service) TotalAssets(ctx context.Context, policy domain.InclusionPolicy, asOf *domain.Day) (decimal.Decimal, error) {
	assets, _, _, err := s.totals(ctx, policy, asOf)
	return assets, err
}

// TotalDebt computes the debt side of net worth under the given policy.
// The result is negative or zero.
func (s *Service) TotalDebt(ctx context.Context, policy domain.InclusionPolicy, asOf *domain.Day) (decimal.Decimal, error) {
	_, debt, _, err := s.totals(ctx, policy, asOf)
	return debt, err
}

// NetWorthSummary computes all three aggregates in a single pass, for the
// summary view. A nil asOf means current values.
func (s *Service) NetWorthSummary(ctx context.Context, policy domain.InclusionPolicy, asOf *domain.Day) (*Summary, error) {
	assets, debt, warnings, err := s.totals(ctx, policy, asOf)
	if err != nil {
		return nil, err
	}
	return &Summary{
		NetWorth:          assets.Add(debt),
		TotalAssets:       assets,
		TotalDebt:         debt,
		IntegrityWarnings: warnings,
	}, nil
}

// totals is the single aggregation sweep every public method narrows.
// Both sides come out of one pass over the same account set, which is what
// makes the assets+debt identity hold exactly.
func (s *Service) totals(ctx context.Context, policy domain.InclusionPolicy, asOf *domain.Day) (assets, debt decimal.Decimal, warnings int, err error) {
	accounts, err := s.Accounts.List(ctx)
	if err != nil {
		return decimal.Zero, decimal.Zero, 0, errors.Wrap(err, "failed to list accounts")
	}

	assets, debt = decimal.Zero, decimal.Zero
	for _, account := range accounts {
		if !account.Type.IncludedInNetWorth(policy) {
			continue
		}

		observations, err := s.Observations.ListByAccount(ctx, account.ID)
		if err != nil {
			return decimal.Zero, decimal.Zero, 0, errors.Wrapf(err, "failed to list observations for account %s", account.ID)
		}

		if len(observations) == 0 {
			warnings++
			s.logger.Warn("account has no observations, contributing zero to valuation",
				zap.String("account_id", account.ID.String()),
				zap.String("provider", account.Provider))
			continue
		}

		var value decimal.Decimal
		if asOf == nil {
			value, _ = ledger.Latest(observations)
		} else {
			var known bool
			value, known = ledger.LatestAsOf(observations, *asOf)
			if !known {
				// Account did not exist yet as of this day
				continue
			}
		}

		if account.Type.IncludedAsAsset(policy) {
			assets = assets.Add(value)
		} else {
			debt = debt.Add(value)
		}
	}

	return assets, debt, warnings, nil
}
