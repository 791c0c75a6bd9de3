package seeder

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/stephdawes/moneymash-backend/internal/domain"
)

// SnapshotBuilder populates the snapshot store after seeding.
// Implemented by the snapshot manager.
type SnapshotBuilder interface {
	BuildAll(ctx context.Context, policy domain.InclusionPolicy) error
}

// SampleSeeder populates an empty store with a realistic demo portfolio:
// a mix of account types with observation histories of varying length and
// cadence, so charts and summaries have something to show out of the box.
type SampleSeeder struct {
	Accounts     domain.AccountRepository
	Observations domain.ObservationRepository
	Snapshots    SnapshotBuilder
	Clock        domain.Clock

	logger *zap.Logger
}

// NewSampleSeeder creates a new SampleSeeder instance
func NewSampleSeeder(
	accounts domain.AccountRepository,
	observations domain.ObservationRepository,
	snapshots SnapshotBuilder,
	clock domain.Clock,
	logger *zap.Logger,
) *SampleSeeder {
	return &SampleSeeder{
		Accounts:     accounts,
		Observations: observations,
		Snapshots:    snapshots,
		Clock:        clock,
		logger:       logger,
	}
}

// sampleAccount describes one demo account: monthly balances given oldest
// first, ending at the most recent month.
type sampleAccount struct {
	accountType domain.AccountType
	provider    string
	balances    []decimal.Decimal
}

// PopulateIfEmpty seeds the demo portfolio when no accounts exist yet, then
// builds the snapshot history. A store that already has accounts is left
// untouched.
func (s *SampleSeeder) PopulateIfEmpty(ctx context.Context) error {
	existing, err := s.Accounts.List(ctx)
	if err != nil {
		return &domain.PersistenceError{Op: "list accounts", Err: err}
	}
	if len(existing) > 0 {
		s.logger.Info("store already has accounts, skipping sample data", zap.Int("accounts", len(existing)))
		return nil
	}

	s.logger.Info("empty store, creating sample portfolio")

	now := s.Clock.Now()
	for _, sample := range sampleAccounts() {
		account := &domain.Account{
			ID:       uuid.New(),
			Type:     sample.accountType,
			Provider: sample.provider,
		}
		if err := s.Accounts.Create(ctx, account); err != nil {
			return &domain.PersistenceError{Op: "create sample account", Err: err}
		}

		// Oldest balance first, one observation per month ending now
		months := len(sample.balances)
		for i, balance := range sample.balances {
			observedAt := now.AddDate(0, -(months - 1 - i), 0)
			obs := &domain.Observation{
				ID:         uuid.New(),
				AccountID:  account.ID,
				Amount:     balance,
				ObservedAt: observedAt,
			}
			if err := s.Observations.Add(ctx, obs); err != nil {
				return &domain.PersistenceError{Op: "create sample observation", Err: err}
			}
		}
	}

	return s.Snapshots.BuildAll(ctx, domain.FullPolicy())
}

// sampleAccounts returns the demo portfolio. Histories are deterministic:
// steady pension growth, a declining mortgage, shorter cash histories.
func sampleAccounts() []sampleAccount {
	pension := make([]decimal.Decimal, 60)
	for i := range pension {
		// 50K growing by 0.375% of the base per month, roughly 4.5% a year
		pension[i] = decimal.NewFromInt(50000).Add(decimal.NewFromInt(int64(i) * 188))
	}

	isa := make([]decimal.Decimal, 36)
	for i := range isa {
		isa[i] = decimal.NewFromInt(15000).Add(decimal.NewFromInt(int64(i) * 300))
	}

	savings := make([]decimal.Decimal, 12)
	for i := range savings {
		savings[i] = decimal.NewFromInt(25000).Add(decimal.NewFromInt(int64(i) * 100))
	}

	mortgage := make([]decimal.Decimal, 60)
	for i := range mortgage {
		// 450K of debt reduced by 500 principal a month
		mortgage[i] = decimal.NewFromInt(-450000).Add(decimal.NewFromInt(int64(i) * 500))
	}

	cashISA := decimalsFromStrings(
		"16789.01", "17012.34", "17345.67", "17654.89",
		"17890.12", "18123.45", "18456.78", "18750.25",
	)
	current := decimalsFromStrings("3234.56", "3456.78")

	return []sampleAccount{
		{domain.AccountTypePension, "Vanguard", pension},
		{domain.AccountTypeStocksAndSharesISA, "Trading 212", isa},
		{domain.AccountTypeSavingsAccount, "Marcus", savings},
		{domain.AccountTypeCashISA, "Monzo", cashISA},
		{domain.AccountTypeCurrentAccount, "Starling", current},
		{domain.AccountTypeMortgage, "Halifax", mortgage},
	}
}

func decimalsFromStrings(values ...string) []decimal.Decimal {
	decimals := make([]decimal.Decimal, len(values))
	for i, v := range values {
		decimals[i] = decimal.RequireFromString(v)
	}
	return decimals
}
