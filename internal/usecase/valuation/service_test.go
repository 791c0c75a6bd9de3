package valuation

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stephdawes/moneymash-backend/internal/domain"
)

// MockAccountRepository is a mock implementation of domain.AccountRepository for testing
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockObservationRepository is a mock implementation of domain.ObservationRepository for testing
type MockObservationRepository struct {
	mock.Mock
}

func (m *MockObservationRepository) Add(ctx context.Context, obs *domain.Observation) error {
	args := m.Called(ctx, obs)
	return args.Error(0)
}

func (m *MockObservationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Observation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Observation), args.Error(1)
}

func (m *MockObservationRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*domain.Observation, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Observation), args.Error(1)
}

func (m *MockObservationRepository) ListAll(ctx context.Context) ([]*domain.Observation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Observation), args.Error(1)
}

func (m *MockObservationRepository) ListFrom(ctx context.Context, from time.Time) ([]*domain.Observation, error) {
	args := m.Called(ctx, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Observation), args.Error(1)
}

func (m *MockObservationRepository) CountByAccount(ctx context.Context, accountID uuid.UUID) (int, error) {
	args := m.Called(ctx, accountID)
	return args.Int(0), args.Error(1)
}

func (m *MockObservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type fixture struct {
	service *Service
	ctx     context.Context
}

// newFixture wires a valuation service over canned accounts and observation
// histories.
func newFixture(t *testing.T, accounts []*domain.Account, history map[uuid.UUID][]*domain.Observation) *fixture {
	t.Helper()
	ctx := context.Background()

	mockAccounts := new(MockAccountRepository)
	mockAccounts.On("List", ctx).Return(accounts, nil)

	mockObservations := new(MockObservationRepository)
	for id, observations := range history {
		mockObservations.On("ListByAccount", ctx, id).Return(observations, nil)
	}

	return &fixture{
		service: NewService(mockAccounts, mockObservations, zap.NewNop()),
		ctx:     ctx,
	}
}

func singleObservation(accountID uuid.UUID, amount int64, at time.Time) []*domain.Observation {
	return []*domain.Observation{{
		ID:         uuid.New(),
		AccountID:  accountID,
		Amount:     decimal.NewFromInt(amount),
		ObservedAt: at,
	}}
}

func TestNetWorth_AssetAndDebtScenario(t *testing.T) {
	// Two accounts, one asset (2000) and one debt (-500), everything included
	assetID, debtID := uuid.New(), uuid.New()
	at := time.Date(2026, time.January, 10, 12, 0, 0, 0, time.UTC)

	f := newFixture(t,
		[]*domain.Account{
			{ID: assetID, Type: domain.AccountTypeSavingsAccount, Provider: "Halifax"},
			{ID: debtID, Type: domain.AccountTypeLoan, Provider: "Zopa"},
		},
		map[uuid.UUID][]*domain.Observation{
			assetID: singleObservation(assetID, 2000, at),
			debtID:  singleObservation(debtID, -500, at),
		})

	summary, err := f.service.NetWorthSummary(f.ctx, domain.FullPolicy(), nil)

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1500).Equal(summary.NetWorth))
	assert.True(t, decimal.NewFromInt(2000).Equal(summary.TotalAssets))
	assert.True(t, decimal.NewFromInt(-500).Equal(summary.TotalDebt))
	assert.Equal(t, 0, summary.IntegrityWarnings)
}

func TestNetWorth_EqualsAssetsPlusDebtExactly(t *testing.T) {
	// Fractional pence amounts: the identity must hold with no rounding drift
	assetID, pensionID, mortgageID := uuid.New(), uuid.New(), uuid.New()
	at := time.Date(2026, time.January, 10, 12, 0, 0, 0, time.UTC)

	obs := func(id uuid.UUID, amount string) []*domain.Observation {
		d, err := decimal.NewFromString(amount)
		require.NoError(t, err)
		return []*domain.Observation{{ID: uuid.New(), AccountID: id, Amount: d, ObservedAt: at}}
	}

	accounts := []*domain.Account{
		{ID: assetID, Type: domain.AccountTypeStocksAndSharesISA, Provider: "Vanguard"},
		{ID: pensionID, Type: domain.AccountTypePension, Provider: "Aviva"},
		{ID: mortgageID, Type: domain.AccountTypeMortgage, Provider: "Nationwide"},
	}
	history := map[uuid.UUID][]*domain.Observation{
		assetID:    obs(assetID, "10250.33"),
		pensionID:  obs(pensionID, "44819.07"),
		mortgageID: obs(mortgageID, "-199999.99"),
	}

	for _, policy := range []domain.InclusionPolicy{
		{IncludePensions: true, IncludeMortgage: true},
		{IncludePensions: true, IncludeMortgage: false},
		{IncludePensions: false, IncludeMortgage: true},
		{IncludePensions: false, IncludeMortgage: false},
	} {
		f := newFixture(t, accounts, history)

		netWorth, err := f.service.NetWorth(f.ctx, policy, nil)
		require.NoError(t, err)
		assets, err := f.service.TotalAssets(f.ctx, policy, nil)
		require.NoError(t, err)
		debt, err := f.service.TotalDebt(f.ctx, policy, nil)
		require.NoError(t, err)

		assert.True(t, netWorth.Equal(assets.Add(debt)),
			"net worth %s != assets %s + debt %s under %+v", netWorth, assets, debt, policy)
	}
}

func TestNetWorth_PensionToggleExcludesRetirementAccounts(t *testing.T) {
	savingsID, pensionID := uuid.New(), uuid.New()
	at := time.Date(2026, time.January, 10, 12, 0, 0, 0, time.UTC)

	accounts := []*domain.Account{
		{ID: savingsID, Type: domain.AccountTypeSavingsAccount, Provider: "Halifax"},
		{ID: pensionID, Type: domain.AccountTypePension, Provider: "Aviva"},
	}
	history := map[uuid.UUID][]*domain.Observation{
		savingsID: singleObservation(savingsID, 1000, at),
		pensionID: singleObservation(pensionID, 50000, at),
	}

	f := newFixture(t, accounts, history)
	withPensions, err := f.service.NetWorth(f.ctx, domain.FullPolicy(), nil)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(51000).Equal(withPensions))

	f = newFixture(t, accounts, history)
	withoutPensions, err := f.service.NetWorth(f.ctx, domain.InclusionPolicy{IncludePensions: false, IncludeMortgage: true}, nil)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1000).Equal(withoutPensions))
}

func TestNetWorth_MortgageToggleOnlyAffectsMortgages(t *testing.T) {
	mortgageID, loanID := uuid.New(), uuid.New()
	at := time.Date(2026, time.January, 10, 12, 0, 0, 0, time.UTC)

	accounts := []*domain.Account{
		{ID: mortgageID, Type: domain.AccountTypeMortgage, Provider: "Nationwide"},
		{ID: loanID, Type: domain.AccountTypeLoan, Provider: "Zopa"},
	}
	history := map[uuid.UUID][]*domain.Observation{
		mortgageID: singleObservation(mortgageID, -150000, at),
		loanID:     singleObservation(loanID, -2000, at),
	}

	f := newFixture(t, accounts, history)
	debt, err := f.service.TotalDebt(f.ctx, domain.InclusionPolicy{IncludePensions: true, IncludeMortgage: false}, nil)
	require.NoError(t, err)

	// The mortgage drops out; the loan stays
	assert.True(t, decimal.NewFromInt(-2000).Equal(debt))
}

func TestNetWorth_AsOfValuesAccountsAtThatDay(t *testing.T) {
	accountID := uuid.New()
	accounts := []*domain.Account{
		{ID: accountID, Type: domain.AccountTypeSavingsAccount, Provider: "Halifax"},
	}
	history := map[uuid.UUID][]*domain.Observation{
		accountID: {
			{ID: uuid.New(), AccountID: accountID, Amount: decimal.NewFromInt(1000), ObservedAt: time.Date(2026, time.January, 1, 10, 0, 0, 0, time.UTC)},
			{ID: uuid.New(), AccountID: accountID, Amount: decimal.NewFromInt(1200), ObservedAt: time.Date(2026, time.February, 1, 10, 0, 0, 0, time.UTC)},
		},
	}

	f := newFixture(t, accounts, history)
	asOf := domain.NewDay(2026, time.January, 15)
	netWorth, err := f.service.NetWorth(f.ctx, domain.FullPolicy(), &asOf)

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1000).Equal(netWorth))
}

func TestNetWorthSummary_CountsZeroObservationAccounts(t *testing.T) {
	healthyID, emptyID := uuid.New(), uuid.New()
	at := time.Date(2026, time.January, 10, 12, 0, 0, 0, time.UTC)

	f := newFixture(t,
		[]*domain.Account{
			{ID: healthyID, Type: domain.AccountTypeSavingsAccount, Provider: "Halifax"},
			{ID: emptyID, Type: domain.AccountTypeCash, Provider: "Wallet"},
		},
		map[uuid.UUID][]*domain.Observation{
			healthyID: singleObservation(healthyID, 1000, at),
			emptyID:   {},
		})

	summary, err := f.service.NetWorthSummary(f.ctx, domain.FullPolicy(), nil)

	require.NoError(t, err)
	// The empty account contributes zero and raises a warning, nothing fails
	assert.True(t, decimal.NewFromInt(1000).Equal(summary.NetWorth))
	assert.Equal(t, 1, summary.IntegrityWarnings)
}

func TestNetWorth_RepositoryFailureSurfaces(t *testing.T) {
	ctx := context.Background()
	mockAccounts := new(MockAccountRepository)
	mockAccounts.On("List", ctx).Return(nil, assert.AnError)

	service := NewService(mockAccounts, new(MockObservationRepository), zap.NewNop())

	_, err := service.NetWorth(ctx, domain.FullPolicy(), nil)
	assert.Error(t, err)
}
