package budget

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/workify/backend/internal/application/common"
	"github.com/workify/backend/internal/domain/budget"
	"github.com/workify/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// =============================================================================
// Mocks
// =============================================================================

type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) FindByID(ctx context.Context, id uuid.UUID) (*budget.Budget, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*budget.Budget), args.Error(1)
}

func (m *MockBudgetRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]budget.Budget, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]budget.Budget), args.Error(1)
}

func (m *MockBudgetRepository) FindAll(ctx context.Context, filter shared.Filter) ([]budget.Budget, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]budget.Budget), args.Get(1).(int64), args.Error(2)
}

func (m *MockBudgetRepository) Autocomplete(ctx context.Context, query string, limit int) ([]budget.Budget, error) {
	args := m.Called(ctx, query, limit)
	return args.Get(0).([]budget.Budget), args.Error(1)
}

func (m *MockBudgetRepository) Save(ctx context.Context, b *budget.Budget) error {
	return m.Called(ctx, b).Error(0)
}

type MockCurrencies struct {
	mock.Mock
}

func (m *MockCurrencies) ResolveCurrency(ctx context.Context, id *uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockCurrencies) CurrencyCodes(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[uuid.UUID]string), args.Error(1)
}

// =============================================================================
// Tests
// =============================================================================

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	actor := uuid.New()
	pln := uuid.New()

	t.Run("default currency", func(t *testing.T) {
		repo := new(MockBudgetRepository)
		currencies := new(MockCurrencies)
		svc := NewService(repo, currencies, nil, zap.NewNop())

		currencies.On("ResolveCurrency", ctx, (*uuid.UUID)(nil)).Return(pln, nil)
		currencies.On("CurrencyCodes", ctx, []uuid.UUID{pln}).Return(map[uuid.UUID]string{pln: "PLN"}, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*budget.Budget")).Return(nil)

		resp, err := svc.Create(ctx, actor, BudgetRequest{Name: "R&D 2024", Value: decimal.RequireFromString("100000")})
		require.NoError(t, err)
		assert.Equal(t, "PLN", resp.Currency)
		assert.True(t, resp.IsActive)
		assert.True(t, resp.Value.Equal(decimal.NewFromInt(100000)))
	})

	t.Run("negative value", func(t *testing.T) {
		repo := new(MockBudgetRepository)
		currencies := new(MockCurrencies)
		svc := NewService(repo, currencies, nil, zap.NewNop())
		currencies.On("ResolveCurrency", ctx, mock.Anything).Return(pln, nil)

		_, err := svc.Create(ctx, actor, BudgetRequest{Name: "X", Value: decimal.NewFromInt(-1)})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestService_DeactivateAndEnsureActive(t *testing.T) {
	ctx := context.Background()
	pln := uuid.New()
	b, err := budget.NewBudget("Ops", "", decimal.NewFromInt(10), pln, nil)
	require.NoError(t, err)

	repo := new(MockBudgetRepository)
	currencies := new(MockCurrencies)
	svc := NewService(repo, currencies, nil, zap.NewNop())
	repo.On("FindByID", ctx, b.ID).Return(b, nil)
	repo.On("Save", ctx, b).Return(nil)
	currencies.On("CurrencyCodes", ctx, []uuid.UUID{pln}).Return(map[uuid.UUID]string{pln: "PLN"}, nil)

	require.NoError(t, svc.EnsureActive(ctx, b.ID))

	resp, err := svc.Deactivate(ctx, uuid.New(), b.ID)
	require.NoError(t, err)
	assert.False(t, resp.IsActive)

	err = svc.EnsureActive(ctx, b.ID)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "BUDGET_INACTIVE", domainErr.Code)
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	pln := uuid.New()
	b, _ := budget.NewBudget("Ops", "", decimal.NewFromInt(10), pln, nil)

	repo := new(MockBudgetRepository)
	currencies := new(MockCurrencies)
	svc := NewService(repo, currencies, nil, zap.NewNop())
	repo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool { return f.Search == "op" })).
		Return([]budget.Budget{*b}, int64(1), nil)
	currencies.On("CurrencyCodes", ctx, []uuid.UUID{pln}).Return(map[uuid.UUID]string{pln: "PLN"}, nil)

	result, err := svc.List(ctx, common.ListQuery{Search: "op"})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "PLN", result.Items[0].Currency)
}
