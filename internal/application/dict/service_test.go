package dict

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/workify/backend/internal/domain/dict"
	"github.com/workify/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// =============================================================================
// Mock Repositories
// =============================================================================

type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) FindByID(ctx context.Context, id uuid.UUID) (*dict.Currency, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dict.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]dict.Currency, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]dict.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) FindByCode(ctx context.Context, code string) (*dict.Currency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dict.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) FindAll(ctx context.Context) ([]dict.Currency, error) {
	args := m.Called(ctx)
	return args.Get(0).([]dict.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) FindDefault(ctx context.Context) (*dict.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dict.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ExistsByCode(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, code, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCurrencyRepository) Save(ctx context.Context, c *dict.Currency) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCurrencyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCurrencyRepository) IsReferenced(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockDimensionRepository struct {
	mock.Mock
}

func (m *MockDimensionRepository) FindByID(ctx context.Context, id uuid.UUID) (*dict.Dimension, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dict.Dimension), args.Error(1)
}

func (m *MockDimensionRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]dict.Dimension, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]dict.Dimension), args.Error(1)
}

func (m *MockDimensionRepository) FindAll(ctx context.Context) ([]dict.Dimension, error) {
	args := m.Called(ctx)
	return args.Get(0).([]dict.Dimension), args.Error(1)
}

func (m *MockDimensionRepository) Save(ctx context.Context, d *dict.Dimension) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDimensionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func newTestService() (*Service, *MockCurrencyRepository, *MockDimensionRepository) {
	currencies := new(MockCurrencyRepository)
	dimensions := new(MockDimensionRepository)
	return NewService(currencies, nil, dimensions, zap.NewNop()), currencies, dimensions
}

// =============================================================================
// Tests
// =============================================================================

func TestService_CreateCurrency(t *testing.T) {
	ctx := context.Background()

	t.Run("creates currency", func(t *testing.T) {
		svc, repo, _ := newTestService()
		repo.On("ExistsByCode", ctx, "PLN", (*uuid.UUID)(nil)).Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*dict.Currency")).Return(nil)

		resp, err := svc.CreateCurrency(ctx, EntryRequest{Code: "pln", Name: "Zloty", IsDefault: true})
		require.NoError(t, err)
		assert.Equal(t, "PLN", resp.Code)
		assert.True(t, resp.IsDefault)
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate code", func(t *testing.T) {
		svc, repo, _ := newTestService()
		repo.On("ExistsByCode", ctx, "PLN", (*uuid.UUID)(nil)).Return(true, nil)

		_, err := svc.CreateCurrency(ctx, EntryRequest{Code: "PLN", Name: "Zloty"})
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestService_DeleteCurrency(t *testing.T) {
	ctx := context.Background()
	c, err := dict.NewCurrency("EUR", "Euro", false)
	require.NoError(t, err)

	t.Run("refuses referenced currency", func(t *testing.T) {
		svc, repo, _ := newTestService()
		repo.On("FindByID", ctx, c.ID).Return(c, nil)
		repo.On("IsReferenced", ctx, c.ID).Return(true, nil)

		err := svc.DeleteCurrency(ctx, c.ID)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("deletes unused currency", func(t *testing.T) {
		svc, repo, _ := newTestService()
		repo.On("FindByID", ctx, c.ID).Return(c, nil)
		repo.On("IsReferenced", ctx, c.ID).Return(false, nil)
		repo.On("Delete", ctx, c.ID).Return(nil)

		require.NoError(t, svc.DeleteCurrency(ctx, c.ID))
		repo.AssertExpectations(t)
	})
}

func TestService_ResolveCurrency(t *testing.T) {
	ctx := context.Background()
	def, err := dict.NewCurrency("PLN", "Zloty", true)
	require.NoError(t, err)

	t.Run("falls back to default", func(t *testing.T) {
		svc, repo, _ := newTestService()
		repo.On("FindDefault", ctx).Return(def, nil)

		id, err := svc.ResolveCurrency(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, def.ID, id)
	})

	t.Run("no default configured", func(t *testing.T) {
		svc, repo, _ := newTestService()
		repo.On("FindDefault", ctx).Return(nil, shared.ErrNotFound)

		_, err := svc.ResolveCurrency(ctx, nil)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestService_UpdateDimension(t *testing.T) {
	ctx := context.Background()
	root, _ := dict.NewDimension("Region", nil)
	child, _ := dict.NewDimension("Europe", &root.ID)
	all := []dict.Dimension{*root, *child}

	t.Run("rejects cycle", func(t *testing.T) {
		svc, _, repo := newTestService()
		repo.On("FindAll", ctx).Return(all, nil)

		_, err := svc.UpdateDimension(ctx, root.ID, DimensionRequest{Name: "Region", ParentID: &child.ID})
		require.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("renames dimension", func(t *testing.T) {
		svc, _, repo := newTestService()
		repo.On("FindAll", ctx).Return(all, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*dict.Dimension")).Return(nil)

		resp, err := svc.UpdateDimension(ctx, child.ID, DimensionRequest{Name: "EMEA", ParentID: &root.ID})
		require.NoError(t, err)
		assert.Equal(t, "EMEA", resp.Name)
		assert.Equal(t, root.ID, resp.TopLevelID)
	})
}

func TestService_DimensionTree(t *testing.T) {
	ctx := context.Background()
	root, _ := dict.NewDimension("Region", nil)
	child, _ := dict.NewDimension("Europe", &root.ID)
	svc, _, repo := newTestService()
	repo.On("FindAll", ctx).Return([]dict.Dimension{*root, *child}, nil)

	nodes, err := svc.DimensionTree(ctx)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	require.Len(t, nodes[0].Children, 1)
	assert.Equal(t, "Europe", nodes[0].Children[0].Name)
}
