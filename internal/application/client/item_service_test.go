package client

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/workify/backend/internal/domain/client"
	"github.com/workify/backend/internal/domain/dict"
	"github.com/workify/backend/internal/domain/shared"
	"go.uber.org/zap"
)

type itemFixture struct {
	contracts *MockContractRepository
	items     *MockContractItemRepository
	invoices  *MockSalesInvoiceRepository
	dicts     *MockDictionaries
	pub       *recordingPublisher
	svc       *ContractItemService
}

func newItemFixture() *itemFixture {
	f := &itemFixture{
		contracts: new(MockContractRepository),
		items:     new(MockContractItemRepository),
		invoices:  new(MockSalesInvoiceRepository),
		dicts:     new(MockDictionaries),
		pub:       &recordingPublisher{},
	}
	f.svc = NewContractItemService(f.contracts, f.items, f.invoices, f.dicts, f.pub, zap.NewNop())
	return f
}

func dimensionTree(t *testing.T) (*dict.DimensionTree, uuid.UUID, uuid.UUID) {
	t.Helper()
	root, err := dict.NewDimension("Department", nil)
	require.NoError(t, err)
	child, err := dict.NewDimension("Engineering", &root.ID)
	require.NoError(t, err)
	return dict.NewDimensionTree([]dict.Dimension{*root, *child}), root.ID, child.ID
}

func TestContractItemService_Create(t *testing.T) {
	ctx := context.Background()
	actor := uuid.New()

	t.Run("uses default currency and resolves dimensions", func(t *testing.T) {
		f := newItemFixture()
		contract := mustContract(t, mustClient(t, "Acme", "acme"), "c-1")
		tree, rootID, childID := dimensionTree(t)
		pln := uuid.New()

		f.contracts.On("FindBySlug", ctx, "c-1").Return(contract, nil)
		f.dicts.On("ResolveCurrency", ctx, (*uuid.UUID)(nil)).Return(pln, nil)
		f.dicts.On("Tree", ctx).Return(tree, nil)
		f.dicts.On("CurrencyCodes", ctx, []uuid.UUID{pln}).Return(map[uuid.UUID]string{pln: "PLN"}, nil)
		f.items.On("Save", ctx, mock.AnythingOfType("*client.ContractItem")).Return(nil)

		resp, err := f.svc.Create(ctx, actor, "c-1", ContractItemRequest{
			Name:         "Development",
			Value:        decimal.RequireFromString("1500.50"),
			DimensionIDs: []uuid.UUID{childID},
		})
		require.NoError(t, err)
		assert.Equal(t, pln, resp.CurrencyID)
		assert.Equal(t, "PLN", resp.Currency)
		assert.Equal(t, "Engineering", resp.Dimensions)
		assert.Equal(t, map[string]uuid.UUID{"Department": childID}, resp.Categories)
		assert.NotEqual(t, rootID, childID)
		assert.Equal(t, []string{client.EventTypeContractItemCreated}, f.pub.types())
	})

	t.Run("unknown dimension", func(t *testing.T) {
		f := newItemFixture()
		contract := mustContract(t, mustClient(t, "Acme", "acme"), "c-1")
		tree, _, _ := dimensionTree(t)

		f.contracts.On("FindBySlug", ctx, "c-1").Return(contract, nil)
		f.dicts.On("ResolveCurrency", ctx, mock.Anything).Return(uuid.New(), nil)
		f.dicts.On("Tree", ctx).Return(tree, nil)

		_, err := f.svc.Create(ctx, actor, "c-1", ContractItemRequest{
			Name:         "Development",
			Value:        decimal.NewFromInt(1),
			DimensionIDs: []uuid.UUID{uuid.New()},
		})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		f.items.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestContractItemService_Delete(t *testing.T) {
	ctx := context.Background()
	actor := uuid.New()

	t.Run("refused with invoices", func(t *testing.T) {
		f := newItemFixture()
		item := mustItem(t, mustContract(t, mustClient(t, "Acme", "acme"), "c-1"))
		f.items.On("FindByID", ctx, item.ID).Return(item, nil)
		f.invoices.On("CountByContractItem", ctx, item.ID).Return(int64(2), nil)

		err := f.svc.Delete(ctx, actor, item.ID)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
		f.items.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("deletes without invoices", func(t *testing.T) {
		f := newItemFixture()
		item := mustItem(t, mustContract(t, mustClient(t, "Acme", "acme"), "c-1"))
		f.items.On("FindByID", ctx, item.ID).Return(item, nil)
		f.invoices.On("CountByContractItem", ctx, item.ID).Return(int64(0), nil)
		f.items.On("Delete", ctx, item.ID).Return(nil)

		require.NoError(t, f.svc.Delete(ctx, actor, item.ID))
		assert.Equal(t, []string{client.EventTypeContractItemDeleted}, f.pub.types())
	})
}

func TestContractItemService_ListByContract(t *testing.T) {
	ctx := context.Background()
	f := newItemFixture()
	contract := mustContract(t, mustClient(t, "Acme", "acme"), "c-1")
	item := mustItem(t, contract)
	tree, _, _ := dimensionTree(t)

	f.contracts.On("FindBySlug", ctx, "c-1").Return(contract, nil)
	f.items.On("FindByContract", ctx, contract.ID).Return([]client.ContractItem{*item}, nil)
	f.items.On("CountInvoices", ctx, contract.ID).Return(map[uuid.UUID]int64{item.ID: 3}, nil)
	f.dicts.On("CurrencyCodes", ctx, []uuid.UUID{item.CurrencyID}).Return(map[uuid.UUID]string{item.CurrencyID: "EUR"}, nil)
	f.dicts.On("Tree", ctx).Return(tree, nil)

	out, err := f.svc.ListByContract(ctx, "c-1")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, int64(3), out[0].InvoiceCount)
	assert.Equal(t, "EUR", out[0].Currency)
	assert.Empty(t, out[0].Dimensions)
	assert.NotNil(t, out[0].DimensionIDs)
}
