package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/workify/backend/internal/application/common"
	"github.com/workify/backend/internal/domain/audit"
	"github.com/workify/backend/internal/domain/client"
	"github.com/workify/backend/internal/domain/shared"
	"go.uber.org/zap"
)

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Save(ctx context.Context, entry *audit.Entry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockAuditRepository) FindByAggregate(ctx context.Context, aggregateType string, aggregateID uuid.UUID, filter shared.Filter) ([]audit.Entry, int64, error) {
	args := m.Called(ctx, aggregateType, aggregateID, filter)
	return args.Get(0).([]audit.Entry), args.Get(1).(int64), args.Error(2)
}

func (m *MockAuditRepository) FindByAggregates(ctx context.Context, aggregateIDs []uuid.UUID, filter shared.Filter) ([]audit.Entry, int64, error) {
	args := m.Called(ctx, aggregateIDs, filter)
	return args.Get(0).([]audit.Entry), args.Get(1).(int64), args.Error(2)
}

// the client mocks only implement what the audit service calls
type MockContractRepository struct {
	mock.Mock
	client.ContractRepository
}

func (m *MockContractRepository) FindBySlug(ctx context.Context, slug string) (*client.Contract, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.Contract), args.Error(1)
}

type MockItemRepository struct {
	mock.Mock
	client.ContractItemRepository
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*client.ContractItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.ContractItem), args.Error(1)
}

func (m *MockItemRepository) FindByContract(ctx context.Context, contractID uuid.UUID) ([]client.ContractItem, error) {
	args := m.Called(ctx, contractID)
	return args.Get(0).([]client.ContractItem), args.Error(1)
}

type MockInvoiceRepository struct {
	mock.Mock
	client.SalesInvoiceRepository
}

func (m *MockInvoiceRepository) FindByContract(ctx context.Context, contractID uuid.UUID) ([]client.SalesInvoice, error) {
	args := m.Called(ctx, contractID)
	return args.Get(0).([]client.SalesInvoice), args.Error(1)
}

type testEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

func TestRecordHandler_Handle(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAuditRepository)
	handler := NewRecordHandler(repo, zap.NewNop())

	actor := uuid.New()
	event := &testEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(client.EventTypeContractUpdated, client.AggregateTypeContract, uuid.New(), &actor),
		Name:            "Support 2026",
	}
	repo.On("Save", ctx, mock.MatchedBy(func(e *audit.Entry) bool {
		return e.EventID == event.EventID() && e.AggregateType == "Contract" && *e.ActorID == actor
	})).Return(nil)

	require.NoError(t, handler.Handle(ctx, event))
	assert.Empty(t, handler.EventTypes())
	repo.AssertExpectations(t)
}

func TestRecordHandler_Handle_SaveError(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAuditRepository)
	handler := NewRecordHandler(repo, zap.NewNop())
	repo.On("Save", ctx, mock.Anything).Return(errors.New("db down"))

	event := &testEvent{BaseDomainEvent: shared.NewBaseDomainEvent("ClientCreated", "Client", uuid.New(), nil)}
	assert.Error(t, handler.Handle(ctx, event))
}

func TestService_ContractHistory(t *testing.T) {
	ctx := context.Background()
	entries := new(MockAuditRepository)
	contracts := new(MockContractRepository)
	items := new(MockItemRepository)
	invoices := new(MockInvoiceRepository)
	service := NewService(entries, contracts, items, invoices, zap.NewNop())

	contract := &client.Contract{}
	contract.ID = uuid.New()
	item := client.ContractItem{}
	item.ID = uuid.New()
	invoice := client.SalesInvoice{}
	invoice.ID = uuid.New()

	contracts.On("FindBySlug", ctx, "c-1-support").Return(contract, nil)
	items.On("FindByContract", ctx, contract.ID).Return([]client.ContractItem{item}, nil)
	invoices.On("FindByContract", ctx, contract.ID).Return([]client.SalesInvoice{invoice}, nil)

	query := common.ListQuery{Page: 1, PageSize: 20}
	entries.On("FindByAggregates", ctx, []uuid.UUID{contract.ID, item.ID, invoice.ID}, query.Filter()).
		Return([]audit.Entry{{ID: uuid.New(), AggregateType: "ContractItem", AggregateID: item.ID, EventType: "ContractItemCreated"}}, int64(1), nil)

	result, err := service.ContractHistory(ctx, "c-1-support", query)

	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	require.Len(t, result.Items, 1)
	assert.Equal(t, item.ID, result.Items[0].AggregateID)
}

func TestService_ContractHistory_UnknownContract(t *testing.T) {
	ctx := context.Background()
	contracts := new(MockContractRepository)
	service := NewService(new(MockAuditRepository), contracts, new(MockItemRepository), new(MockInvoiceRepository), zap.NewNop())
	contracts.On("FindBySlug", ctx, "missing").Return(nil, shared.NotFound("Contract"))

	_, err := service.ContractHistory(ctx, "missing", common.ListQuery{})

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestService_ContractItemHistory(t *testing.T) {
	ctx := context.Background()
	entries := new(MockAuditRepository)
	items := new(MockItemRepository)
	service := NewService(entries, new(MockContractRepository), items, new(MockInvoiceRepository), zap.NewNop())

	item := &client.ContractItem{}
	item.ID = uuid.New()
	items.On("FindByID", ctx, item.ID).Return(item, nil)
	query := common.ListQuery{}
	entries.On("FindByAggregate", ctx, client.AggregateTypeContractItem, item.ID, query.Filter()).
		Return([]audit.Entry{}, int64(0), nil)

	result, err := service.ContractItemHistory(ctx, item.ID, query)

	require.NoError(t, err)
	assert.NotNil(t, result.Items)
	assert.Empty(t, result.Items)
}
