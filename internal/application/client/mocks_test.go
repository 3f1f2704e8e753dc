package client

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/workify/backend/internal/domain/client"
	"github.com/workify/backend/internal/domain/dict"
	"github.com/workify/backend/internal/domain/employee"
	"github.com/workify/backend/internal/domain/shared"
)

// =============================================================================
// Mock Repositories
// =============================================================================

type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.Client), args.Error(1)
}

func (m *MockClientRepository) FindBySlug(ctx context.Context, slug string) (*client.Client, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.Client), args.Error(1)
}

func (m *MockClientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]client.Client, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]client.Client), args.Get(1).(int64), args.Error(2)
}

func (m *MockClientRepository) Autocomplete(ctx context.Context, query string, limit int) ([]client.Client, error) {
	args := m.Called(ctx, query, limit)
	return args.Get(0).([]client.Client), args.Error(1)
}

func (m *MockClientRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockClientRepository) Save(ctx context.Context, c *client.Client) error {
	return m.Called(ctx, c).Error(0)
}

type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) FindByID(ctx context.Context, id uuid.UUID) (*client.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.Contract), args.Error(1)
}

func (m *MockContractRepository) FindBySlug(ctx context.Context, slug string) (*client.Contract, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.Contract), args.Error(1)
}

func (m *MockContractRepository) FindAll(ctx context.Context, filter shared.Filter) ([]client.Contract, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]client.Contract), args.Get(1).(int64), args.Error(2)
}

func (m *MockContractRepository) FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]client.Contract, int64, error) {
	args := m.Called(ctx, clientID, filter)
	return args.Get(0).([]client.Contract), args.Get(1).(int64), args.Error(2)
}

func (m *MockContractRepository) Autocomplete(ctx context.Context, query string, limit int) ([]client.Contract, error) {
	args := m.Called(ctx, query, limit)
	return args.Get(0).([]client.Contract), args.Error(1)
}

func (m *MockContractRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockContractRepository) Save(ctx context.Context, c *client.Contract) error {
	return m.Called(ctx, c).Error(0)
}

type MockContractItemRepository struct {
	mock.Mock
}

func (m *MockContractItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*client.ContractItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.ContractItem), args.Error(1)
}

func (m *MockContractItemRepository) FindByContract(ctx context.Context, contractID uuid.UUID) ([]client.ContractItem, error) {
	args := m.Called(ctx, contractID)
	return args.Get(0).([]client.ContractItem), args.Error(1)
}

func (m *MockContractItemRepository) CountInvoices(ctx context.Context, contractID uuid.UUID) (map[uuid.UUID]int64, error) {
	args := m.Called(ctx, contractID)
	return args.Get(0).(map[uuid.UUID]int64), args.Error(1)
}

func (m *MockContractItemRepository) Save(ctx context.Context, item *client.ContractItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockContractItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockSalesInvoiceRepository struct {
	mock.Mock
}

func (m *MockSalesInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*client.SalesInvoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.SalesInvoice), args.Error(1)
}

func (m *MockSalesInvoiceRepository) FindByContract(ctx context.Context, contractID uuid.UUID) ([]client.SalesInvoice, error) {
	args := m.Called(ctx, contractID)
	return args.Get(0).([]client.SalesInvoice), args.Error(1)
}

func (m *MockSalesInvoiceRepository) FindByContractItem(ctx context.Context, itemID uuid.UUID) ([]client.SalesInvoice, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).([]client.SalesInvoice), args.Error(1)
}

func (m *MockSalesInvoiceRepository) CountByContractItem(ctx context.Context, itemID uuid.UUID) (int64, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSalesInvoiceRepository) ExistsByNumber(ctx context.Context, itemID uuid.UUID, number string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, itemID, number, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSalesInvoiceRepository) Save(ctx context.Context, invoice *client.SalesInvoice) error {
	return m.Called(ctx, invoice).Error(0)
}

func (m *MockSalesInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// =============================================================================
// Mock Collaborators
// =============================================================================

type MockDictionaries struct {
	mock.Mock
}

func (m *MockDictionaries) ResolveCurrency(ctx context.Context, id *uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockDictionaries) CurrencyCodes(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[uuid.UUID]string), args.Error(1)
}

func (m *MockDictionaries) Tree(ctx context.Context) (*dict.DimensionTree, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dict.DimensionTree), args.Error(1)
}

type MockEmployees struct {
	mock.Mock
}

func (m *MockEmployees) FindByID(ctx context.Context, id uuid.UUID) (*employee.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*employee.Employee), args.Error(1)
}

type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	return m.Called(ctx, key, data, contentType).Error(0)
}

func (m *MockObjectStorage) GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, key, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) DeleteObject(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockObjectStorage) ObjectExists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

// recordingPublisher collects published events
type recordingPublisher struct {
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) types() []string {
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType()
	}
	return out
}

func fixedSuffix(s string) shared.SlugGeneratorOption {
	return shared.WithRandomSource(func(n int) (string, error) { return s[:n], nil })
}
