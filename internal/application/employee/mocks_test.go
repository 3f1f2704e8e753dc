package employee

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/workify/backend/internal/domain/employee"
	"github.com/workify/backend/internal/domain/identity"
	"github.com/workify/backend/internal/domain/shared"
)

// =============================================================================
// Mock Repositories
// =============================================================================

type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*employee.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*employee.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindBySlug(ctx context.Context, slug string) (*employee.Employee, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*employee.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*employee.Employee, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*employee.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]employee.Employee, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]employee.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]employee.Employee, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]employee.Employee), args.Get(1).(int64), args.Error(2)
}

func (m *MockEmployeeRepository) Autocomplete(ctx context.Context, query string, limit int) ([]employee.Employee, error) {
	args := m.Called(ctx, query, limit)
	return args.Get(0).([]employee.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmployeeRepository) ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmployeeRepository) Save(ctx context.Context, e *employee.Employee) error {
	return m.Called(ctx, e).Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) FindByRoleID(ctx context.Context, roleID uuid.UUID) ([]identity.User, error) {
	args := m.Called(ctx, roleID)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockRateRepository struct {
	mock.Mock
}

func (m *MockRateRepository) FindByID(ctx context.Context, id uuid.UUID) (*employee.Rate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*employee.Rate), args.Error(1)
}

func (m *MockRateRepository) FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]employee.Rate, error) {
	args := m.Called(ctx, employeeID)
	return args.Get(0).([]employee.Rate), args.Error(1)
}

func (m *MockRateRepository) Save(ctx context.Context, r *employee.Rate) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*employee.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*employee.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]employee.Document, error) {
	args := m.Called(ctx, employeeID)
	return args.Get(0).([]employee.Document), args.Error(1)
}

func (m *MockDocumentRepository) Save(ctx context.Context, d *employee.Document) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDocumentRepository) Delete(ctx context.Context, ids []uuid.UUID) error {
	return m.Called(ctx, ids).Error(0)
}

// =============================================================================
// Mock Ports
// =============================================================================

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

type MockDocumentTypes struct {
	mock.Mock
}

func (m *MockDocumentTypes) ResolveDocumentType(ctx context.Context, id *uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(uuid.UUID), args.Error(1)
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

func mustEmployee(t *testing.T, first, last, email string) *employee.Employee {
	t.Helper()
	e, err := employee.NewEmployee(uuid.New(), first, last, email, shared.Slugify(employee.SlugSource(first, last)), "", nil)
	require.NoError(t, err)
	e.ClearDomainEvents()
	return e
}
