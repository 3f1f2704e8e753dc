package project

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/workify/backend/internal/domain/budget"
	"github.com/workify/backend/internal/domain/client"
	"github.com/workify/backend/internal/domain/employee"
	"github.com/workify/backend/internal/domain/project"
	"github.com/workify/backend/internal/domain/shared"
)

// =============================================================================
// Mock Repositories
// =============================================================================

type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Project), args.Error(1)
}

func (m *MockProjectRepository) FindBySlug(ctx context.Context, slug string) (*project.Project, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Project), args.Error(1)
}

func (m *MockProjectRepository) FindAll(ctx context.Context, filter shared.Filter) ([]project.Project, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]project.Project), args.Get(1).(int64), args.Error(2)
}

func (m *MockProjectRepository) Autocomplete(ctx context.Context, query string, limit int) ([]project.Project, error) {
	args := m.Called(ctx, query, limit)
	return args.Get(0).([]project.Project), args.Error(1)
}

func (m *MockProjectRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockProjectRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProjectRepository) Save(ctx context.Context, p *project.Project) error {
	return m.Called(ctx, p).Error(0)
}

type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.BudgetAssignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.BudgetAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]project.BudgetAssignment, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]project.BudgetAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) Save(ctx context.Context, a *project.BudgetAssignment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAssignmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

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
