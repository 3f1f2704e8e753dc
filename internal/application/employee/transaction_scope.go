package employee

import (
	"context"

	"github.com/workify/backend/internal/domain/employee"
	"github.com/workify/backend/internal/domain/identity"
)

// TransactionScope runs employee and user changes atomically.
// An employee is always created, renamed and (de)activated together with its user.
type TransactionScope interface {
	// Execute runs fn within a database transaction; an error rolls it back
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories gives access to repositories sharing one transaction
type TransactionalRepositories interface {
	UserRepo() identity.UserRepository
	EmployeeRepo() employee.EmployeeRepository
}

// NoOpTransactionScope runs the function without a transaction (tests)
type NoOpTransactionScope struct {
	userRepo     identity.UserRepository
	employeeRepo employee.EmployeeRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(userRepo identity.UserRepository, employeeRepo employee.EmployeeRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{userRepo: userRepo, employeeRepo: employeeRepo}
}

// Execute runs fn directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// UserRepo returns the user repository
func (s *NoOpTransactionScope) UserRepo() identity.UserRepository {
	return s.userRepo
}

// EmployeeRepo returns the employee repository
func (s *NoOpTransactionScope) EmployeeRepo() employee.EmployeeRepository {
	return s.employeeRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
