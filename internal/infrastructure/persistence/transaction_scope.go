package persistence

import (
	"context"

	appemployee "github.com/workify/backend/internal/application/employee"
	"github.com/workify/backend/internal/domain/employee"
	"github.com/workify/backend/internal/domain/identity"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appemployee.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// UserRepo returns the user repository scoped to the current transaction.
func (r *gormTransactionalRepositories) UserRepo() identity.UserRepository {
	return NewGormUserRepository(r.tx)
}

// EmployeeRepo returns the employee repository scoped to the current transaction.
func (r *gormTransactionalRepositories) EmployeeRepo() employee.EmployeeRepository {
	return NewGormEmployeeRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appemployee.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appemployee.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
