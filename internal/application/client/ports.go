package client

import (
	"context"

	"github.com/google/uuid"
	"github.com/workify/backend/internal/domain/dict"
	"github.com/workify/backend/internal/domain/employee"
)

// Dictionaries resolves currencies and dimensions for contract items.
// It is implemented by the dictionary service.
type Dictionaries interface {
	ResolveCurrency(ctx context.Context, id *uuid.UUID) (uuid.UUID, error)
	CurrencyCodes(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
	Tree(ctx context.Context) (*dict.DimensionTree, error)
}

// Employees looks up contract owners
type Employees interface {
	FindByID(ctx context.Context, id uuid.UUID) (*employee.Employee, error)
}
