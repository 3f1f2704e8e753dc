package dict

import (
	"context"

	"github.com/google/uuid"
)

// MaxCurrencyCodeLength is the ISO 4217 code length
const MaxCurrencyCodeLength = 3

// Currency is a currency used by contract items, budgets and rates
type Currency struct {
	Entry
}

// NewCurrency creates a currency; the code is stored upper-case
func NewCurrency(code, name string, isDefault bool) (*Currency, error) {
	e, err := newEntry(code, name, isDefault, MaxCurrencyCodeLength)
	if err != nil {
		return nil, err
	}
	return &Currency{Entry: e}, nil
}

// Update replaces the code, name and default flag
func (c *Currency) Update(code, name string, isDefault bool) error {
	return c.set(code, name, isDefault, MaxCurrencyCodeLength)
}

// CurrencyRepository defines persistence for currencies
type CurrencyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Currency, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Currency, error)
	FindByCode(ctx context.Context, code string) (*Currency, error)
	// FindAll returns every currency ordered by code
	FindAll(ctx context.Context) ([]Currency, error)
	// FindDefault returns shared.ErrNotFound when no currency is flagged default
	FindDefault(ctx context.Context) (*Currency, error)
	ExistsByCode(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error)
	// Save creates or updates a currency. Saving a default currency clears the
	// flag on all other currencies in the same transaction.
	Save(ctx context.Context, currency *Currency) error
	Delete(ctx context.Context, id uuid.UUID) error
	// IsReferenced reports whether contract items, budgets or rates use the currency
	IsReferenced(ctx context.Context, id uuid.UUID) (bool, error)
}
