package budget

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/workify/backend/internal/domain/shared"
)

// AggregateTypeBudget is the aggregate type of budgets
const AggregateTypeBudget = "Budget"

// Budget event types
const (
	EventTypeBudgetCreated     = "BudgetCreated"
	EventTypeBudgetUpdated     = "BudgetUpdated"
	EventTypeBudgetActivated   = "BudgetActivated"
	EventTypeBudgetDeactivated = "BudgetDeactivated"
)

var maxValue = decimal.RequireFromString("99999999.99")

// Budget is a pool of money projects are financed from
type Budget struct {
	shared.TrackableAggregateRoot
	shared.Activation
	Name        string
	Description string
	Value       decimal.Decimal
	CurrencyID  uuid.UUID
}

// NewBudget creates an active budget
func NewBudget(name, description string, value decimal.Decimal, currencyID uuid.UUID, actor *uuid.UUID) (*Budget, error) {
	b := &Budget{
		TrackableAggregateRoot: shared.NewTrackableAggregateRoot(actor),
		Activation:             shared.NewActivation(),
	}
	if err := b.set(name, description, value, currencyID); err != nil {
		return nil, err
	}
	b.AddDomainEvent(NewBudgetEvent(EventTypeBudgetCreated, b, actor))
	return b, nil
}

// Update replaces the editable fields
func (b *Budget) Update(name, description string, value decimal.Decimal, currencyID uuid.UUID, actor *uuid.UUID) error {
	if err := b.set(name, description, value, currencyID); err != nil {
		return err
	}
	b.Touch(actor)
	b.AddDomainEvent(NewBudgetEvent(EventTypeBudgetUpdated, b, actor))
	return nil
}

func (b *Budget) set(name, description string, value decimal.Decimal, currencyID uuid.UUID) error {
	name = strings.TrimSpace(name)
	err := shared.ValidationError(validation.Errors{
		"name":        validation.Validate(name, validation.Required, validation.RuneLength(1, 100)),
		"description": validation.Validate(description, validation.RuneLength(0, 2000)),
	}.Filter())
	if err != nil {
		return err
	}
	if value.IsNegative() || value.GreaterThan(maxValue) {
		return shared.NewDomainError("INVALID_INPUT", "value: must be between 0 and 99999999.99")
	}
	if currencyID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "currency: cannot be blank")
	}
	b.Name = name
	b.Description = strings.TrimSpace(description)
	b.Value = value.Round(2)
	b.CurrencyID = currencyID
	return nil
}

// EnsureActive fails when the budget cannot take new assignments
func (b *Budget) EnsureActive() error {
	if b.IsInactive() {
		return shared.NewDomainErrorf("BUDGET_INACTIVE", "Budget %s is inactive.", b.Name)
	}
	return nil
}

// Activate reactivates the budget
func (b *Budget) Activate(actor *uuid.UUID) error {
	if err := b.Activation.Activate(); err != nil {
		return err
	}
	b.Touch(actor)
	b.AddDomainEvent(NewBudgetEvent(EventTypeBudgetActivated, b, actor))
	return nil
}

// Deactivate hides the budget from the default lists
func (b *Budget) Deactivate(actor *uuid.UUID) error {
	if err := b.Activation.Deactivate(); err != nil {
		return err
	}
	b.Touch(actor)
	b.AddDomainEvent(NewBudgetEvent(EventTypeBudgetDeactivated, b, actor))
	return nil
}

// BudgetEvent carries a snapshot of a budget
type BudgetEvent struct {
	shared.BaseDomainEvent
	Name       string          `json:"name"`
	Value      decimal.Decimal `json:"value"`
	CurrencyID uuid.UUID       `json:"currency_id"`
	IsActive   bool            `json:"is_active"`
}

// NewBudgetEvent creates a budget event of eventType
func NewBudgetEvent(eventType string, b *Budget, actor *uuid.UUID) *BudgetEvent {
	return &BudgetEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeBudget, b.ID, actor),
		Name:            b.Name,
		Value:           b.Value,
		CurrencyID:      b.CurrencyID,
		IsActive:        b.IsActive,
	}
}

// BudgetRepository defines persistence for budgets
type BudgetRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Budget, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Budget, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Budget, int64, error)
	Autocomplete(ctx context.Context, query string, limit int) ([]Budget, error)
	Save(ctx context.Context, b *Budget) error
}
