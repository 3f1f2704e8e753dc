package budget

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/workify/backend/internal/domain/budget"
)

// BudgetRequest creates or updates a budget
type BudgetRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=100"`
	Description string          `json:"description" binding:"max=2000"`
	Value       decimal.Decimal `json:"value"`
	CurrencyID  *uuid.UUID      `json:"currency_id"`
}

// BudgetResponse represents a budget in API responses
type BudgetResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
	CurrencyID  uuid.UUID       `json:"currency_id"`
	Currency    string          `json:"currency"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	CreatedBy   *uuid.UUID      `json:"created_by,omitempty"`
	UpdatedBy   *uuid.UUID      `json:"updated_by,omitempty"`
}

// ToBudgetResponse converts a budget; currency is the currency code
func ToBudgetResponse(b *budget.Budget, currency string) BudgetResponse {
	return BudgetResponse{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		Value:       b.Value,
		CurrencyID:  b.CurrencyID,
		Currency:    currency,
		IsActive:    b.IsActive,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
		CreatedBy:   b.CreatedBy,
		UpdatedBy:   b.UpdatedBy,
	}
}
