package client

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/workify/backend/internal/domain/client"
	"github.com/workify/backend/internal/domain/shared"
)

// =============================================================================
// Client DTOs
// =============================================================================

// ClientRequest creates or updates a client
type ClientRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID        uuid.UUID  `json:"id"`
	Slug      string     `json:"slug"`
	Name      string     `json:"name"`
	LogoURL   string     `json:"logo_url,omitempty"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	CreatedBy *uuid.UUID `json:"created_by,omitempty"`
	UpdatedBy *uuid.UUID `json:"updated_by,omitempty"`
}

// ToClientResponse converts a client; the logo URL is filled by the service
func ToClientResponse(c *client.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID,
		Slug:      c.Slug,
		Name:      c.Name,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		CreatedBy: c.CreatedBy,
		UpdatedBy: c.UpdatedBy,
	}
}

// =============================================================================
// Contract DTOs
// =============================================================================

// ContractRequest creates or updates a contract
type ContractRequest struct {
	Number    string     `json:"number" binding:"required,min=1,max=100"`
	Name      string     `json:"name" binding:"required,min=1,max=100"`
	StartDate string     `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string     `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Comments  string     `json:"comments" binding:"max=5000"`
	OwnerID   *uuid.UUID `json:"owner_id"`
}

func (r ContractRequest) details() (client.ContractDetails, error) {
	start, err := shared.ParseDate(r.StartDate)
	if err != nil {
		return client.ContractDetails{}, err
	}
	end, err := shared.ParseOptionalDate(r.EndDate)
	if err != nil {
		return client.ContractDetails{}, err
	}
	return client.ContractDetails{
		Number:    r.Number,
		Name:      r.Name,
		StartDate: start,
		EndDate:   end,
		Comments:  r.Comments,
		OwnerID:   r.OwnerID,
	}, nil
}

// ContractResponse represents a contract in API responses
type ContractResponse struct {
	ID          uuid.UUID  `json:"id"`
	Slug        string     `json:"slug"`
	ClientID    uuid.UUID  `json:"client_id"`
	ClientSlug  string     `json:"client_slug,omitempty"`
	Number      string     `json:"number"`
	Name        string     `json:"name"`
	DisplayName string     `json:"display_name"`
	StartDate   string     `json:"start_date"`
	EndDate     *string    `json:"end_date,omitempty"`
	Comments    string     `json:"comments"`
	OwnerID     *uuid.UUID `json:"owner_id,omitempty"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CreatedBy   *uuid.UUID `json:"created_by,omitempty"`
	UpdatedBy   *uuid.UUID `json:"updated_by,omitempty"`
}

// ToContractResponse converts a contract
func ToContractResponse(c *client.Contract) ContractResponse {
	return ContractResponse{
		ID:          c.ID,
		Slug:        c.Slug,
		ClientID:    c.ClientID,
		Number:      c.Number,
		Name:        c.Name,
		DisplayName: c.DisplayName(),
		StartDate:   c.StartDate.Format(shared.DateLayout),
		EndDate:     formatOptionalDate(c.EndDate),
		Comments:    c.Comments,
		OwnerID:     c.OwnerID,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		CreatedBy:   c.CreatedBy,
		UpdatedBy:   c.UpdatedBy,
	}
}

// CurrencyTotalResponse is a sum in one currency
type CurrencyTotalResponse struct {
	CurrencyID uuid.UUID       `json:"currency_id"`
	Currency   string          `json:"currency"`
	Total      decimal.Decimal `json:"total"`
}

// ContractTotalsResponse sums contract item values and invoiced amounts per currency
type ContractTotalsResponse struct {
	Value    []CurrencyTotalResponse `json:"value"`
	Invoiced []CurrencyTotalResponse `json:"invoiced"`
	Paid     []CurrencyTotalResponse `json:"paid"`
}

// =============================================================================
// Contract item DTOs
// =============================================================================

// ContractItemRequest creates or updates a contract item
type ContractItemRequest struct {
	Name         string          `json:"name" binding:"required,min=1,max=100"`
	Value        decimal.Decimal `json:"value"`
	CurrencyID   *uuid.UUID      `json:"currency_id"`
	DimensionIDs []uuid.UUID     `json:"dimension_ids"`
}

// ContractItemResponse represents a contract item in API responses
type ContractItemResponse struct {
	ID           uuid.UUID            `json:"id"`
	ContractID   uuid.UUID            `json:"contract_id"`
	Name         string               `json:"name"`
	Value        decimal.Decimal      `json:"value"`
	CurrencyID   uuid.UUID            `json:"currency_id"`
	Currency     string               `json:"currency"`
	DimensionIDs []uuid.UUID          `json:"dimension_ids"`
	Dimensions   string               `json:"dimensions"`
	Categories   map[string]uuid.UUID `json:"categories"`
	InvoiceCount int64                `json:"invoice_count"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
	CreatedBy    *uuid.UUID           `json:"created_by,omitempty"`
	UpdatedBy    *uuid.UUID           `json:"updated_by,omitempty"`
}

// =============================================================================
// Sales invoice DTOs
// =============================================================================

// InvoiceRequest creates or updates a sales invoice
type InvoiceRequest struct {
	ContractItemID uuid.UUID       `json:"contract_item_id" binding:"required"`
	Number         string          `json:"number" binding:"required,min=1,max=50"`
	IssueDate      string          `json:"issue_date" binding:"required,datetime=2006-01-02"`
	DueDate        string          `json:"due_date" binding:"required,datetime=2006-01-02"`
	Value          decimal.Decimal `json:"value" binding:"required"`
}

func (r InvoiceRequest) details() (client.InvoiceDetails, error) {
	issue, err := shared.ParseDate(r.IssueDate)
	if err != nil {
		return client.InvoiceDetails{}, err
	}
	due, err := shared.ParseDate(r.DueDate)
	if err != nil {
		return client.InvoiceDetails{}, err
	}
	return client.InvoiceDetails{Number: r.Number, IssueDate: issue, DueDate: due, Value: r.Value}, nil
}

// SettleRequest marks an invoice paid
type SettleRequest struct {
	PaymentDate string `json:"payment_date" binding:"required,datetime=2006-01-02"`
}

// InvoiceResponse represents a sales invoice in API responses
type InvoiceResponse struct {
	ID             uuid.UUID       `json:"id"`
	ContractItemID uuid.UUID       `json:"contract_item_id"`
	Number         string          `json:"number"`
	IssueDate      string          `json:"issue_date"`
	DueDate        string          `json:"due_date"`
	Value          decimal.Decimal `json:"value"`
	Status         string          `json:"status"`
	PaymentDate    *string         `json:"payment_date,omitempty"`
	HasFile        bool            `json:"has_file"`
	CanSettle      bool            `json:"can_settle"`
	IsOverdue      bool            `json:"is_overdue"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	CreatedBy      *uuid.UUID      `json:"created_by,omitempty"`
	UpdatedBy      *uuid.UUID      `json:"updated_by,omitempty"`
}

// ToInvoiceResponse converts a sales invoice as seen on day
func ToInvoiceResponse(s *client.SalesInvoice, day time.Time) InvoiceResponse {
	return InvoiceResponse{
		ID:             s.ID,
		ContractItemID: s.ContractItemID,
		Number:         s.Number,
		IssueDate:      s.IssueDate.Format(shared.DateLayout),
		DueDate:        s.DueDate.Format(shared.DateLayout),
		Value:          s.Value,
		Status:         string(s.Status),
		PaymentDate:    formatOptionalDate(s.PaymentDate),
		HasFile:        s.FileKey != "",
		CanSettle:      s.CanSettle(),
		IsOverdue:      s.IsOverdue(day),
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
		CreatedBy:      s.CreatedBy,
		UpdatedBy:      s.UpdatedBy,
	}
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(shared.DateLayout)
	return &s
}
