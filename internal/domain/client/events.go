package client

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/workify/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeClient       = "Client"
	AggregateTypeContract     = "Contract"
	AggregateTypeContractItem = "ContractItem"
	AggregateTypeSalesInvoice = "SalesInvoice"
)

// Event type constants
const (
	EventTypeClientCreated     = "ClientCreated"
	EventTypeClientUpdated     = "ClientUpdated"
	EventTypeClientActivated   = "ClientActivated"
	EventTypeClientDeactivated = "ClientDeactivated"

	EventTypeContractCreated     = "ContractCreated"
	EventTypeContractUpdated     = "ContractUpdated"
	EventTypeContractActivated   = "ContractActivated"
	EventTypeContractDeactivated = "ContractDeactivated"

	EventTypeContractItemCreated = "ContractItemCreated"
	EventTypeContractItemUpdated = "ContractItemUpdated"
	EventTypeContractItemDeleted = "ContractItemDeleted"

	EventTypeSalesInvoiceCreated = "SalesInvoiceCreated"
	EventTypeSalesInvoiceUpdated = "SalesInvoiceUpdated"
	EventTypeSalesInvoiceSettled = "SalesInvoiceSettled"
	EventTypeSalesInvoiceDeleted = "SalesInvoiceDeleted"
)

// ClientEvent carries a snapshot of a client after the change
type ClientEvent struct {
	shared.BaseDomainEvent
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// NewClientEvent creates a client event of eventType
func NewClientEvent(eventType string, c *Client, actor *uuid.UUID) *ClientEvent {
	return &ClientEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeClient, c.ID, actor),
		Slug:            c.Slug,
		Name:            c.Name,
		IsActive:        c.IsActive,
	}
}

// ContractEvent carries a snapshot of a contract after the change
type ContractEvent struct {
	shared.BaseDomainEvent
	ClientID  uuid.UUID  `json:"client_id"`
	Slug      string     `json:"slug"`
	Number    string     `json:"number"`
	Name      string     `json:"name"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	OwnerID   *uuid.UUID `json:"owner_id,omitempty"`
	IsActive  bool       `json:"is_active"`
}

// NewContractEvent creates a contract event of eventType
func NewContractEvent(eventType string, c *Contract, actor *uuid.UUID) *ContractEvent {
	return &ContractEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeContract, c.ID, actor),
		ClientID:        c.ClientID,
		Slug:            c.Slug,
		Number:          c.Number,
		Name:            c.Name,
		StartDate:       c.StartDate,
		EndDate:         c.EndDate,
		OwnerID:         c.OwnerID,
		IsActive:        c.IsActive,
	}
}

// ContractItemEvent carries a snapshot of a contract item
type ContractItemEvent struct {
	shared.BaseDomainEvent
	ContractID   uuid.UUID       `json:"contract_id"`
	Name         string          `json:"name"`
	Value        decimal.Decimal `json:"value"`
	CurrencyID   uuid.UUID       `json:"currency_id"`
	DimensionIDs []uuid.UUID     `json:"dimension_ids"`
}

// NewContractItemEvent creates a contract item event of eventType
func NewContractItemEvent(eventType string, i *ContractItem, actor *uuid.UUID) *ContractItemEvent {
	return &ContractItemEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeContractItem, i.ID, actor),
		ContractID:      i.ContractID,
		Name:            i.Name,
		Value:           i.Value,
		CurrencyID:      i.CurrencyID,
		DimensionIDs:    i.DimensionIDs,
	}
}

// SalesInvoiceEvent carries a snapshot of a sales invoice
type SalesInvoiceEvent struct {
	shared.BaseDomainEvent
	ContractItemID uuid.UUID       `json:"contract_item_id"`
	Number         string          `json:"number"`
	Value          decimal.Decimal `json:"value"`
	Status         InvoiceStatus   `json:"status"`
	PaymentDate    *time.Time      `json:"payment_date,omitempty"`
}

// NewSalesInvoiceEvent creates a sales invoice event of eventType
func NewSalesInvoiceEvent(eventType string, s *SalesInvoice, actor *uuid.UUID) *SalesInvoiceEvent {
	return &SalesInvoiceEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeSalesInvoice, s.ID, actor),
		ContractItemID:  s.ContractItemID,
		Number:          s.Number,
		Value:           s.Value,
		Status:          s.Status,
		PaymentDate:     s.PaymentDate,
	}
}
