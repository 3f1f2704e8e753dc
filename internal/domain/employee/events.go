package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/workify/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeEmployee = "Employee"
	AggregateTypeRate     = "EmployeeRate"
	AggregateTypeDocument = "EmployeeDocument"
)

// Event type constants
const (
	EventTypeEmployeeCreated     = "EmployeeCreated"
	EventTypeEmployeeUpdated     = "EmployeeUpdated"
	EventTypeEmployeeActivated   = "EmployeeActivated"
	EventTypeEmployeeDeactivated = "EmployeeDeactivated"

	EventTypeRateCreated = "EmployeeRateCreated"
	EventTypeRateUpdated = "EmployeeRateUpdated"
	EventTypeRateDeleted = "EmployeeRateDeleted"

	EventTypeDocumentCreated = "EmployeeDocumentCreated"
	EventTypeDocumentUpdated = "EmployeeDocumentUpdated"
	EventTypeDocumentDeleted = "EmployeeDocumentDeleted"
)

// EmployeeEvent carries a snapshot of an employee
type EmployeeEvent struct {
	shared.BaseDomainEvent
	UserID    uuid.UUID `json:"user_id"`
	Slug      string    `json:"slug"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
}

// NewEmployeeEvent creates an employee event of eventType
func NewEmployeeEvent(eventType string, e *Employee, actor *uuid.UUID) *EmployeeEvent {
	return &EmployeeEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeEmployee, e.ID, actor),
		UserID:          e.UserID,
		Slug:            e.Slug,
		FirstName:       e.FirstName,
		LastName:        e.LastName,
		Email:           e.Email,
		IsActive:        e.IsActive,
	}
}

// RateEvent carries a snapshot of an employee rate
type RateEvent struct {
	shared.BaseDomainEvent
	EmployeeID uuid.UUID       `json:"employee_id"`
	Rate       decimal.Decimal `json:"rate"`
	CurrencyID uuid.UUID       `json:"currency_id"`
	ValidFrom  time.Time       `json:"valid_from"`
	ValidTo    *time.Time      `json:"valid_to,omitempty"`
}

// NewRateEvent creates a rate event of eventType
func NewRateEvent(eventType string, r *Rate, actor *uuid.UUID) *RateEvent {
	return &RateEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeRate, r.ID, actor),
		EmployeeID:      r.EmployeeID,
		Rate:            r.Rate,
		CurrencyID:      r.CurrencyID,
		ValidFrom:       r.ValidFrom,
		ValidTo:         r.ValidTo,
	}
}

// DocumentEvent carries a snapshot of an employee document
type DocumentEvent struct {
	shared.BaseDomainEvent
	EmployeeID     uuid.UUID `json:"employee_id"`
	Name           string    `json:"name"`
	SignDate       time.Time `json:"sign_date"`
	DocumentTypeID uuid.UUID `json:"document_type_id"`
}

// NewDocumentEvent creates a document event of eventType
func NewDocumentEvent(eventType string, d *Document, actor *uuid.UUID) *DocumentEvent {
	return &DocumentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeDocument, d.ID, actor),
		EmployeeID:      d.EmployeeID,
		Name:            d.Name,
		SignDate:        d.SignDate,
		DocumentTypeID:  d.DocumentTypeID,
	}
}
