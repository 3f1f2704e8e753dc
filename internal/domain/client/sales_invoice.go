package client

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/workify/backend/internal/domain/shared"
)

// InvoiceStatus is the payment state of a sales invoice
type InvoiceStatus string

const (
	InvoiceStatusIssued InvoiceStatus = "issued"
	InvoiceStatusPaid   InvoiceStatus = "paid"
)

// SalesInvoice is an invoice issued against a contract item
type SalesInvoice struct {
	shared.TrackableAggregateRoot
	ContractItemID uuid.UUID
	Number         string
	IssueDate      time.Time
	DueDate        time.Time
	Value          decimal.Decimal
	Status         InvoiceStatus
	PaymentDate    *time.Time
	FileKey        string
}

// InvoiceDetails holds the editable invoice fields
type InvoiceDetails struct {
	Number    string
	IssueDate time.Time
	DueDate   time.Time
	Value     decimal.Decimal
}

func (d InvoiceDetails) validate() error {
	err := shared.ValidationError(validation.Errors{
		"number":     validation.Validate(d.Number, validation.Required, validation.RuneLength(1, 50)),
		"issue_date": validation.Validate(d.IssueDate, validation.Required),
		"due_date":   validation.Validate(d.DueDate, validation.Required),
	}.Filter())
	if err != nil {
		return err
	}
	if shared.TruncateDate(d.DueDate).Before(shared.TruncateDate(d.IssueDate)) {
		return shared.NewDomainError("INVALID_DATE_RANGE", "Due date cannot be before issue date")
	}
	return validateMoney("value", d.Value, true)
}

// NewSalesInvoice issues an invoice for an item of an active contract
func NewSalesInvoice(contract *Contract, item *ContractItem, details InvoiceDetails, actor *uuid.UUID) (*SalesInvoice, error) {
	if err := contract.EnsureActive(); err != nil {
		return nil, err
	}
	if item.ContractID != contract.ID {
		return nil, shared.NewDomainError("INVALID_INPUT", "Contract item does not belong to the contract")
	}
	details.Number = strings.TrimSpace(details.Number)
	if err := details.validate(); err != nil {
		return nil, err
	}

	inv := &SalesInvoice{
		TrackableAggregateRoot: shared.NewTrackableAggregateRoot(actor),
		ContractItemID:         item.ID,
		Number:                 details.Number,
		IssueDate:              shared.TruncateDate(details.IssueDate),
		DueDate:                shared.TruncateDate(details.DueDate),
		Value:                  details.Value.Round(MoneyScale),
		Status:                 InvoiceStatusIssued,
	}
	inv.AddDomainEvent(NewSalesInvoiceEvent(EventTypeSalesInvoiceCreated, inv, actor))
	return inv, nil
}

// CanSettle reports whether the invoice still awaits payment
func (s *SalesInvoice) CanSettle() bool {
	return s.Status != InvoiceStatusPaid
}

// IsOverdue reports whether an unpaid invoice is past its due date on day
func (s *SalesInvoice) IsOverdue(day time.Time) bool {
	return s.CanSettle() && shared.TruncateDate(day).After(s.DueDate)
}

// Update replaces the editable fields of an unpaid invoice
func (s *SalesInvoice) Update(details InvoiceDetails, actor *uuid.UUID) error {
	if !s.CanSettle() {
		return shared.NewDomainErrorf("INVOICE_ALREADY_PAID", "Invoice %s is already paid.", s.Number)
	}
	details.Number = strings.TrimSpace(details.Number)
	if err := details.validate(); err != nil {
		return err
	}
	s.Number = details.Number
	s.IssueDate = shared.TruncateDate(details.IssueDate)
	s.DueDate = shared.TruncateDate(details.DueDate)
	s.Value = details.Value.Round(MoneyScale)
	s.Touch(actor)
	s.AddDomainEvent(NewSalesInvoiceEvent(EventTypeSalesInvoiceUpdated, s, actor))
	return nil
}

// Settle marks the invoice paid on paymentDate
func (s *SalesInvoice) Settle(paymentDate time.Time, actor *uuid.UUID) error {
	if !s.CanSettle() {
		return shared.NewDomainErrorf("INVOICE_ALREADY_PAID", "Invoice %s is already paid.", s.Number)
	}
	if paymentDate.IsZero() {
		return shared.NewDomainError("INVALID_INPUT", "payment_date: cannot be blank")
	}
	day := shared.TruncateDate(paymentDate)
	if day.Before(s.IssueDate) {
		return shared.NewDomainError("INVALID_DATE_RANGE", "Payment date cannot be before issue date")
	}
	s.Status = InvoiceStatusPaid
	s.PaymentDate = &day
	s.Touch(actor)
	s.AddDomainEvent(NewSalesInvoiceEvent(EventTypeSalesInvoiceSettled, s, actor))
	return nil
}

// AttachFile stores the object key of the invoice scan
func (s *SalesInvoice) AttachFile(key string, actor *uuid.UUID) {
	s.FileKey = key
	s.Touch(actor)
	s.AddDomainEvent(NewSalesInvoiceEvent(EventTypeSalesInvoiceUpdated, s, actor))
}

// MarkDeleted records the deletion event before the invoice is removed
func (s *SalesInvoice) MarkDeleted(actor *uuid.UUID) {
	s.AddDomainEvent(NewSalesInvoiceEvent(EventTypeSalesInvoiceDeleted, s, actor))
}
