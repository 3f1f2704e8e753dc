package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/workify/backend/internal/domain/client"
	"github.com/workify/backend/internal/domain/shared"
)

// ClientModel is the persistence model for the Client aggregate
type ClientModel struct {
	TrackableModel
	Slug     string `gorm:"type:varchar(255);not null;uniqueIndex"`
	Name     string `gorm:"type:varchar(255);not null;index"`
	LogoKey  string `gorm:"type:varchar(500)"`
	IsActive bool   `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client
func (m *ClientModel) ToDomain() *client.Client {
	return &client.Client{
		TrackableAggregateRoot: m.ToDomainTrackable(),
		Activation:             shared.Activation{IsActive: m.IsActive},
		Slug:                   m.Slug,
		Name:                   m.Name,
		LogoKey:                m.LogoKey,
	}
}

// FromDomain populates the persistence model from a domain Client
func (m *ClientModel) FromDomain(c *client.Client) {
	m.FromDomainTrackable(c.TrackableAggregateRoot)
	m.Slug = c.Slug
	m.Name = c.Name
	m.LogoKey = c.LogoKey
	m.IsActive = c.IsActive
}

// ClientModelFromDomain creates a persistence model from a domain Client
func ClientModelFromDomain(c *client.Client) *ClientModel {
	m := &ClientModel{}
	m.FromDomain(c)
	return m
}

// ContractModel is the persistence model for the Contract aggregate
type ContractModel struct {
	TrackableModel
	Slug      string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	ClientID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	Number    string     `gorm:"type:varchar(100);not null"`
	Name      string     `gorm:"type:varchar(255);not null"`
	StartDate time.Time  `gorm:"type:date;not null"`
	EndDate   *time.Time `gorm:"type:date"`
	Comments  string     `gorm:"type:text"`
	OwnerID   *uuid.UUID `gorm:"type:uuid;index"`
	IsActive  bool       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ContractModel) TableName() string {
	return "contracts"
}

// ToDomain converts the persistence model to a domain Contract
func (m *ContractModel) ToDomain() *client.Contract {
	return &client.Contract{
		TrackableAggregateRoot: m.ToDomainTrackable(),
		Activation:             shared.Activation{IsActive: m.IsActive},
		Slug:                   m.Slug,
		ClientID:               m.ClientID,
		Number:                 m.Number,
		Name:                   m.Name,
		StartDate:              m.StartDate,
		EndDate:                m.EndDate,
		Comments:               m.Comments,
		OwnerID:                m.OwnerID,
	}
}

// FromDomain populates the persistence model from a domain Contract
func (m *ContractModel) FromDomain(c *client.Contract) {
	m.FromDomainTrackable(c.TrackableAggregateRoot)
	m.Slug = c.Slug
	m.ClientID = c.ClientID
	m.Number = c.Number
	m.Name = c.Name
	m.StartDate = c.StartDate
	m.EndDate = c.EndDate
	m.Comments = c.Comments
	m.OwnerID = c.OwnerID
	m.IsActive = c.IsActive
}

// ContractModelFromDomain creates a persistence model from a domain Contract
func ContractModelFromDomain(c *client.Contract) *ContractModel {
	m := &ContractModel{}
	m.FromDomain(c)
	return m
}

// ContractItemModel is the persistence model for the ContractItem aggregate.
// Dimensions live in contract_item_dimensions.
type ContractItemModel struct {
	TrackableModel
	ContractID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name       string          `gorm:"type:varchar(255);not null"`
	Value      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CurrencyID uuid.UUID       `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (ContractItemModel) TableName() string {
	return "contract_items"
}

// ToDomain converts the persistence model to a domain ContractItem.
// DimensionIDs must be loaded separately by the repository.
func (m *ContractItemModel) ToDomain() *client.ContractItem {
	return &client.ContractItem{
		TrackableAggregateRoot: m.ToDomainTrackable(),
		ContractID:             m.ContractID,
		Name:                   m.Name,
		Value:                  m.Value,
		CurrencyID:             m.CurrencyID,
		DimensionIDs:           make([]uuid.UUID, 0),
	}
}

// FromDomain populates the persistence model from a domain ContractItem
func (m *ContractItemModel) FromDomain(item *client.ContractItem) {
	m.FromDomainTrackable(item.TrackableAggregateRoot)
	m.ContractID = item.ContractID
	m.Name = item.Name
	m.Value = item.Value
	m.CurrencyID = item.CurrencyID
}

// ContractItemModelFromDomain creates a persistence model from a domain ContractItem
func ContractItemModelFromDomain(item *client.ContractItem) *ContractItemModel {
	m := &ContractItemModel{}
	m.FromDomain(item)
	return m
}

// ContractItemDimensionModel links a contract item to a dimension
type ContractItemDimensionModel struct {
	ContractItemID uuid.UUID `gorm:"type:uuid;primaryKey"`
	DimensionID    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

// TableName returns the table name for GORM
func (ContractItemDimensionModel) TableName() string {
	return "contract_item_dimensions"
}

// SalesInvoiceModel is the persistence model for the SalesInvoice aggregate
type SalesInvoiceModel struct {
	TrackableModel
	ContractItemID uuid.UUID            `gorm:"type:uuid;not null;index;uniqueIndex:idx_sales_invoices_item_number"`
	Number         string               `gorm:"type:varchar(100);not null;uniqueIndex:idx_sales_invoices_item_number"`
	IssueDate      time.Time            `gorm:"type:date;not null;index"`
	DueDate        time.Time            `gorm:"type:date;not null"`
	Value          decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	Status         client.InvoiceStatus `gorm:"type:varchar(20);not null"`
	PaymentDate    *time.Time           `gorm:"type:date"`
	FileKey        string               `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (SalesInvoiceModel) TableName() string {
	return "sales_invoices"
}

// ToDomain converts the persistence model to a domain SalesInvoice
func (m *SalesInvoiceModel) ToDomain() *client.SalesInvoice {
	return &client.SalesInvoice{
		TrackableAggregateRoot: m.ToDomainTrackable(),
		ContractItemID:         m.ContractItemID,
		Number:                 m.Number,
		IssueDate:              m.IssueDate,
		DueDate:                m.DueDate,
		Value:                  m.Value,
		Status:                 m.Status,
		PaymentDate:            m.PaymentDate,
		FileKey:                m.FileKey,
	}
}

// FromDomain populates the persistence model from a domain SalesInvoice
func (m *SalesInvoiceModel) FromDomain(inv *client.SalesInvoice) {
	m.FromDomainTrackable(inv.TrackableAggregateRoot)
	m.ContractItemID = inv.ContractItemID
	m.Number = inv.Number
	m.IssueDate = inv.IssueDate
	m.DueDate = inv.DueDate
	m.Value = inv.Value
	m.Status = inv.Status
	m.PaymentDate = inv.PaymentDate
	m.FileKey = inv.FileKey
}

// SalesInvoiceModelFromDomain creates a persistence model from a domain SalesInvoice
func SalesInvoiceModelFromDomain(inv *client.SalesInvoice) *SalesInvoiceModel {
	m := &SalesInvoiceModel{}
	m.FromDomain(inv)
	return m
}
