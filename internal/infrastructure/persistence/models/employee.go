package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/workify/backend/internal/domain/employee"
	"github.com/workify/backend/internal/domain/shared"
)

// EmployeeModel is the persistence model for the Employee aggregate
type EmployeeModel struct {
	AggregateModel
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Slug           string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	FirstName      string    `gorm:"type:varchar(150);not null"`
	LastName       string    `gorm:"type:varchar(150);not null;index"`
	Email          string    `gorm:"type:varchar(254);not null;uniqueIndex"`
	TaxID          string    `gorm:"type:varchar(50)"`
	AvatarKey      string    `gorm:"type:varchar(500)"`
	AvatarChecksum string    `gorm:"type:varchar(64)"`
	IsActive       bool      `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (EmployeeModel) TableName() string {
	return "employees"
}

// ToDomain converts the persistence model to a domain Employee
func (m *EmployeeModel) ToDomain() *employee.Employee {
	return &employee.Employee{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Activation:        shared.Activation{IsActive: m.IsActive},
		UserID:            m.UserID,
		Slug:              m.Slug,
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		Email:             m.Email,
		TaxID:             m.TaxID,
		AvatarKey:         m.AvatarKey,
		AvatarChecksum:    m.AvatarChecksum,
	}
}

// FromDomain populates the persistence model from a domain Employee
func (m *EmployeeModel) FromDomain(e *employee.Employee) {
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	m.UserID = e.UserID
	m.Slug = e.Slug
	m.FirstName = e.FirstName
	m.LastName = e.LastName
	m.Email = e.Email
	m.TaxID = e.TaxID
	m.AvatarKey = e.AvatarKey
	m.AvatarChecksum = e.AvatarChecksum
	m.IsActive = e.IsActive
}

// EmployeeModelFromDomain creates a persistence model from a domain Employee
func EmployeeModelFromDomain(e *employee.Employee) *EmployeeModel {
	m := &EmployeeModel{}
	m.FromDomain(e)
	return m
}

// RateModel is the persistence model for employee rates
type RateModel struct {
	TrackableModel
	EmployeeID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Rate       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CurrencyID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ValidFrom  time.Time       `gorm:"type:date;not null"`
	ValidTo    *time.Time      `gorm:"type:date"`
}

// TableName returns the table name for GORM
func (RateModel) TableName() string {
	return "employee_rates"
}

// ToDomain converts the persistence model to a domain Rate
func (m *RateModel) ToDomain() *employee.Rate {
	return &employee.Rate{
		TrackableAggregateRoot: m.ToDomainTrackable(),
		EmployeeID:             m.EmployeeID,
		Rate:                   m.Rate,
		CurrencyID:             m.CurrencyID,
		ValidFrom:              m.ValidFrom,
		ValidTo:                m.ValidTo,
	}
}

// FromDomain populates the persistence model from a domain Rate
func (m *RateModel) FromDomain(r *employee.Rate) {
	m.FromDomainTrackable(r.TrackableAggregateRoot)
	m.EmployeeID = r.EmployeeID
	m.Rate = r.Rate
	m.CurrencyID = r.CurrencyID
	m.ValidFrom = r.ValidFrom
	m.ValidTo = r.ValidTo
}

// RateModelFromDomain creates a persistence model from a domain Rate
func RateModelFromDomain(r *employee.Rate) *RateModel {
	m := &RateModel{}
	m.FromDomain(r)
	return m
}

// DocumentModel is the persistence model for employee documents
type DocumentModel struct {
	TrackableModel
	EmployeeID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name                string     `gorm:"type:varchar(255);not null"`
	SignDate            time.Time  `gorm:"type:date;not null"`
	DocumentTypeID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	FileKey             string     `gorm:"type:varchar(500)"`
	ReferenceDocumentID *uuid.UUID `gorm:"type:uuid;index"`
	Comment             string     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (DocumentModel) TableName() string {
	return "employee_documents"
}

// ToDomain converts the persistence model to a domain Document
func (m *DocumentModel) ToDomain() *employee.Document {
	return &employee.Document{
		TrackableAggregateRoot: m.ToDomainTrackable(),
		EmployeeID:             m.EmployeeID,
		Name:                   m.Name,
		SignDate:               m.SignDate,
		DocumentTypeID:         m.DocumentTypeID,
		FileKey:                m.FileKey,
		ReferenceDocumentID:    m.ReferenceDocumentID,
		Comment:                m.Comment,
	}
}

// FromDomain populates the persistence model from a domain Document
func (m *DocumentModel) FromDomain(d *employee.Document) {
	m.FromDomainTrackable(d.TrackableAggregateRoot)
	m.EmployeeID = d.EmployeeID
	m.Name = d.Name
	m.SignDate = d.SignDate
	m.DocumentTypeID = d.DocumentTypeID
	m.FileKey = d.FileKey
	m.ReferenceDocumentID = d.ReferenceDocumentID
	m.Comment = d.Comment
}

// DocumentModelFromDomain creates a persistence model from a domain Document
func DocumentModelFromDomain(d *employee.Document) *DocumentModel {
	m := &DocumentModel{}
	m.FromDomain(d)
	return m
}
