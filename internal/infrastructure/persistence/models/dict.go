package models

import (
	"github.com/google/uuid"
	"github.com/workify/backend/internal/domain/dict"
)

// DictEntryModel holds the columns shared by code/name dictionaries
type DictEntryModel struct {
	BaseModel
	Code      string `gorm:"type:varchar(20);not null;uniqueIndex"`
	Name      string `gorm:"type:varchar(100);not null"`
	IsDefault bool   `gorm:"not null"`
}

func (m *DictEntryModel) toDomain() dict.Entry {
	return dict.Entry{
		BaseEntity: m.BaseModel.ToDomain(),
		Code:       m.Code,
		Name:       m.Name,
		IsDefault:  m.IsDefault,
	}
}

func (m *DictEntryModel) fromDomain(e dict.Entry) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.Code = e.Code
	m.Name = e.Name
	m.IsDefault = e.IsDefault
}

// CurrencyModel is the persistence model for currencies
type CurrencyModel struct {
	DictEntryModel
}

// TableName returns the table name for GORM
func (CurrencyModel) TableName() string {
	return "currencies"
}

// ToDomain converts the persistence model to a domain Currency
func (m *CurrencyModel) ToDomain() *dict.Currency {
	return &dict.Currency{Entry: m.toDomain()}
}

// CurrencyModelFromDomain creates a persistence model from a domain Currency
func CurrencyModelFromDomain(c *dict.Currency) *CurrencyModel {
	m := &CurrencyModel{}
	m.fromDomain(c.Entry)
	return m
}

// DocumentTypeModel is the persistence model for employee document types
type DocumentTypeModel struct {
	DictEntryModel
}

// TableName returns the table name for GORM
func (DocumentTypeModel) TableName() string {
	return "document_types"
}

// ToDomain converts the persistence model to a domain DocumentType
func (m *DocumentTypeModel) ToDomain() *dict.DocumentType {
	return &dict.DocumentType{Entry: m.toDomain()}
}

// DocumentTypeModelFromDomain creates a persistence model from a domain DocumentType
func DocumentTypeModelFromDomain(d *dict.DocumentType) *DocumentTypeModel {
	m := &DocumentTypeModel{}
	m.fromDomain(d.Entry)
	return m
}

// DimensionModel is the persistence model for dimensions
type DimensionModel struct {
	BaseModel
	Name     string     `gorm:"type:varchar(255);not null"`
	ParentID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (DimensionModel) TableName() string {
	return "dimensions"
}

// ToDomain converts the persistence model to a domain Dimension
func (m *DimensionModel) ToDomain() *dict.Dimension {
	return &dict.Dimension{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		ParentID:   m.ParentID,
	}
}

// DimensionModelFromDomain creates a persistence model from a domain Dimension
func DimensionModelFromDomain(d *dict.Dimension) *DimensionModel {
	m := &DimensionModel{}
	m.FromDomainBaseEntity(d.BaseEntity)
	m.Name = d.Name
	m.ParentID = d.ParentID
	return m
}
