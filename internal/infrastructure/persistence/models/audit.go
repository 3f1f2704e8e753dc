package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/workify/backend/internal/domain/audit"
)

// AuditEntryModel is the persistence model for audit log entries
type AuditEntryModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key"`
	EventID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	AggregateType string     `gorm:"type:varchar(100);not null;index:idx_audit_aggregate"`
	AggregateID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_audit_aggregate"`
	EventType     string     `gorm:"type:varchar(100);not null"`
	ActorID       *uuid.UUID `gorm:"type:uuid;index"`
	OccurredAt    time.Time  `gorm:"not null;index"`
	Payload       string     `gorm:"type:jsonb;not null"`
}

// TableName returns the table name for GORM
func (AuditEntryModel) TableName() string {
	return "audit_entries"
}

// ToDomain converts the persistence model to a domain audit Entry
func (m *AuditEntryModel) ToDomain() *audit.Entry {
	return &audit.Entry{
		ID:            m.ID,
		EventID:       m.EventID,
		AggregateType: m.AggregateType,
		AggregateID:   m.AggregateID,
		EventType:     m.EventType,
		ActorID:       m.ActorID,
		OccurredAt:    m.OccurredAt,
		Payload:       json.RawMessage(m.Payload),
	}
}

// AuditEntryModelFromDomain creates a persistence model from a domain audit Entry
func AuditEntryModelFromDomain(e *audit.Entry) *AuditEntryModel {
	payload := string(e.Payload)
	if payload == "" {
		payload = "{}"
	}
	return &AuditEntryModel{
		ID:            e.ID,
		EventID:       e.EventID,
		AggregateType: e.AggregateType,
		AggregateID:   e.AggregateID,
		EventType:     e.EventType,
		ActorID:       e.ActorID,
		OccurredAt:    e.OccurredAt,
		Payload:       payload,
	}
}
