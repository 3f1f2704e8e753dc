package shared

import (
	"time"

	"github.com/google/uuid"
)

// AggregateRoot is the base interface for all aggregate roots
type AggregateRoot interface {
	Entity
	GetVersion() int
	IncrementVersion()
	AddDomainEvent(event DomainEvent)
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}

// BaseAggregateRoot provides common fields for aggregate roots
type BaseAggregateRoot struct {
	BaseEntity
	Version      int
	domainEvents []DomainEvent
}

// GetVersion returns the aggregate version for optimistic locking
func (a *BaseAggregateRoot) GetVersion() int {
	return a.Version
}

// IncrementVersion increments the version number
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// AddDomainEvent adds a domain event to be published
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

// GetDomainEvents returns all pending domain events
func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.domainEvents
}

// ClearDomainEvents clears the pending domain events
func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.domainEvents = nil
}

// NewBaseAggregateRoot creates a new base aggregate root
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity:   NewBaseEntity(),
		Version:      1,
		domainEvents: make([]DomainEvent, 0),
	}
}

// TrackableAggregateRoot extends BaseAggregateRoot with the users who created
// and last changed the record.
type TrackableAggregateRoot struct {
	BaseAggregateRoot
	CreatedBy *uuid.UUID
	UpdatedBy *uuid.UUID
}

// NewTrackableAggregateRoot creates a trackable aggregate root created by actor.
// A nil actor is allowed for records created by system processes (seeds, SSO sync).
func NewTrackableAggregateRoot(actor *uuid.UUID) TrackableAggregateRoot {
	root := TrackableAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
	}
	if actor != nil {
		id := *actor
		root.CreatedBy = &id
		root.UpdatedBy = &id
	}
	return root
}

// Touch records a modification by actor and bumps the version
func (t *TrackableAggregateRoot) Touch(actor *uuid.UUID) {
	t.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
	if actor != nil {
		id := *actor
		t.UpdatedBy = &id
	}
	t.IncrementVersion()
}

// GetCreatedBy returns the creator user ID
func (t *TrackableAggregateRoot) GetCreatedBy() *uuid.UUID {
	return t.CreatedBy
}

// GetUpdatedBy returns the user who last modified the record
func (t *TrackableAggregateRoot) GetUpdatedBy() *uuid.UUID {
	return t.UpdatedBy
}
