package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/workify/backend/internal/domain/shared"
)

// Entry is one recorded change of an aggregate
type Entry struct {
	ID            uuid.UUID
	EventID       uuid.UUID
	AggregateType string
	AggregateID   uuid.UUID
	EventType     string
	ActorID       *uuid.UUID
	OccurredAt    time.Time
	Payload       json.RawMessage
}

// NewEntryFromEvent records event; the whole event is kept as payload
func NewEntryFromEvent(event shared.DomainEvent) (*Entry, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	return &Entry{
		ID:            uuid.New(),
		EventID:       event.EventID(),
		AggregateType: event.AggregateType(),
		AggregateID:   event.AggregateID(),
		EventType:     event.EventType(),
		ActorID:       event.ActorID(),
		OccurredAt:    event.OccurredAt().UTC().Truncate(time.Microsecond),
		Payload:       payload,
	}, nil
}

// Repository defines persistence for audit entries
type Repository interface {
	// Save stores an entry; saving the same event twice is a no-op
	Save(ctx context.Context, entry *Entry) error
	// FindByAggregate returns the history of one aggregate, newest first
	FindByAggregate(ctx context.Context, aggregateType string, aggregateID uuid.UUID, filter shared.Filter) ([]Entry, int64, error)
	// FindByAggregates returns the merged history of several aggregates of
	// possibly different types, newest first
	FindByAggregates(ctx context.Context, aggregateIDs []uuid.UUID, filter shared.Filter) ([]Entry, int64, error)
}
