package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/workify/backend/internal/domain/audit"
)

// EntryResponse is one audit log entry
type EntryResponse struct {
	ID            uuid.UUID       `json:"id"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   uuid.UUID       `json:"aggregate_id"`
	EventType     string          `json:"event_type"`
	ActorID       *uuid.UUID      `json:"actor_id,omitempty"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Changes       json.RawMessage `json:"changes"`
}

// HistoryQuery selects the history of one aggregate
type HistoryQuery struct {
	AggregateType string
	AggregateID   uuid.UUID
}

func toEntryResponses(entries []audit.Entry) []EntryResponse {
	out := make([]EntryResponse, len(entries))
	for i, e := range entries {
		out[i] = EntryResponse{
			ID:            e.ID,
			AggregateType: e.AggregateType,
			AggregateID:   e.AggregateID,
			EventType:     e.EventType,
			ActorID:       e.ActorID,
			OccurredAt:    e.OccurredAt,
			Changes:       e.Payload,
		}
	}
	return out
}
