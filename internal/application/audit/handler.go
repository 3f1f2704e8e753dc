package audit

import (
	"context"
	"fmt"

	"github.com/workify/backend/internal/domain/audit"
	"github.com/workify/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// RecordHandler writes every published domain event to the audit log
type RecordHandler struct {
	entries audit.Repository
	logger  *zap.Logger
}

// NewRecordHandler creates the audit handler
func NewRecordHandler(entries audit.Repository, logger *zap.Logger) *RecordHandler {
	return &RecordHandler{entries: entries, logger: logger}
}

// EventTypes subscribes to all events
func (h *RecordHandler) EventTypes() []string {
	return nil
}

// Handle stores event as an audit entry
func (h *RecordHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	entry, err := audit.NewEntryFromEvent(event)
	if err != nil {
		return fmt.Errorf("audit: encode %s: %w", event.EventType(), err)
	}
	if err := h.entries.Save(ctx, entry); err != nil {
		h.logger.Error("Failed to record audit entry",
			zap.String("event_type", event.EventType()),
			zap.String("aggregate_id", event.AggregateID().String()),
			zap.Error(err))
		return err
	}
	return nil
}

var _ shared.EventHandler = (*RecordHandler)(nil)
