package telemetry

import (
	"context"

	"github.com/workify/backend/internal/domain/shared"
	"go.opentelemetry.io/otel/metric"
)

// EventMetrics counts published domain events. It subscribes to every event
// type on the bus.
type EventMetrics struct {
	events *Counter
}

// NewEventMetrics creates the workify_domain_events_total counter on meter
func NewEventMetrics(meter metric.Meter) (*EventMetrics, error) {
	c, err := NewCounter(meter, "workify_domain_events_total", "Domain events published, by type", "{event}")
	if err != nil {
		return nil, err
	}
	return &EventMetrics{events: c}, nil
}

// Handle implements shared.EventHandler
func (m *EventMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	m.events.Inc(ctx,
		AttrEventType.String(event.EventType()),
		AttrAggregateType.String(event.AggregateType()),
	)
	return nil
}

// EventTypes returns nil: the handler receives every event
func (m *EventMetrics) EventTypes() []string {
	return nil
}

var _ shared.EventHandler = (*EventMetrics)(nil)
