package cloudevents

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/wms-platform/replenishment-service/pkg/logging"
)

// EventFactory creates CloudEvents for a single source
type EventFactory struct {
	source string
	now    func() time.Time
}

// NewEventFactory creates a new EventFactory for a specific source
func NewEventFactory(source string) *EventFactory {
	return &EventFactory{source: source, now: time.Now}
}

// Source returns the CloudEvents source the factory stamps on events
func (f *EventFactory) Source() string {
	return f.source
}

// CreateEvent builds an event and carries over the correlation ID found in ctx.
func (f *EventFactory) CreateEvent(ctx context.Context, eventType, subject string, data interface{}) *WMSCloudEvent {
	event := &WMSCloudEvent{
		SpecVersion:     "1.0",
		Type:            eventType,
		Source:          f.source,
		Subject:         subject,
		ID:              uuid.New().String(),
		Time:            f.now().UTC(),
		DataContentType: "application/json",
		Data:            data,
	}

	if ctx != nil {
		if id, ok := ctx.Value(logging.CorrelationIDKey).(string); ok {
			event.CorrelationID = id
		}
	}
	return event
}
