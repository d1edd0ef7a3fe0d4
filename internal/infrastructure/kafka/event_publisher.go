package kafka

import (
	"context"
	"fmt"

	"github.com/sony/gobreaker"

	"github.com/wms-platform/replenishment-service/internal/domain"
	"github.com/wms-platform/replenishment-service/pkg/cloudevents"
	"github.com/wms-platform/replenishment-service/pkg/kafka"
	"github.com/wms-platform/replenishment-service/pkg/logging"
	"github.com/wms-platform/replenishment-service/pkg/metrics"
	"github.com/wms-platform/replenishment-service/pkg/resilience"
)

// topicByEventType routes each domain event type to its Kafka topic
var topicByEventType = map[string]string{
	cloudevents.StockSnapshotLoaded:       kafka.Topics.StockEvents,
	cloudevents.ReplenishmentResolved:     kafka.Topics.ReplenishmentEvents,
	cloudevents.ReplenishmentListImported: kafka.Topics.ReplenishmentEvents,
	cloudevents.ReplenishmentDivided:      kafka.Topics.ReplenishmentEvents,
	cloudevents.ItemPicked:                kafka.Topics.PickingEvents,
	cloudevents.ItemDiscarded:             kafka.Topics.PickingEvents,
}

var _ domain.EventPublisher = (*EventPublisher)(nil)

// EventPublisher implements domain.EventPublisher using Kafka
type EventPublisher struct {
	producer     kafka.EventPublisher
	eventFactory *cloudevents.EventFactory
	breaker      *resilience.CircuitBreaker
}

// NewEventPublisher creates a new Kafka-based event publisher guarded by a
// circuit breaker. m may be nil.
func NewEventPublisher(
	producer kafka.EventPublisher,
	eventFactory *cloudevents.EventFactory,
	m *metrics.Metrics,
	logger *logging.Logger,
) *EventPublisher {
	config := resilience.DefaultCircuitBreakerConfig("kafka-publisher")
	if m != nil {
		config.OnStateChange = func(name string, _, to gobreaker.State) {
			m.SetCircuitBreakerState(name, int(to))
			if to == gobreaker.StateOpen {
				m.RecordCircuitBreakerTrip(name)
			}
		}
	}

	return &EventPublisher{
		producer:     producer,
		eventFactory: eventFactory,
		breaker:      resilience.NewCircuitBreaker(config, logger.Logger),
	}
}

// Publish publishes a single domain event to Kafka
func (p *EventPublisher) Publish(ctx context.Context, event domain.DomainEvent) error {
	topic, ok := topicByEventType[event.EventType()]
	if !ok {
		return fmt.Errorf("no topic for event type %q", event.EventType())
	}

	ce := p.eventFactory.CreateEvent(ctx, event.EventType(), event.Subject(), event)

	err := p.breaker.Execute(ctx, func(ctx context.Context) error {
		return p.producer.PublishEvent(ctx, topic, ce)
	})
	if err != nil {
		return fmt.Errorf("failed to publish event to kafka: %w", err)
	}
	return nil
}
