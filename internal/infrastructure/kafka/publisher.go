package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/finbooks/backoffice/internal/domain/port"
	"github.com/finbooks/backoffice/pkg/events"
	pkgkafka "github.com/finbooks/backoffice/pkg/kafka"
)

// Compile-time interface check
var _ port.EventPublisher = (*EventPublisher)(nil)

// EventPublisher implements the EventPublisher port using Kafka. Events
// are keyed by aggregate ID so one invoice's events stay ordered within
// a partition.
type EventPublisher struct {
	producer *pkgkafka.Producer
	logger   *slog.Logger
}

func NewEventPublisher(producer *pkgkafka.Producer, logger *slog.Logger) *EventPublisher {
	return &EventPublisher{producer: producer, logger: logger}
}

func (p *EventPublisher) Publish(ctx context.Context, topic string, evts ...events.DomainEvent) error {
	messages := make([]pkgkafka.Message, 0, len(evts))
	for _, evt := range evts {
		p.logger.DebugContext(ctx, "publishing event to Kafka",
			slog.String("topic", topic),
			slog.String("event_type", evt.EventType()),
			slog.String("aggregate_id", evt.AggregateID().String()),
		)

		messages = append(messages, pkgkafka.Message{
			Key:   []byte(evt.AggregateID().String()),
			Value: evt.Payload(),
			Headers: map[string]string{
				"event_type": evt.EventType(),
			},
		})
	}

	if len(messages) == 0 {
		return nil
	}
	if err := p.producer.Publish(ctx, topic, messages...); err != nil {
		return fmt.Errorf("failed to publish events to topic %s: %w", topic, err)
	}
	return nil
}
