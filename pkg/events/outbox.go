package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OutboxEntry is a domain event staged in the transactional outbox table.
type OutboxEntry struct {
	ID            uuid.UUID
	AggregateID   uuid.UUID
	AggregateType string
	EventType     string
	Payload       []byte
	CreatedAt     time.Time
	PublishedAt   *time.Time
}

// NewOutboxEntry builds an OutboxEntry from a DomainEvent.
func NewOutboxEntry(event DomainEvent) OutboxEntry {
	return OutboxEntry{
		ID:            event.EventID(),
		AggregateID:   event.AggregateID(),
		AggregateType: event.AggregateType(),
		EventType:     event.EventType(),
		Payload:       event.Payload(),
		CreatedAt:     event.OccurredAt(),
	}
}

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, events ...DomainEvent) error
}
