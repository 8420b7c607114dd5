package messaging

import (
	"context"

	"github.com/foodhub/backend/internal/domain/shared"
	"github.com/foodhub/backend/internal/infrastructure/event"
)

// Forwarder is an event handler that relays every domain event to a broker
type Forwarder struct {
	publisher Publisher
}

// NewForwarder creates a forwarder over publisher
func NewForwarder(publisher Publisher) *Forwarder {
	return &Forwarder{publisher: publisher}
}

// Handle encodes the event and publishes it keyed by aggregate ID
func (f *Forwarder) Handle(ctx context.Context, e shared.DomainEvent) error {
	body, err := event.Encode(e)
	if err != nil {
		return err
	}
	return f.publisher.Publish(ctx, e.AggregateID(), e.EventType(), body)
}

// EventTypes subscribes to every event
func (f *Forwarder) EventTypes() []string {
	return nil
}

var _ shared.EventHandler = (*Forwarder)(nil)
