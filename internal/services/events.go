package services

import (
	"encoding/json"
	"log"
	"time"
)

// Routing keys of the domain events published after successful mutations.
const (
	EventProductCreated   = "product.created"
	EventProductUpdated   = "product.updated"
	EventProductDeleted   = "product.deleted"
	EventCartCreated      = "cart.created"
	EventCartProductAdded = "cart.product_added"
)

// EventPublisher is satisfied by *rabbitmq.Client.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// Events publishes domain events to one exchange. A nil *Events, or one
// without a publisher, drops every event.
type Events struct {
	publisher EventPublisher
	exchange  string
}

func NewEvents(publisher EventPublisher, exchange string) *Events {
	return &Events{publisher: publisher, exchange: exchange}
}

type event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data"`
}

// emit never fails the caller: the mutation is already persisted.
func (e *Events) emit(routingKey string, data any) {
	if e == nil || e.publisher == nil {
		return
	}

	body, err := json.Marshal(event{Type: routingKey, OccurredAt: time.Now().UTC(), Data: data})
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := e.publisher.Publish(e.exchange, routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
