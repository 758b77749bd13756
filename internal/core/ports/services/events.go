package services

import "time"

// EventKind classifies dispatcher events.
type EventKind string

const (
	EventOrderUpdated EventKind = "order_updated"
	EventNotification EventKind = "notification"
	EventMessageSent  EventKind = "message_sent"
)

// Event is a state-change notification fanned out to live subscribers.
// Payload must be JSON-marshalable; it is written to SSE streams verbatim.
type Event struct {
	Kind        EventKind `json:"kind"`
	OrderID     string    `json:"orderID,omitempty"`
	RecipientID string    `json:"recipientID,omitempty"`
	At          time.Time `json:"at"`
	Payload     any       `json:"payload,omitempty"`
}

// EventBus fans events out to currently-connected subscribers keyed by order
// id and by recipient user id. Delivery is best-effort at-most-once: slow or
// absent subscribers miss events and recover by re-polling the notification
// store. There is no replay log.
type EventBus interface {
	// Publish delivers evt to live order and recipient subscribers without blocking.
	Publish(evt Event)

	// SubscribeOrder registers for events about one order. The returned
	// cancel func must be called to release the subscription.
	SubscribeOrder(orderID string) (<-chan Event, func())

	// SubscribeUser registers for events addressed to one recipient.
	SubscribeUser(userID string) (<-chan Event, func())
}
