package models

import "time"

// Conversation is the persisted chat channel attached to an order.
type Conversation struct {
	ConversationID string    `db:"conversation_id"`
	OrderID        string    `db:"order_id"`
	ClientID       string    `db:"client_id"`
	FreelancerID   string    `db:"freelancer_id"`
	CreatedAt      time.Time `db:"created_at"`
}

// Message is a persisted chat message.
type Message struct {
	MessageID      string    `db:"message_id"`
	ConversationID string    `db:"conversation_id"`
	SenderID       string    `db:"sender_id"`
	Body           string    `db:"body"`
	CreatedAt      time.Time `db:"created_at"`
}
