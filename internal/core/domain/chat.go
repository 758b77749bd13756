package domain

import "time"

// Conversation is the chat channel attached to an order.
// Exactly the order's client and freelancer participate; the dispute
// assistant posts under a dedicated system user.
type Conversation struct {
	ConversationID string    `json:"conversationID"`
	OrderID        string    `json:"orderID"`
	ClientID       string    `json:"clientID"`
	FreelancerID   string    `json:"freelancerID"`
	CreatedAt      time.Time `json:"createdAt"`
}

// IsParticipant reports whether userID may read or post in the conversation.
func (c *Conversation) IsParticipant(userID string) bool {
	return userID == c.ClientID || userID == c.FreelancerID
}

// Message is a single chat message within a conversation.
type Message struct {
	MessageID      string    `json:"messageID"`
	ConversationID string    `json:"conversationID"`
	SenderID       string    `json:"senderID"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"createdAt"`
}
