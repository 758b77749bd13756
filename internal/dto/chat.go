package dto

import (
	"time"

	"github.com/workhive/workhive_backend/internal/core/domain"
)

// SendMessageRequest defines the payload for posting a chat message.
type SendMessageRequest struct {
	ConversationID string `json:"conversationID" binding:"required"`
	Body           string `json:"body" binding:"required,max=4000"`
}

// AskAssistantRequest carries a question for the dispute assistant.
type AskAssistantRequest struct {
	Question string `json:"question" binding:"required,max=2000"`
}

// MessageResponse is the externally visible message shape.
type MessageResponse struct {
	MessageID      string    `json:"messageID"`
	ConversationID string    `json:"conversationID"`
	SenderID       string    `json:"senderID"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToMessageResponse converts a domain.Message to its response DTO.
func ToMessageResponse(m *domain.Message) MessageResponse {
	return MessageResponse{
		MessageID:      m.MessageID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Body:           m.Body,
		CreatedAt:      m.CreatedAt,
	}
}

// ConversationResponse is a conversation with its messages resolved.
type ConversationResponse struct {
	ConversationID string            `json:"conversationID"`
	OrderID        string            `json:"orderID"`
	ClientID       string            `json:"clientID"`
	FreelancerID   string            `json:"freelancerID"`
	Messages       []MessageResponse `json:"messages"`
}

// ToConversationResponse converts a conversation and its messages.
func ToConversationResponse(c *domain.Conversation, msgs []domain.Message) ConversationResponse {
	resp := ConversationResponse{
		ConversationID: c.ConversationID,
		OrderID:        c.OrderID,
		ClientID:       c.ClientID,
		FreelancerID:   c.FreelancerID,
		Messages:       make([]MessageResponse, len(msgs)),
	}
	for i := range msgs {
		resp.Messages[i] = ToMessageResponse(&msgs[i])
	}
	return resp
}
