package repositories

import (
	"context"

	"github.com/workhive/workhive_backend/internal/core/domain"
)

// ConversationRepository persists per-order chat channels.
type ConversationRepository interface {
	// SaveConversation persists a new conversation.
	SaveConversation(ctx context.Context, conv domain.Conversation) error

	// FindConversationByID retrieves a conversation by its ID.
	FindConversationByID(ctx context.Context, conversationID string) (*domain.Conversation, error)

	// FindConversationByOrder retrieves the conversation attached to an order.
	FindConversationByOrder(ctx context.Context, orderID string) (*domain.Conversation, error)
}

// MessageRepository persists chat messages.
type MessageRepository interface {
	// SaveMessage persists a new message.
	SaveMessage(ctx context.Context, msg domain.Message) error

	// ListMessages retrieves a conversation's messages, oldest first.
	ListMessages(ctx context.Context, conversationID string) ([]domain.Message, error)

	// ListRecentMessages retrieves the latest limit messages, oldest first.
	ListRecentMessages(ctx context.Context, conversationID string, limit int) ([]domain.Message, error)
}
