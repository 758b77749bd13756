package services

import (
	"context"

	"github.com/workhive/workhive_backend/internal/core/domain"
	"github.com/workhive/workhive_backend/internal/dto"
)

// ChatSvcFacade persists per-order conversations and messages.
type ChatSvcFacade interface {
	// GetConversationByOrder retrieves the order's conversation and its
	// messages. Participants only.
	GetConversationByOrder(ctx context.Context, orderID, actorID string) (*domain.Conversation, []domain.Message, error)

	// SendMessage persists a message from the actor and notifies the
	// counterparty. Participants only.
	SendMessage(ctx context.Context, req dto.SendMessageRequest, actorID string) (*domain.Message, error)

	// AskDisputeAssistant scores the conversation for dispute risk, updates
	// the order's risk fields and posts the assistant's reply into the
	// conversation. Participants only.
	AskDisputeAssistant(ctx context.Context, orderID, question, actorID string) (*domain.Message, error)
}

// RiskAnalyzer scores dispute tension from conversation text. Implementations
// may call an external model; the default is a deterministic keyword engine.
type RiskAnalyzer interface {
	// Analyze returns advisory text and a risk score in [0.0, 1.0].
	Analyze(ctx context.Context, transcript, question string) (reply string, risk float64, err error)
}
