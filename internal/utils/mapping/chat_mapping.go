package mapping

import (
	"github.com/workhive/workhive_backend/internal/core/domain"
	"github.com/workhive/workhive_backend/internal/models"
)

// ToModelConversation converts a domain Conversation to a model Conversation
func ToModelConversation(d domain.Conversation) models.Conversation {
	return models.Conversation{
		ConversationID: d.ConversationID,
		OrderID:        d.OrderID,
		ClientID:       d.ClientID,
		FreelancerID:   d.FreelancerID,
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainConversation converts a model Conversation to a domain Conversation
func ToDomainConversation(m models.Conversation) domain.Conversation {
	return domain.Conversation{
		ConversationID: m.ConversationID,
		OrderID:        m.OrderID,
		ClientID:       m.ClientID,
		FreelancerID:   m.FreelancerID,
		CreatedAt:      m.CreatedAt,
	}
}

// ToModelMessage converts a domain Message to a model Message
func ToModelMessage(d domain.Message) models.Message {
	return models.Message{
		MessageID:      d.MessageID,
		ConversationID: d.ConversationID,
		SenderID:       d.SenderID,
		Body:           d.Body,
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainMessage converts a model Message to a domain Message
func ToDomainMessage(m models.Message) domain.Message {
	return domain.Message{
		MessageID:      m.MessageID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Body:           m.Body,
		CreatedAt:      m.CreatedAt,
	}
}

// ToDomainMessageSlice converts a slice of model Messages to domain Messages
func ToDomainMessageSlice(ms []models.Message) []domain.Message {
	ds := make([]domain.Message, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainMessage(m)
	}
	return ds
}
