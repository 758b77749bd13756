package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/workhive/workhive_backend/internal/apperrors"
	"github.com/workhive/workhive_backend/internal/core/domain"
	portsrepo "github.com/workhive/workhive_backend/internal/core/ports/repositories"
	portssvc "github.com/workhive/workhive_backend/internal/core/ports/services"
	"github.com/workhive/workhive_backend/internal/dto"
)

// AssistantSenderID is the synthetic sender for dispute assistant replies.
const AssistantSenderID = "dispute-assistant"

// riskFlagThreshold is the dispute risk score above which an order is
// flagged for manual review.
const riskFlagThreshold = 0.7

// transcriptWindow is how many recent messages feed the risk analysis.
const transcriptWindow = 50

type chatService struct {
	BaseService
	convRepo  portsrepo.ConversationRepository
	msgRepo   portsrepo.MessageRepository
	orderRepo portsrepo.OrderRepositoryFacade
	notifier  portssvc.NotifierSvc
	risk      portssvc.RiskAnalyzer
}

// NewChatService creates the per-order chat service.
func NewChatService(
	convRepo portsrepo.ConversationRepository,
	msgRepo portsrepo.MessageRepository,
	orderRepo portsrepo.OrderRepositoryFacade,
	notifier portssvc.NotifierSvc,
	risk portssvc.RiskAnalyzer,
) portssvc.ChatSvcFacade {
	return &chatService{
		convRepo:  convRepo,
		msgRepo:   msgRepo,
		orderRepo: orderRepo,
		notifier:  notifier,
		risk:      risk,
	}
}

var _ portssvc.ChatSvcFacade = (*chatService)(nil)

func (s *chatService) GetConversationByOrder(ctx context.Context, orderID, actorID string) (*domain.Conversation, []domain.Message, error) {
	conv, err := s.convRepo.FindConversationByOrder(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if !conv.IsParticipant(actorID) {
		return nil, nil, fmt.Errorf("%w: not a participant of conversation %s", apperrors.ErrUnauthorized, conv.ConversationID)
	}
	msgs, err := s.msgRepo.ListMessages(ctx, conv.ConversationID)
	if err != nil {
		return nil, nil, err
	}
	return conv, msgs, nil
}

func (s *chatService) SendMessage(ctx context.Context, req dto.SendMessageRequest, actorID string) (*domain.Message, error) {
	conv, err := s.convRepo.FindConversationByID(ctx, req.ConversationID)
	if err != nil {
		return nil, err
	}
	if !conv.IsParticipant(actorID) {
		return nil, fmt.Errorf("%w: not a participant of conversation %s", apperrors.ErrUnauthorized, conv.ConversationID)
	}

	msg := domain.Message{
		MessageID:      uuid.NewString(),
		ConversationID: conv.ConversationID,
		SenderID:       actorID,
		Body:           req.Body,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.msgRepo.SaveMessage(ctx, msg); err != nil {
		s.LogError(ctx, err, "failed to save message", slog.String("conversation_id", conv.ConversationID))
		return nil, err
	}

	order, err := s.orderRepo.FindOrderByID(ctx, conv.OrderID)
	if err != nil {
		s.LogError(ctx, err, "failed to load order for message notification", slog.String("order_id", conv.OrderID))
		return &msg, nil
	}
	recipient := conv.FreelancerID
	if actorID == conv.FreelancerID {
		recipient = conv.ClientID
	}
	s.notifier.NotifyMessage(ctx, order, &msg, recipient, "New message on your order")
	return &msg, nil
}

// AskDisputeAssistant runs the risk analyzer over the recent transcript,
// stores the resulting score on the order and posts the advisory reply into
// the conversation under the assistant's sender id.
func (s *chatService) AskDisputeAssistant(ctx context.Context, orderID, question, actorID string) (*domain.Message, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.IsParticipant(actorID) {
		return nil, fmt.Errorf("%w: not a participant of order %s", apperrors.ErrUnauthorized, orderID)
	}
	conv, err := s.convRepo.FindConversationByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	recent, err := s.msgRepo.ListRecentMessages(ctx, conv.ConversationID, transcriptWindow)
	if err != nil {
		return nil, err
	}
	var b strings.Builder
	for _, m := range recent {
		b.WriteString(m.Body)
		b.WriteByte('\n')
	}

	reply, risk, err := s.risk.Analyze(ctx, b.String(), question)
	if err != nil {
		s.LogError(ctx, err, "risk analysis failed", slog.String("order_id", orderID))
		return nil, err
	}

	flagged := risk > riskFlagThreshold
	if err := s.orderRepo.UpdateDisputeRisk(ctx, orderID, risk, flagged); err != nil {
		s.LogError(ctx, err, "failed to store dispute risk", slog.String("order_id", orderID))
	}
	if flagged {
		s.LogInfo(ctx, "order flagged for review",
			slog.String("order_id", orderID),
			slog.Float64("dispute_risk", risk))
	}

	msg := domain.Message{
		MessageID:      uuid.NewString(),
		ConversationID: conv.ConversationID,
		SenderID:       AssistantSenderID,
		Body:           reply,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.msgRepo.SaveMessage(ctx, msg); err != nil {
		s.LogError(ctx, err, "failed to save assistant reply", slog.String("conversation_id", conv.ConversationID))
		return nil, err
	}

	order.DisputeRisk = risk
	order.FlaggedForReview = flagged
	recipient := conv.FreelancerID
	if actorID == conv.FreelancerID {
		recipient = conv.ClientID
	}
	s.notifier.NotifyMessage(ctx, order, &msg, recipient, "The dispute assistant replied on your order")
	return &msg, nil
}
