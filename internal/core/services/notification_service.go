package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/workhive/workhive_backend/internal/apperrors"
	"github.com/workhive/workhive_backend/internal/core/domain"
	portsrepo "github.com/workhive/workhive_backend/internal/core/ports/repositories"
	portssvc "github.com/workhive/workhive_backend/internal/core/ports/services"
)

type notificationService struct {
	BaseService
	notificationRepo portsrepo.NotificationRepositoryFacade
	events           portssvc.EventBus
}

// NewNotificationService creates the notification service. events receives a
// best-effort copy of every persisted notification.
func NewNotificationService(notificationRepo portsrepo.NotificationRepositoryFacade, events portssvc.EventBus) portssvc.NotificationSvcFacade {
	return &notificationService{notificationRepo: notificationRepo, events: events}
}

var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

func (s *notificationService) ListNotifications(ctx context.Context, actorID string, limit, offset int) ([]domain.Notification, error) {
	return s.notificationRepo.ListNotificationsByRecipient(ctx, actorID, limit, offset)
}

func (s *notificationService) MarkNotificationRead(ctx context.Context, notificationID, actorID string) (*domain.Notification, error) {
	n, err := s.notificationRepo.FindNotificationByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if n.RecipientID != actorID {
		return nil, fmt.Errorf("%w: notification %s belongs to another user", apperrors.ErrUnauthorized, notificationID)
	}
	if err := s.notificationRepo.MarkNotificationRead(ctx, notificationID, time.Now().UTC()); err != nil {
		return nil, err
	}
	n.Read = true
	return n, nil
}

// NotifyOrderEvent persists a notification for recipientID and publishes the
// order update. Errors are logged and swallowed: a committed transition must
// not fail because its notification could not be delivered.
func (s *notificationService) NotifyOrderEvent(ctx context.Context, order *domain.Order, recipientID, content string) {
	n := domain.Notification{
		NotificationID: uuid.NewString(),
		RecipientID:    recipientID,
		OrderID:        order.OrderID,
		Content:        content,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.notificationRepo.SaveNotification(ctx, n); err != nil {
		s.LogError(ctx, err, "failed to persist notification",
			slog.String("order_id", order.OrderID),
			slog.String("recipient_id", recipientID))
	}
	s.events.Publish(portssvc.Event{
		Kind:        portssvc.EventOrderUpdated,
		OrderID:     order.OrderID,
		RecipientID: recipientID,
		At:          n.CreatedAt,
		Payload:     order,
	})
	s.events.Publish(portssvc.Event{
		Kind:        portssvc.EventNotification,
		OrderID:     order.OrderID,
		RecipientID: recipientID,
		At:          n.CreatedAt,
		Payload:     n,
	})
}

// NotifyMessage persists a new-message notification and publishes the message
// on the order channel. Same best-effort contract as NotifyOrderEvent.
func (s *notificationService) NotifyMessage(ctx context.Context, order *domain.Order, msg *domain.Message, recipientID, content string) {
	n := domain.Notification{
		NotificationID: uuid.NewString(),
		RecipientID:    recipientID,
		OrderID:        order.OrderID,
		MessageID:      msg.MessageID,
		Content:        content,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.notificationRepo.SaveNotification(ctx, n); err != nil {
		s.LogError(ctx, err, "failed to persist message notification",
			slog.String("order_id", order.OrderID),
			slog.String("message_id", msg.MessageID))
	}
	s.events.Publish(portssvc.Event{
		Kind:        portssvc.EventMessageSent,
		OrderID:     order.OrderID,
		RecipientID: recipientID,
		At:          n.CreatedAt,
		Payload:     msg,
	})
	s.events.Publish(portssvc.Event{
		Kind:        portssvc.EventNotification,
		OrderID:     order.OrderID,
		RecipientID: recipientID,
		At:          n.CreatedAt,
		Payload:     n,
	})
}
