package services

import (
	"context"

	"github.com/workhive/workhive_backend/internal/core/domain"
)

// NotificationReaderSvc defines read operations for notifications.
type NotificationReaderSvc interface {
	// ListNotifications retrieves the actor's notifications, newest first.
	ListNotifications(ctx context.Context, actorID string, limit, offset int) ([]domain.Notification, error)
}

// NotificationWriterSvc defines recipient-restricted mutations.
type NotificationWriterSvc interface {
	// MarkNotificationRead flips the read flag. Fails with ErrUnauthorized if
	// the actor is not the notification's recipient.
	MarkNotificationRead(ctx context.Context, notificationID, actorID string) (*domain.Notification, error)
}

// NotifierSvc is the internal fan-out entry point used by the state machine
// and chat: it persists a notification addressed to the counterparty and
// emits best-effort events on the order and recipient channels.
type NotifierSvc interface {
	// NotifyOrderEvent records content for recipientID about order and
	// publishes the order update to subscribers. Failures are logged, never
	// propagated: notification delivery must not fail a committed transition.
	NotifyOrderEvent(ctx context.Context, order *domain.Order, recipientID, content string)

	// NotifyMessage records a new-message notification for recipientID and
	// publishes the message on the order channel.
	NotifyMessage(ctx context.Context, order *domain.Order, msg *domain.Message, recipientID, content string)
}

// NotificationSvcFacade combines all notification-related service interfaces.
type NotificationSvcFacade interface {
	NotificationReaderSvc
	NotificationWriterSvc
	NotifierSvc
}
