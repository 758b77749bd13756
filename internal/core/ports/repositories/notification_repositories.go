package repositories

import (
	"context"
	"time"

	"github.com/workhive/workhive_backend/internal/core/domain"
)

// NotificationReader defines read operations for notification data.
type NotificationReader interface {
	// FindNotificationByID retrieves a specific notification by its ID.
	FindNotificationByID(ctx context.Context, notificationID string) (*domain.Notification, error)

	// ListNotificationsByRecipient retrieves a recipient's notifications, newest first.
	ListNotificationsByRecipient(ctx context.Context, recipientID string, limit, offset int) ([]domain.Notification, error)
}

// NotificationWriter defines write operations for notification data.
type NotificationWriter interface {
	// SaveNotification persists a new notification.
	SaveNotification(ctx context.Context, n domain.Notification) error

	// MarkNotificationRead flips the read flag.
	MarkNotificationRead(ctx context.Context, notificationID string, now time.Time) error
}

// NotificationRepositoryFacade combines all notification-related repository interfaces.
type NotificationRepositoryFacade interface {
	NotificationReader
	NotificationWriter
}
