package dto

import (
	"time"

	"github.com/workhive/workhive_backend/internal/core/domain"
)

// NotificationResponse is the externally visible notification shape.
type NotificationResponse struct {
	NotificationID string    `json:"notificationID"`
	RecipientID    string    `json:"recipientID"`
	OrderID        string    `json:"orderID,omitempty"`
	MessageID      string    `json:"messageID,omitempty"`
	Content        string    `json:"content"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToNotificationResponse converts a domain.Notification to its response DTO.
func ToNotificationResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		NotificationID: n.NotificationID,
		RecipientID:    n.RecipientID,
		OrderID:        n.OrderID,
		MessageID:      n.MessageID,
		Content:        n.Content,
		Read:           n.Read,
		CreatedAt:      n.CreatedAt,
	}
}

// ListNotificationsParams defines query parameters for listing notifications.
type ListNotificationsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListNotificationsResponse wraps a list of notifications.
type ListNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}

// ToListNotificationsResponse converts a slice of domain notifications.
func ToListNotificationsResponse(ns []domain.Notification) ListNotificationsResponse {
	resp := ListNotificationsResponse{Notifications: make([]NotificationResponse, len(ns))}
	for i := range ns {
		resp.Notifications[i] = ToNotificationResponse(&ns[i])
	}
	return resp
}
