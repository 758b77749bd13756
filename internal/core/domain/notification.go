package domain

import "time"

// Notification is a persisted message addressed to a single recipient.
// OrderID and MessageID are optional back references.
type Notification struct {
	NotificationID string    `json:"notificationID"`
	RecipientID    string    `json:"recipientID"`
	OrderID        string    `json:"orderID,omitempty"`
	MessageID      string    `json:"messageID,omitempty"`
	Content        string    `json:"content"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"createdAt"`
}
