package models

import (
	"database/sql"
	"time"
)

// Notification is the persisted shape of a user notification.
type Notification struct {
	NotificationID string         `db:"notification_id"`
	RecipientID    string         `db:"recipient_id"`
	OrderID        sql.NullString `db:"order_id"`
	MessageID      sql.NullString `db:"message_id"`
	Content        string         `db:"content"`
	Read           bool           `db:"read"`
	CreatedAt      time.Time      `db:"created_at"`
}
