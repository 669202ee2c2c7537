package models

import "time"

// NotificationType classifies a notification row.
type NotificationType string

const (
	NotificationOrderCreated NotificationType = "order.created"
	NotificationOrderStatus  NotificationType = "order.status_changed"
	NotificationLowStock     NotificationType = "inventory.low_stock"
)

// Notification is a persisted message for a user (or an admin, when user_id
// points at an admin account).
type Notification struct {
	ID        int              `db:"id" json:"id"`
	UserID    int              `db:"user_id" json:"-"`
	Type      NotificationType `db:"type" json:"type"`
	ProductID int              `db:"product_id" json:"productId,omitempty"`
	Message   string           `db:"message" json:"message"`
	IsRead    bool             `db:"is_read" json:"isRead"`
	CreatedAt time.Time        `db:"created_at" json:"createdAt"`
}
