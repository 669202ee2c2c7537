package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/oakhaus/oakhaus-api/internal/models"
)

// NotificationRepository handles data access for notifications.
type NotificationRepository struct {
	db *sqlx.DB
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create inserts a notification.
func (r *NotificationRepository) Create(n *models.Notification) error {
	const q = `
        INSERT INTO notifications (user_id, type, product_id, message)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`
	return r.db.QueryRowx(q, n.UserID, n.Type, n.ProductID, n.Message).Scan(&n.ID, &n.CreatedAt)
}

// GetByUser returns a user's notifications, newest first.
func (r *NotificationRepository) GetByUser(userID int, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	const q = `SELECT * FROM notifications WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`
	var list []models.Notification
	if err := r.db.Select(&list, q, userID, limit); err != nil {
		return nil, err
	}
	return list, nil
}

// MarkRead marks a single notification as read, scoped to its owner.
func (r *NotificationRepository) MarkRead(id, userID int) error {
	const q = `UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2`
	res, err := r.db.Exec(q, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// MarkAllRead marks all of a user's notifications as read.
func (r *NotificationRepository) MarkAllRead(userID int) error {
	const q = `UPDATE notifications SET is_read = true WHERE user_id = $1`
	_, err := r.db.Exec(q, userID)
	return err
}

// HasUnreadOfType reports whether the user already has an unread
// notification of the given type for the given product. Used to dedupe
// low-stock alerts per product until the admin reads them; the message
// text plays no part, so changing quantities do not break the dedupe.
func (r *NotificationRepository) HasUnreadOfType(userID int, typ models.NotificationType, productID int) (bool, error) {
	const q = `SELECT COUNT(1) FROM notifications WHERE user_id = $1 AND type = $2 AND product_id = $3 AND is_read = false`
	var count int
	if err := r.db.Get(&count, q, userID, typ, productID); err != nil {
		return false, err
	}
	return count > 0, nil
}
