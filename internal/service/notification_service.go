package service

import (
	"github.com/rs/zerolog/log"

	"github.com/oakhaus/oakhaus-api/internal/models"
)

// NotificationStore persists per-user notifications.
type NotificationStore interface {
	Create(n *models.Notification) error
	GetByUser(userID, limit int) ([]models.Notification, error)
	MarkRead(id, userID int) error
	MarkAllRead(userID int) error
	HasUnreadOfType(userID int, typ models.NotificationType, productID int) (bool, error)
}

// AdminDirectory lists the accounts admin notifications fan out to.
type AdminDirectory interface {
	GetAdminIDs() ([]int, error)
}

// NotificationService persists per-user notifications. Delivery failures are
// logged and never propagate into the operation that triggered them.
type NotificationService struct {
	notifications NotificationStore
	admins        AdminDirectory
}

func NewNotificationService(notifications NotificationStore, admins AdminDirectory) *NotificationService {
	return &NotificationService{notifications: notifications, admins: admins}
}

// NotifyUser writes a notification for one user.
func (s *NotificationService) NotifyUser(userID int, typ models.NotificationType, message string) {
	s.notify(userID, typ, 0, message)
}

func (s *NotificationService) notify(userID int, typ models.NotificationType, productID int, message string) {
	n := &models.Notification{UserID: userID, Type: typ, ProductID: productID, Message: message}
	if err := s.notifications.Create(n); err != nil {
		log.Error().Err(err).Int("user_id", userID).Str("type", string(typ)).Msg("Failed to create notification")
	}
}

// NotifyAdmins fans a notification out to every admin account.
func (s *NotificationService) NotifyAdmins(typ models.NotificationType, message string) {
	adminIDs, err := s.admins.GetAdminIDs()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list admins for notification")
		return
	}
	for _, id := range adminIDs {
		s.NotifyUser(id, typ, message)
	}
}

// NotifyAdminsOnce fans out like NotifyAdmins but skips admins who already
// hold an unread notification of the same type for the same product. The
// dedupe key is the product, not the message, so a stock level that keeps
// dropping does not pile up a fresh alert per scan.
func (s *NotificationService) NotifyAdminsOnce(typ models.NotificationType, productID int, message string) {
	adminIDs, err := s.admins.GetAdminIDs()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list admins for notification")
		return
	}
	for _, id := range adminIDs {
		exists, err := s.notifications.HasUnreadOfType(id, typ, productID)
		if err != nil {
			log.Error().Err(err).Int("user_id", id).Msg("Failed to check existing notification")
			continue
		}
		if !exists {
			s.notify(id, typ, productID, message)
		}
	}
}

func (s *NotificationService) GetByUser(userID, limit int) ([]models.Notification, error) {
	return s.notifications.GetByUser(userID, limit)
}

func (s *NotificationService) MarkRead(id, userID int) error {
	return s.notifications.MarkRead(id, userID)
}

func (s *NotificationService) MarkAllRead(userID int) error {
	return s.notifications.MarkAllRead(userID)
}
