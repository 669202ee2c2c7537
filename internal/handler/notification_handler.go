package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oakhaus/oakhaus-api/internal/service"
	"github.com/oakhaus/oakhaus-api/internal/utils"
)

// NotificationHandler handles the authenticated notification endpoints.
type NotificationHandler struct {
	notificationService *service.NotificationService
}

// NewNotificationHandler constructs a NotificationHandler.
func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// GetNotifications returns the user's recent notifications.
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	notifications, err := h.notificationService.GetByUser(c.GetInt("user_id"), limit)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get notifications")
		return
	}
	utils.Success(c, 200, "Notifications retrieved successfully", gin.H{"notifications": notifications})
}

// MarkRead handles PUT /v1/notifications/:id/read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid notification id")
		return
	}

	if err := h.notificationService.MarkRead(id, c.GetInt("user_id")); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to mark notification read")
		return
	}
	utils.Success(c, 200, "Notification marked read", nil)
}

// MarkAllRead handles PUT /v1/notifications/read-all.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.notificationService.MarkAllRead(c.GetInt("user_id")); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to mark notifications read")
		return
	}
	utils.Success(c, 200, "All notifications marked read", nil)
}
