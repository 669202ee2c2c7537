package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oakhaus/oakhaus-api/internal/models"
	"github.com/oakhaus/oakhaus-api/internal/repository"
	"github.com/oakhaus/oakhaus-api/internal/service"
	"github.com/oakhaus/oakhaus-api/internal/utils"
)

// AdminOrderHandler handles back-office order management.
type AdminOrderHandler struct {
	orderService *service.OrderService
}

// NewAdminOrderHandler constructs an AdminOrderHandler.
func NewAdminOrderHandler(orderService *service.OrderService) *AdminOrderHandler {
	return &AdminOrderHandler{orderService: orderService}
}

// GetOrders lists orders with filters and pagination.
func (h *AdminOrderHandler) GetOrders(c *gin.Context) {
	page, limit := pageParams(c, 20)

	filter := &repository.AdminOrderFilter{
		Page:  page,
		Limit: limit,
	}
	if v := c.Query("userId"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.UserID = &n
		}
	}
	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}
	if v := c.Query("startDate"); v != "" {
		filter.StartDate = &v
	}
	if v := c.Query("endDate"); v != "" {
		filter.EndDate = &v
	}

	result, err := h.orderService.GetAllAdmin(filter)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get orders")
		return
	}

	utils.SuccessWithPagination(c, 200, "Orders retrieved successfully", gin.H{
		"orders": result.Orders,
	}, result.Page, result.Limit, result.TotalItems)
}

// GetOrder returns any order by public id, with its items.
func (h *AdminOrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetByOrderID(c.Param("orderId"), 0)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, 200, "Order retrieved successfully", gin.H{"order": order})
}

// UpdateStatus handles PATCH /v1/admin/orders/:orderId/status.
func (h *AdminOrderHandler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	order, err := h.orderService.UpdateStatus(c.Param("orderId"), models.OrderStatus(req.Status))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, 200, "Order status updated", gin.H{"order": order})
}

// GetStats handles GET /v1/admin/orders/stats.
func (h *AdminOrderHandler) GetStats(c *gin.Context) {
	var startDate, endDate *string
	if v := c.Query("startDate"); v != "" {
		startDate = &v
	}
	if v := c.Query("endDate"); v != "" {
		endDate = &v
	}

	stats, err := h.orderService.GetAdminStats(startDate, endDate)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get order stats")
		return
	}

	days := 30
	if v := c.Query("trendDays"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 365 {
			days = parsed
		}
	}
	trend, err := h.orderService.GetDailyTrend(days)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get order stats")
		return
	}

	utils.Success(c, 200, "Order stats retrieved successfully", gin.H{
		"stats":      stats,
		"dailyTrend": trend,
	})
}
