package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/oakhaus/oakhaus-api/internal/service"
	"github.com/oakhaus/oakhaus-api/internal/utils"
)

// OrderHandler handles the authenticated customer order endpoints.
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Checkout handles POST /v1/orders. Turns the cart into an order.
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req struct {
		AddressID int `json:"addressId" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	order, err := h.orderService.Checkout(c.Request.Context(), c.GetInt("user_id"), req.AddressID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, 201, "Order placed successfully", gin.H{"order": order})
}

// GetOrders returns the user's order history.
func (h *OrderHandler) GetOrders(c *gin.Context) {
	orders, err := h.orderService.GetByUser(c.GetInt("user_id"))
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get orders")
		return
	}
	utils.Success(c, 200, "Orders retrieved successfully", gin.H{"orders": orders})
}

// GetOrder returns one of the user's orders with its items.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetByOrderID(c.Param("orderId"), c.GetInt("user_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, 200, "Order retrieved successfully", gin.H{"order": order})
}

// MarkReceived handles POST /v1/orders/:orderId/received. Confirms delivery
// of an order in the delivered state.
func (h *OrderHandler) MarkReceived(c *gin.Context) {
	order, err := h.orderService.MarkReceived(c.Param("orderId"), c.GetInt("user_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, 200, "Order marked as received", gin.H{"order": order})
}

// CancelOrder handles POST /v1/orders/:orderId/cancel. Pending orders only.
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	if err := h.orderService.Cancel(c.Param("orderId"), c.GetInt("user_id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, 200, "Order cancelled", nil)
}
