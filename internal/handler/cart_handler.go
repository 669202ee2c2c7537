package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oakhaus/oakhaus-api/internal/service"
	"github.com/oakhaus/oakhaus-api/internal/utils"
)

// CartHandler handles the authenticated cart endpoints.
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler constructs a CartHandler.
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// GetCart returns the user's cart lines and subtotal.
func (h *CartHandler) GetCart(c *gin.Context) {
	lines, subtotal, err := h.cartService.Get(c.GetInt("user_id"))
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get cart")
		return
	}
	utils.Success(c, 200, "Cart retrieved successfully", gin.H{
		"items":    lines,
		"subtotal": subtotal,
	})
}

// AddItem handles POST /v1/cart/items.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req struct {
		ProductID int `json:"productId" binding:"required"`
		Quantity  int `json:"quantity" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	if err := h.cartService.Add(c.GetInt("user_id"), req.ProductID, req.Quantity); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, 200, "Item added to cart", nil)
}

// UpdateItem handles PUT /v1/cart/items/:productId.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid product id")
		return
	}

	var req struct {
		Quantity *int `json:"quantity" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	if err := h.cartService.SetQuantity(c.GetInt("user_id"), productID, *req.Quantity); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, 200, "Cart updated", nil)
}

// RemoveItem handles DELETE /v1/cart/items/:productId.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid product id")
		return
	}

	if err := h.cartService.Remove(c.GetInt("user_id"), productID); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, 200, "Item removed from cart", nil)
}

// ClearCart handles DELETE /v1/cart.
func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.cartService.Clear(c.GetInt("user_id")); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to clear cart")
		return
	}
	utils.Success(c, 200, "Cart cleared", nil)
}
