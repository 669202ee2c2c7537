package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oakhaus/oakhaus-api/internal/service"
	"github.com/oakhaus/oakhaus-api/internal/utils"
)

// AdminInventoryHandler handles back-office stock management.
type AdminInventoryHandler struct {
	inventoryService *service.InventoryService
}

// NewAdminInventoryHandler constructs an AdminInventoryHandler.
func NewAdminInventoryHandler(inventoryService *service.InventoryService) *AdminInventoryHandler {
	return &AdminInventoryHandler{inventoryService: inventoryService}
}

// GetInventory handles GET /v1/admin/inventory/:productId.
func (h *AdminInventoryHandler) GetInventory(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid product id")
		return
	}

	inv, err := h.inventoryService.Get(productID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, 200, "Inventory retrieved successfully", gin.H{"inventory": inv})
}

// Restock handles POST /v1/admin/inventory/:productId/restock.
func (h *AdminInventoryHandler) Restock(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid product id")
		return
	}

	var req struct {
		Amount int `json:"amount" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	if err := h.inventoryService.Restock(productID, req.Amount); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, 200, "Stock added", nil)
}

// Adjust handles PUT /v1/admin/inventory/:productId.
func (h *AdminInventoryHandler) Adjust(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid product id")
		return
	}

	var req struct {
		Quantity     *int `json:"quantity" binding:"required"`
		ReorderLevel int  `json:"reorderLevel"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	if err := h.inventoryService.Adjust(productID, *req.Quantity, req.ReorderLevel); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, 200, "Inventory adjusted", nil)
}

// GetLowStock handles GET /v1/admin/inventory/low-stock.
func (h *AdminInventoryHandler) GetLowStock(c *gin.Context) {
	low, err := h.inventoryService.GetLowStock()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get low stock products")
		return
	}
	utils.Success(c, 200, "Low stock products retrieved successfully", gin.H{"products": low})
}
