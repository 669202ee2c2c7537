package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oakhaus/oakhaus-api/internal/service"
	"github.com/oakhaus/oakhaus-api/internal/utils"
)

// AdminFeaturedHandler handles back-office management of the featured
// collection.
type AdminFeaturedHandler struct {
	featuredService *service.FeaturedService
}

// NewAdminFeaturedHandler constructs an AdminFeaturedHandler.
func NewAdminFeaturedHandler(featuredService *service.FeaturedService) *AdminFeaturedHandler {
	return &AdminFeaturedHandler{featuredService: featuredService}
}

// GetFeatured lists the full collection including sold-out entries.
func (h *AdminFeaturedHandler) GetFeatured(c *gin.Context) {
	products, err := h.featuredService.GetAllAdmin()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get featured products")
		return
	}
	utils.Success(c, 200, "Featured products retrieved successfully", gin.H{"products": products})
}

// AddFeatured handles POST /v1/admin/featured.
func (h *AdminFeaturedHandler) AddFeatured(c *gin.Context) {
	var req struct {
		ProductID int `json:"productId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	if err := h.featuredService.Add(req.ProductID); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, 201, "Product featured", nil)
}

// RemoveFeatured handles DELETE /v1/admin/featured/:productId.
func (h *AdminFeaturedHandler) RemoveFeatured(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid product id")
		return
	}

	if err := h.featuredService.Remove(productID); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, 200, "Product removed from featured", nil)
}

// ReorderFeatured handles PUT /v1/admin/featured/order.
func (h *AdminFeaturedHandler) ReorderFeatured(c *gin.Context) {
	var req struct {
		ProductIDs []int `json:"productIds" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	if err := h.featuredService.Reorder(req.ProductIDs); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, 200, "Featured order updated", nil)
}
