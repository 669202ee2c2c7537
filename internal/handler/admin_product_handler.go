package handler

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oakhaus/oakhaus-api/internal/models"
	"github.com/oakhaus/oakhaus-api/internal/repository"
	"github.com/oakhaus/oakhaus-api/internal/service"
	"github.com/oakhaus/oakhaus-api/internal/utils"
)

// AdminProductHandler handles back-office product management.
type AdminProductHandler struct {
	catalogService *service.CatalogService
	storageService *service.StorageService
}

// NewAdminProductHandler constructs an AdminProductHandler.
func NewAdminProductHandler(catalogService *service.CatalogService, storageService *service.StorageService) *AdminProductHandler {
	return &AdminProductHandler{catalogService: catalogService, storageService: storageService}
}

// GetProducts lists products of any status with filters and pagination.
func (h *AdminProductHandler) GetProducts(c *gin.Context) {
	page, limit := pageParams(c, 20)

	filter := &repository.AdminProductFilter{
		Category: c.Query("category"),
		Type:     c.Query("type"),
		Search:   c.Query("search"),
		Page:     page,
		Limit:    limit,
	}
	if v := c.Query("status"); v != "" {
		status := models.ProductStatus(v)
		filter.Status = &status
	}

	result, err := h.catalogService.GetAllAdmin(filter)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get products")
		return
	}

	utils.SuccessWithPagination(c, 200, "Products retrieved successfully", gin.H{
		"products": result.Products,
	}, result.Page, result.Limit, result.TotalItems)
}

type productRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	Category     string `json:"category" binding:"required"`
	Type         string `json:"type"`
	Price        int    `json:"price" binding:"required,gt=0"`
	InitialStock int    `json:"initialStock"`
	ReorderLevel int    `json:"reorderLevel"`
}

// CreateProduct handles POST /v1/admin/products.
func (h *AdminProductHandler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Type:        req.Type,
		Price:       req.Price,
	}
	if err := h.catalogService.Create(product, req.InitialStock, req.ReorderLevel); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, 201, "Product created", gin.H{"product": product})
}

// UpdateProduct handles PUT /v1/admin/products/:id.
func (h *AdminProductHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid product id")
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	product := &models.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Type:        req.Type,
		Price:       req.Price,
	}
	if err := h.catalogService.Update(product); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, 200, "Product updated", gin.H{"product": product})
}

// UpdateStatus handles PATCH /v1/admin/products/:id/status.
func (h *AdminProductHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid product id")
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	if err := h.catalogService.UpdateStatus(id, models.ProductStatus(req.Status)); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, 200, "Product status updated", nil)
}

// DeleteProduct handles DELETE /v1/admin/products/:id.
func (h *AdminProductHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid product id")
		return
	}

	if err := h.catalogService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, 200, "Product deleted", nil)
}

// UploadImage handles POST /v1/admin/products/:id/image (multipart field
// "image"). Stores the file and points the product at its new URL.
func (h *AdminProductHandler) UploadImage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid product id")
		return
	}

	product, err := h.catalogService.GetAnyByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	file, _, err := c.Request.FormFile("image")
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Missing image file")
		return
	}
	defer file.Close()

	imageData, err := io.ReadAll(file)
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Failed to read image file")
		return
	}

	imageURL, err := h.storageService.UploadProductImage(c.Request.Context(), product.ID, imageData)
	if err != nil {
		utils.Error(c, 502, "UPLOAD_FAILED", "Failed to store product image")
		return
	}

	if err := h.catalogService.SetImageURL(product.ID, imageURL); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update product image")
		return
	}
	utils.Success(c, 200, "Product image uploaded", gin.H{"imageUrl": imageURL})
}
