package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oakhaus/oakhaus-api/internal/service"
	"github.com/oakhaus/oakhaus-api/internal/utils"
)

// CatalogHandler handles storefront browsing endpoints.
type CatalogHandler struct {
	catalogService  *service.CatalogService
	featuredService *service.FeaturedService
	bestSellers     *service.BestSellerService
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(
	catalogService *service.CatalogService,
	featuredService *service.FeaturedService,
	bestSellers *service.BestSellerService,
) *CatalogHandler {
	return &CatalogHandler{
		catalogService:  catalogService,
		featuredService: featuredService,
		bestSellers:     bestSellers,
	}
}

// GetProducts returns the product list with optional filters and pagination.
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	category := c.Query("category") // Sofas, Tables, Beds, etc
	productType := c.Query("type")  // indoor, outdoor
	search := c.Query("search")

	page, limit := pageParams(c, 20)

	products, total, err := h.catalogService.Browse(category, productType, search, page, limit)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get products")
		return
	}

	utils.SuccessWithPagination(c, 200, "Products retrieved successfully", gin.H{
		"products": products,
	}, page, limit, total)
}

// GetProduct returns one product by id.
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid product id")
		return
	}

	product, err := h.catalogService.GetDetail(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, 200, "Product retrieved successfully", gin.H{"product": product})
}

// GetCategories returns the distinct category names of active products.
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	categories, err := h.catalogService.GetCategories()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get categories")
		return
	}
	utils.Success(c, 200, "Categories retrieved successfully", gin.H{"categories": categories})
}

// GetBestSeller returns the best-selling product of the requested period.
// period=prev_month (default) or trailing. A window with no qualifying
// winner returns bestSeller: null with 200.
func (h *CatalogHandler) GetBestSeller(c *gin.Context) {
	period := c.DefaultQuery("period", "prev_month")
	if period != "trailing" {
		period = "prev_month"
	}

	result, err := h.bestSellers.Get(c.Request.Context(), period)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to compute best seller")
		return
	}

	utils.Success(c, 200, "Best seller retrieved successfully", gin.H{
		"bestSeller": result,
		"period":     period,
	})
}

// GetFeatured returns the in-stock featured collection, paginated.
func (h *CatalogHandler) GetFeatured(c *gin.Context) {
	page, limit := pageParams(c, 20)

	products, total, err := h.featuredService.GetStocked(page, limit)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get featured products")
		return
	}

	utils.SuccessWithPagination(c, 200, "Featured products retrieved successfully", gin.H{
		"products": products,
	}, page, limit, total)
}

// pageParams reads page/limit query params with a default page size.
func pageParams(c *gin.Context, defaultLimit int) (int, int) {
	page := 1
	limit := defaultLimit
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	return page, limit
}
