package handler

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oakhaus/oakhaus-api/internal/service"
	"github.com/oakhaus/oakhaus-api/internal/utils"
)

const defaultSearchLimit = 24

// SearchHandler handles the AI-assisted search endpoints.
type SearchHandler struct {
	imageSearch *service.ImageSearchService
	textSearch  *service.TextSearchService
}

// NewSearchHandler constructs a SearchHandler.
func NewSearchHandler(imageSearch *service.ImageSearchService, textSearch *service.TextSearchService) *SearchHandler {
	return &SearchHandler{imageSearch: imageSearch, textSearch: textSearch}
}

// SearchByImage handles POST /v1/search/image (multipart field "image").
func (h *SearchHandler) SearchByImage(c *gin.Context) {
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

	result, err := h.imageSearch.Search(c.Request.Context(), imageData, searchLimit(c))
	if err != nil {
		utils.Error(c, 422, "IMAGE_SEARCH_FAILED", err.Error())
		return
	}

	utils.Success(c, 200, "Image search completed", result)
}

// SearchByText handles POST /v1/search/text.
func (h *SearchHandler) SearchByText(c *gin.Context) {
	var req struct {
		Query string `json:"query" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	result, err := h.textSearch.Search(c.Request.Context(), req.Query, searchLimit(c))
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Search failed")
		return
	}

	utils.Success(c, 200, "Search completed", result)
}

func searchLimit(c *gin.Context) int {
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			return n
		}
	}
	return defaultSearchLimit
}
