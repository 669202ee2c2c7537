package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oakhaus/oakhaus-api/internal/models"
	"github.com/oakhaus/oakhaus-api/internal/service"
	"github.com/oakhaus/oakhaus-api/internal/utils"
)

// AddressHandler handles the shipping address book endpoints.
type AddressHandler struct {
	addressService *service.AddressService
}

// NewAddressHandler constructs an AddressHandler.
func NewAddressHandler(addressService *service.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

type addressRequest struct {
	Label      string `json:"label" binding:"required"`
	Recipient  string `json:"recipient" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
	Street     string `json:"street" binding:"required"`
	City       string `json:"city" binding:"required"`
	Province   string `json:"province" binding:"required"`
	PostalCode string `json:"postalCode" binding:"required"`
	IsDefault  bool   `json:"isDefault"`
}

// GetAddresses returns the user's address book, default first.
func (h *AddressHandler) GetAddresses(c *gin.Context) {
	addresses, err := h.addressService.GetByUser(c.GetInt("user_id"))
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get addresses")
		return
	}
	utils.Success(c, 200, "Addresses retrieved successfully", gin.H{"addresses": addresses})
}

// CreateAddress handles POST /v1/addresses.
func (h *AddressHandler) CreateAddress(c *gin.Context) {
	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	addr := &models.Address{
		UserID:     c.GetInt("user_id"),
		Label:      req.Label,
		Recipient:  req.Recipient,
		Phone:      req.Phone,
		Street:     req.Street,
		City:       req.City,
		Province:   req.Province,
		PostalCode: req.PostalCode,
		IsDefault:  req.IsDefault,
	}
	if err := h.addressService.Create(addr); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create address")
		return
	}
	utils.Success(c, 201, "Address created", gin.H{"address": addr})
}

// UpdateAddress handles PUT /v1/addresses/:id.
func (h *AddressHandler) UpdateAddress(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid address id")
		return
	}

	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	addr := &models.Address{
		ID:         id,
		UserID:     c.GetInt("user_id"),
		Label:      req.Label,
		Recipient:  req.Recipient,
		Phone:      req.Phone,
		Street:     req.Street,
		City:       req.City,
		Province:   req.Province,
		PostalCode: req.PostalCode,
		IsDefault:  req.IsDefault,
	}
	if err := h.addressService.Update(addr); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, 200, "Address updated", gin.H{"address": addr})
}

// DeleteAddress handles DELETE /v1/addresses/:id.
func (h *AddressHandler) DeleteAddress(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid address id")
		return
	}

	if err := h.addressService.Delete(id, c.GetInt("user_id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, 200, "Address deleted", nil)
}
