package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/oakhaus/oakhaus-api/internal/utils"
)

// respondServiceError maps service sentinel errors onto the response
// envelope. Unrecognized errors become a generic 500 so internals never leak.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, utils.ErrProductNotFound):
		utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
	case errors.Is(err, utils.ErrOrderNotFound):
		utils.Error(c, 404, "ORDER_NOT_FOUND", "Order not found")
	case errors.Is(err, utils.ErrAddressNotFound):
		utils.Error(c, 404, "ADDRESS_NOT_FOUND", "Address not found")
	case errors.Is(err, utils.ErrCartEmpty):
		utils.Error(c, 400, "CART_EMPTY", "Cart is empty")
	case errors.Is(err, utils.ErrInsufficientStock):
		utils.Error(c, 409, "INSUFFICIENT_STOCK", "Not enough stock to fulfill the order")
	case errors.Is(err, utils.ErrInvalidStatus):
		utils.Error(c, 422, "INVALID_STATUS", "Invalid status transition")
	case errors.Is(err, utils.ErrInvalidQuantity):
		utils.Error(c, 400, "INVALID_QUANTITY", "Quantity is invalid")
	case errors.Is(err, utils.ErrFeaturedMismatch):
		utils.Error(c, 422, "FEATURED_MISMATCH", "Reorder list must match the current featured collection")
	case errors.Is(err, utils.ErrEmailTaken):
		utils.Error(c, 409, "EMAIL_TAKEN", "Email is already registered")
	case errors.Is(err, utils.ErrInvalidCredentials):
		utils.Error(c, 401, "INVALID_CREDENTIALS", "Invalid email or password")
	case errors.Is(err, utils.ErrAccountInactive):
		utils.Error(c, 403, "ACCOUNT_INACTIVE", "Account is inactive")
	case errors.Is(err, utils.ErrForbidden):
		utils.Error(c, 403, "FORBIDDEN", "Access denied")
	case errors.Is(err, utils.ErrInvalidToken):
		utils.Error(c, 401, "INVALID_TOKEN", "Invalid or expired token")
	default:
		utils.Error(c, 500, "INTERNAL_ERROR", "Something went wrong")
	}
}
