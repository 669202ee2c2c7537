package utils

import "errors"

// Common application errors used across services.
var (
	ErrInvalidToken       = errors.New("INVALID_TOKEN")
	ErrInvalidCredentials = errors.New("INVALID_CREDENTIALS")
	ErrAccountInactive    = errors.New("ACCOUNT_INACTIVE")
	ErrEmailTaken         = errors.New("EMAIL_TAKEN")
	ErrForbidden          = errors.New("FORBIDDEN")
	ErrProductNotFound    = errors.New("PRODUCT_NOT_FOUND")
	ErrOrderNotFound      = errors.New("ORDER_NOT_FOUND")
	ErrAddressNotFound    = errors.New("ADDRESS_NOT_FOUND")
	ErrCartEmpty          = errors.New("CART_EMPTY")
	ErrInsufficientStock  = errors.New("INSUFFICIENT_STOCK")
	ErrInvalidStatus      = errors.New("INVALID_STATUS")
	ErrInvalidQuantity    = errors.New("INVALID_QUANTITY")
	ErrFeaturedMismatch   = errors.New("FEATURED_MISMATCH")
)
