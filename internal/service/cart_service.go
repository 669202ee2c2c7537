package service

import (
	"database/sql"
	"errors"

	"github.com/oakhaus/oakhaus-api/internal/models"
	"github.com/oakhaus/oakhaus-api/internal/repository"
	"github.com/oakhaus/oakhaus-api/internal/utils"
)

// CartService manages a user's cart. Carts tolerate products going inactive
// or out of stock after being added; those lines surface with their current
// status so the storefront can flag them, and checkout rejects them.
type CartService struct {
	cart     *repository.CartRepository
	products *repository.ProductRepository
}

func NewCartService(cart *repository.CartRepository, products *repository.ProductRepository) *CartService {
	return &CartService{cart: cart, products: products}
}

// Get returns the cart lines joined with live product data, plus the cart
// subtotal over purchasable lines.
func (s *CartService) Get(userID int) ([]models.CartLine, int, error) {
	lines, err := s.cart.GetLines(userID)
	if err != nil {
		return nil, 0, err
	}
	var subtotal int
	for _, line := range lines {
		if line.ProductStatus == models.ProductStatusActive && line.StockQuantity > 0 {
			subtotal += line.UnitPrice * line.Quantity
		}
	}
	return lines, subtotal, nil
}

// Add puts quantity units of a product in the cart, merging with an existing
// line. Only active products can be added.
func (s *CartService) Add(userID, productID, quantity int) error {
	if quantity <= 0 {
		return utils.ErrInvalidQuantity
	}
	product, err := s.products.GetByID(productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrProductNotFound
		}
		return err
	}
	if product.Status != models.ProductStatusActive {
		return utils.ErrProductNotFound
	}
	return s.cart.Upsert(userID, productID, quantity)
}

// SetQuantity overwrites a line's quantity. Zero removes the line.
func (s *CartService) SetQuantity(userID, productID, quantity int) error {
	if quantity < 0 {
		return utils.ErrInvalidQuantity
	}
	if quantity == 0 {
		return s.cart.Remove(userID, productID)
	}
	return s.cart.SetQuantity(userID, productID, quantity)
}

func (s *CartService) Remove(userID, productID int) error {
	return s.cart.Remove(userID, productID)
}

func (s *CartService) Clear(userID int) error {
	return s.cart.Clear(userID)
}
