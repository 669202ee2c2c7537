package service

import (
	"database/sql"
	"errors"

	"github.com/oakhaus/oakhaus-api/internal/models"
	"github.com/oakhaus/oakhaus-api/internal/repository"
	"github.com/oakhaus/oakhaus-api/internal/utils"
)

// InventoryService manages back-office stock levels. Checkout decrements
// stock inside the order transaction, not through this service.
type InventoryService struct {
	inventory *repository.InventoryRepository
	products  *repository.ProductRepository
}

func NewInventoryService(inventory *repository.InventoryRepository, products *repository.ProductRepository) *InventoryService {
	return &InventoryService{inventory: inventory, products: products}
}

func (s *InventoryService) Get(productID int) (*models.Inventory, error) {
	inv, err := s.inventory.GetByProductID(productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}
	return inv, nil
}

// Restock adds received units to a product's stock.
func (s *InventoryService) Restock(productID, amount int) error {
	if amount <= 0 {
		return utils.ErrInvalidQuantity
	}
	if _, err := s.products.GetByID(productID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrProductNotFound
		}
		return err
	}
	return s.inventory.AddStock(productID, amount)
}

// Adjust overwrites the absolute quantity and reorder level, for stocktake
// corrections.
func (s *InventoryService) Adjust(productID, quantity, reorderLevel int) error {
	if quantity < 0 || reorderLevel < 0 {
		return utils.ErrInvalidQuantity
	}
	return s.inventory.SetStock(productID, quantity, reorderLevel)
}

// GetLowStock lists active products at or below their reorder level.
func (s *InventoryService) GetLowStock() ([]repository.LowStockProduct, error) {
	return s.inventory.GetLowStock()
}
