package service

import (
	"database/sql"
	"errors"

	"github.com/oakhaus/oakhaus-api/internal/models"
	"github.com/oakhaus/oakhaus-api/internal/repository"
	"github.com/oakhaus/oakhaus-api/internal/utils"
)

// CatalogService covers storefront browsing and back-office product CRUD.
type CatalogService struct {
	products  *repository.ProductRepository
	inventory *repository.InventoryRepository
}

func NewCatalogService(products *repository.ProductRepository, inventory *repository.InventoryRepository) *CatalogService {
	return &CatalogService{products: products, inventory: inventory}
}

// Browse returns one page of active products with stock, optionally
// filtered by category, type, and a free-text search term.
func (s *CatalogService) Browse(category, productType, search string, page, limit int) ([]models.ProductWithStock, int, error) {
	return s.products.GetAllPaged(category, productType, search, page, limit)
}

// GetDetail returns one active product with its stock quantity.
func (s *CatalogService) GetDetail(id int) (*models.ProductWithStock, error) {
	product, err := s.products.GetWithStock(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}
	if product.Status != models.ProductStatusActive {
		return nil, utils.ErrProductNotFound
	}
	return product, nil
}

func (s *CatalogService) GetCategories() ([]string, error) {
	return s.products.GetDistinctCategories()
}

// Create inserts a product together with its inventory row.
func (s *CatalogService) Create(product *models.Product, initialStock, reorderLevel int) error {
	if product.Status == "" {
		product.Status = models.ProductStatusActive
	}
	if initialStock < 0 {
		return utils.ErrInvalidQuantity
	}
	return s.products.Create(product, initialStock, reorderLevel)
}

func (s *CatalogService) Update(product *models.Product) error {
	if _, err := s.products.GetByID(product.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrProductNotFound
		}
		return err
	}
	return s.products.Update(product)
}

func (s *CatalogService) UpdateStatus(id int, status models.ProductStatus) error {
	switch status {
	case models.ProductStatusActive, models.ProductStatusInactive, models.ProductStatusDiscontinued:
	default:
		return utils.ErrInvalidStatus
	}
	return s.products.UpdateStatus(id, status)
}

// SetImageURL points a product at a newly uploaded image.
func (s *CatalogService) SetImageURL(id int, imageURL string) error {
	return s.products.UpdateImageURL(id, imageURL)
}

// GetAnyByID returns a product regardless of status, for the back office.
func (s *CatalogService) GetAnyByID(id int) (*models.Product, error) {
	product, err := s.products.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// Delete removes a product permanently. Historical order items keep their
// denormalized name and price, so past orders stay intact.
func (s *CatalogService) Delete(id int) error {
	if _, err := s.products.GetByID(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrProductNotFound
		}
		return err
	}
	return s.products.Delete(id)
}

// GetAllAdmin lists products for the back office, any status.
func (s *CatalogService) GetAllAdmin(filter *repository.AdminProductFilter) (*repository.AdminProductResult, error) {
	return s.products.GetAllAdmin(filter)
}
