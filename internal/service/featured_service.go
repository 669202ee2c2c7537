package service

import (
	"github.com/oakhaus/oakhaus-api/internal/models"
	"github.com/oakhaus/oakhaus-api/internal/repository"
	"github.com/oakhaus/oakhaus-api/internal/utils"
)

// FeaturedSource supplies the curated collection joined with stock, ordered
// by the admin's display_order.
type FeaturedSource interface {
	GetAllWithStock() ([]models.FeaturedProduct, error)
}

// FeaturedCollection edits the raw curated list.
type FeaturedCollection interface {
	GetEntries() ([]models.FeaturedEntry, error)
	Add(productID int) error
	Remove(productID int) error
	Reorder(productIDs []int) error
}

// FeaturedService serves the storefront's curated product strip. Sold-out
// entries are hidden without disturbing the relative order of the rest, and
// pagination applies to the filtered list so page boundaries never shift
// with stock levels of hidden items.
type FeaturedService struct {
	featured   FeaturedSource
	collection FeaturedCollection
	products   *repository.ProductRepository
}

func NewFeaturedService(featured FeaturedSource, collection FeaturedCollection, products *repository.ProductRepository) *FeaturedService {
	return &FeaturedService{featured: featured, collection: collection, products: products}
}

// InStock filters out zero-stock entries, preserving display order.
func InStock(entries []models.FeaturedProduct) []models.FeaturedProduct {
	stocked := make([]models.FeaturedProduct, 0, len(entries))
	for _, e := range entries {
		if e.StockQuantity > 0 {
			stocked = append(stocked, e)
		}
	}
	return stocked
}

// Paginate slices a filtered list. Pages past the end are empty, not errors.
func Paginate(entries []models.FeaturedProduct, page, limit int) []models.FeaturedProduct {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	start := (page - 1) * limit
	if start >= len(entries) {
		return []models.FeaturedProduct{}
	}
	end := start + limit
	if end > len(entries) {
		end = len(entries)
	}
	return entries[start:end]
}

// GetStocked returns one page of in-stock featured products plus the total
// count of in-stock entries for pagination metadata.
func (s *FeaturedService) GetStocked(page, limit int) ([]models.FeaturedProduct, int, error) {
	all, err := s.featured.GetAllWithStock()
	if err != nil {
		return nil, 0, err
	}
	stocked := InStock(all)
	return Paginate(stocked, page, limit), len(stocked), nil
}

// GetAllAdmin returns the raw collection including sold-out entries, for the
// back office.
func (s *FeaturedService) GetAllAdmin() ([]models.FeaturedProduct, error) {
	return s.featured.GetAllWithStock()
}

// Add appends a product to the end of the collection.
func (s *FeaturedService) Add(productID int) error {
	if _, err := s.products.GetByID(productID); err != nil {
		return utils.ErrProductNotFound
	}
	return s.collection.Add(productID)
}

func (s *FeaturedService) Remove(productID int) error {
	return s.collection.Remove(productID)
}

// Reorder replaces the display order with the given product id sequence.
// The sequence must be a permutation of the current collection: reordering
// cannot add, drop, or duplicate entries.
func (s *FeaturedService) Reorder(productIDs []int) error {
	entries, err := s.collection.GetEntries()
	if err != nil {
		return err
	}
	if len(productIDs) != len(entries) {
		return utils.ErrFeaturedMismatch
	}
	current := make(map[int]bool, len(entries))
	for _, e := range entries {
		current[e.ProductID] = true
	}
	seen := make(map[int]bool, len(productIDs))
	for _, id := range productIDs {
		if !current[id] || seen[id] {
			return utils.ErrFeaturedMismatch
		}
		seen[id] = true
	}
	return s.collection.Reorder(productIDs)
}
