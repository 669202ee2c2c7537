package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakhaus/oakhaus-api/internal/models"
	"github.com/oakhaus/oakhaus-api/internal/utils"
)

func featuredEntry(productID, displayOrder, stock int) models.FeaturedProduct {
	return models.FeaturedProduct{
		DisplayOrder:  displayOrder,
		StockQuantity: stock,
		Product:       models.Product{ID: productID, Status: models.ProductStatusActive},
	}
}

func TestInStockDropsSoldOutPreservingOrder(t *testing.T) {
	entries := []models.FeaturedProduct{
		featuredEntry(10, 1, 5),
		featuredEntry(11, 2, 0),
		featuredEntry(12, 3, 2),
		featuredEntry(13, 4, 0),
		featuredEntry(14, 5, 9),
	}

	stocked := InStock(entries)
	require.Len(t, stocked, 3)
	assert.Equal(t, 10, stocked[0].ID)
	assert.Equal(t, 12, stocked[1].ID)
	assert.Equal(t, 14, stocked[2].ID)
}

func TestInStockAllSoldOut(t *testing.T) {
	entries := []models.FeaturedProduct{
		featuredEntry(1, 1, 0),
		featuredEntry(2, 2, 0),
	}
	assert.Empty(t, InStock(entries))
}

func TestPaginateAppliesAfterFiltering(t *testing.T) {
	entries := []models.FeaturedProduct{
		featuredEntry(1, 1, 5),
		featuredEntry(2, 2, 0),
		featuredEntry(3, 3, 5),
		featuredEntry(4, 4, 5),
		featuredEntry(5, 5, 5),
	}

	// Page boundaries must count only in-stock entries.
	stocked := InStock(entries)
	page1 := Paginate(stocked, 1, 2)
	page2 := Paginate(stocked, 2, 2)

	require.Len(t, page1, 2)
	assert.Equal(t, 1, page1[0].ID)
	assert.Equal(t, 3, page1[1].ID)
	require.Len(t, page2, 2)
	assert.Equal(t, 4, page2[0].ID)
	assert.Equal(t, 5, page2[1].ID)
}

func TestPaginatePastEndIsEmpty(t *testing.T) {
	entries := []models.FeaturedProduct{featuredEntry(1, 1, 5)}

	page := Paginate(entries, 3, 10)
	assert.NotNil(t, page)
	assert.Empty(t, page)
}

func TestPaginateDefaultsBadParams(t *testing.T) {
	entries := []models.FeaturedProduct{
		featuredEntry(1, 1, 5),
		featuredEntry(2, 2, 5),
	}

	page := Paginate(entries, 0, -1)
	assert.Len(t, page, 2)
}

type fakeFeaturedCollection struct {
	entries   []models.FeaturedEntry
	reordered []int
}

func (f *fakeFeaturedCollection) GetEntries() ([]models.FeaturedEntry, error) {
	return f.entries, nil
}

func (f *fakeFeaturedCollection) Add(productID int) error    { return nil }
func (f *fakeFeaturedCollection) Remove(productID int) error { return nil }

func (f *fakeFeaturedCollection) Reorder(productIDs []int) error {
	f.reordered = productIDs
	return nil
}

func curatedEntries(productIDs ...int) []models.FeaturedEntry {
	entries := make([]models.FeaturedEntry, len(productIDs))
	for i, id := range productIDs {
		entries[i] = models.FeaturedEntry{ID: i + 1, DisplayOrder: i + 1, ProductID: id}
	}
	return entries
}

func TestReorderAcceptsPermutation(t *testing.T) {
	collection := &fakeFeaturedCollection{entries: curatedEntries(10, 11, 12)}
	svc := NewFeaturedService(nil, collection, nil)

	require.NoError(t, svc.Reorder([]int{12, 10, 11}))
	assert.Equal(t, []int{12, 10, 11}, collection.reordered)
}

func TestReorderRejectsUnknownProduct(t *testing.T) {
	collection := &fakeFeaturedCollection{entries: curatedEntries(10, 11, 12)}
	svc := NewFeaturedService(nil, collection, nil)

	err := svc.Reorder([]int{12, 10, 99})
	assert.ErrorIs(t, err, utils.ErrFeaturedMismatch)
	assert.Nil(t, collection.reordered)
}

func TestReorderRejectsDroppedEntries(t *testing.T) {
	collection := &fakeFeaturedCollection{entries: curatedEntries(10, 11, 12)}
	svc := NewFeaturedService(nil, collection, nil)

	err := svc.Reorder([]int{12, 10})
	assert.ErrorIs(t, err, utils.ErrFeaturedMismatch)
}

func TestReorderRejectsDuplicates(t *testing.T) {
	collection := &fakeFeaturedCollection{entries: curatedEntries(10, 11, 12)}
	svc := NewFeaturedService(nil, collection, nil)

	err := svc.Reorder([]int{10, 10, 11})
	assert.ErrorIs(t, err, utils.ErrFeaturedMismatch)
}
