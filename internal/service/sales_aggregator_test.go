package service

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakhaus/oakhaus-api/internal/models"
)

type fakeSoldItems struct {
	items []models.SoldItem
	err   error
	calls int
}

func (f *fakeSoldItems) ItemsSoldBetween(start, end time.Time) ([]models.SoldItem, error) {
	f.calls++
	return f.items, f.err
}

type fakeProducts struct {
	products map[int]*models.ProductWithStock
}

func (f *fakeProducts) GetWithStock(id int) (*models.ProductWithStock, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return p, nil
}

func stockedProduct(id int, name string, stock int) *models.ProductWithStock {
	return &models.ProductWithStock{
		Product:       models.Product{ID: id, Name: name, Status: models.ProductStatusActive},
		StockQuantity: stock,
	}
}

func TestPreviousCalendarMonth(t *testing.T) {
	now := time.Date(2025, time.March, 15, 10, 30, 0, 0, time.UTC)
	w := PreviousCalendarMonth(now)

	assert.Equal(t, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), w.End)
	assert.Equal(t, "prev_month", w.Key)
}

func TestPreviousCalendarMonthAcrossYear(t *testing.T) {
	now := time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC)
	w := PreviousCalendarMonth(now)

	assert.Equal(t, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), w.End)
}

func TestTrailingDays(t *testing.T) {
	now := time.Date(2025, time.June, 30, 12, 0, 0, 0, time.UTC)
	w := TrailingDays(now, 30)

	assert.Equal(t, now.AddDate(0, 0, -30), w.Start)
	assert.Equal(t, now, w.End)
	assert.Equal(t, "trailing:30", w.Key)
}

func TestSalesTallyBest(t *testing.T) {
	tally := SalesTally{}
	tally.Add(3, 5)
	tally.Add(1, 5)
	tally.Add(2, 4)
	tally.Add(3, 2)

	id, units, ok := tally.Best()
	require.True(t, ok)
	assert.Equal(t, 3, id)
	assert.Equal(t, 7, units)
}

func TestSalesTallyBestTieBreaksToLowestID(t *testing.T) {
	tally := SalesTally{}
	tally.Add(9, 10)
	tally.Add(2, 10)
	tally.Add(5, 10)

	// Repeat to catch map iteration order dependence.
	for i := 0; i < 50; i++ {
		id, units, ok := tally.Best()
		require.True(t, ok)
		assert.Equal(t, 2, id)
		assert.Equal(t, 10, units)
	}
}

func TestSalesTallyBestEmpty(t *testing.T) {
	_, _, ok := SalesTally{}.Best()
	assert.False(t, ok)
}

func TestBestSellerPicksHighestUnits(t *testing.T) {
	items := &fakeSoldItems{items: []models.SoldItem{
		{ProductID: 1, Quantity: 12},
		{ProductID: 2, Quantity: 4},
		{ProductID: 1, Quantity: 8},
		{ProductID: 2, Quantity: 6},
	}}
	products := &fakeProducts{products: map[int]*models.ProductWithStock{
		1: stockedProduct(1, "Walnut Dining Table", 7),
		2: stockedProduct(2, "Linen Armchair", 30),
	}}

	agg := NewSalesAggregator(items, products)
	result, err := agg.BestSeller(TrailingDays(time.Now(), 30))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 1, result.Product.ID)
	assert.Equal(t, 20, result.UnitsSold)
	assert.Equal(t, 7, result.StockQuantity)
}

func TestBestSellerNoActivityIsNotAnError(t *testing.T) {
	agg := NewSalesAggregator(&fakeSoldItems{}, &fakeProducts{})

	result, err := agg.BestSeller(PreviousCalendarMonth(time.Now()))
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestBestSellerBelowThreshold(t *testing.T) {
	items := &fakeSoldItems{items: []models.SoldItem{
		{ProductID: 1, Quantity: 10},
		{ProductID: 2, Quantity: 8},
	}}
	products := &fakeProducts{products: map[int]*models.ProductWithStock{
		1: stockedProduct(1, "Oak Bench", 5),
		2: stockedProduct(2, "Rattan Stool", 5),
	}}

	agg := NewSalesAggregator(items, products)
	window := TrailingDays(time.Now(), 30)
	window.MinUnits = 15
	result, err := agg.BestSeller(window)
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestBestSellerMeetsThresholdExactly(t *testing.T) {
	items := &fakeSoldItems{items: []models.SoldItem{
		{ProductID: 1, Quantity: 15},
	}}
	products := &fakeProducts{products: map[int]*models.ProductWithStock{
		1: stockedProduct(1, "Oak Bench", 5),
	}}

	agg := NewSalesAggregator(items, products)
	window := TrailingDays(time.Now(), 30)
	window.MinUnits = 15
	result, err := agg.BestSeller(window)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 15, result.UnitsSold)
}

func TestBestSellerSoldOutProductStillWins(t *testing.T) {
	items := &fakeSoldItems{items: []models.SoldItem{
		{ProductID: 1, Quantity: 40},
		{ProductID: 2, Quantity: 3},
	}}
	products := &fakeProducts{products: map[int]*models.ProductWithStock{
		1: stockedProduct(1, "Velvet Sofa", 0),
		2: stockedProduct(2, "Side Table", 99),
	}}

	agg := NewSalesAggregator(items, products)
	result, err := agg.BestSeller(TrailingDays(time.Now(), 30))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 1, result.Product.ID)
	assert.Equal(t, 0, result.StockQuantity)
}

func TestBestSellerDeletedWinnerYieldsNone(t *testing.T) {
	items := &fakeSoldItems{items: []models.SoldItem{
		{ProductID: 42, Quantity: 20},
	}}

	agg := NewSalesAggregator(items, &fakeProducts{})
	result, err := agg.BestSeller(TrailingDays(time.Now(), 30))
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestBestSellerPropagatesFetchError(t *testing.T) {
	items := &fakeSoldItems{err: errors.New("connection reset")}

	agg := NewSalesAggregator(items, &fakeProducts{})
	_, err := agg.BestSeller(TrailingDays(time.Now(), 30))
	assert.Error(t, err)
}

func TestBestSellerIsIdempotent(t *testing.T) {
	items := &fakeSoldItems{items: []models.SoldItem{
		{ProductID: 1, Quantity: 6},
		{ProductID: 2, Quantity: 9},
	}}
	products := &fakeProducts{products: map[int]*models.ProductWithStock{
		1: stockedProduct(1, "Oak Desk", 3),
		2: stockedProduct(2, "Bookcase", 11),
	}}

	agg := NewSalesAggregator(items, products)
	window := TrailingDays(time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC), 30)

	first, err := agg.BestSeller(window)
	require.NoError(t, err)
	second, err := agg.BestSeller(window)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, items.calls)
}
