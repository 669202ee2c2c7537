package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakhaus/oakhaus-api/internal/models"
)

func TestWindowForThresholdSplit(t *testing.T) {
	svc := NewBestSellerService(nil, nil, 15, 30)
	now := time.Date(2025, time.July, 10, 9, 0, 0, 0, time.UTC)

	banner := svc.WindowFor("prev_month", now)
	assert.Equal(t, "prev_month", banner.Key)
	assert.Equal(t, 15, banner.MinUnits)

	trailing := svc.WindowFor("trailing", now)
	assert.Equal(t, "trailing:30", trailing.Key)
	assert.Equal(t, 0, trailing.MinUnits)
}

func TestTrailingTopSellerServedBelowBannerThreshold(t *testing.T) {
	items := &fakeSoldItems{items: []models.SoldItem{
		{ProductID: 1, Quantity: 10},
	}}
	products := &fakeProducts{products: map[int]*models.ProductWithStock{
		1: stockedProduct(1, "Teak Console", 6),
	}}

	svc := NewBestSellerService(NewSalesAggregator(items, products), nil, 15, 30)

	// The dashboard's trailing window has no qualification threshold, so a
	// 10-unit top seller still surfaces.
	trailing, err := svc.Get(context.Background(), "trailing")
	require.NoError(t, err)
	require.NotNil(t, trailing)
	assert.Equal(t, 1, trailing.Product.ID)
	assert.Equal(t, 10, trailing.UnitsSold)

	// The banner window requires 15 units, so the same sales report "none".
	banner, err := svc.Get(context.Background(), "prev_month")
	require.NoError(t, err)
	assert.Nil(t, banner)
}
