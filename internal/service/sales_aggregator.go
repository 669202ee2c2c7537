package service

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/oakhaus/oakhaus-api/internal/models"
)

// Window bounds a sales aggregation period. Bounds are half-open: an order
// created exactly at End belongs to the next window.
type Window struct {
	Start time.Time
	End   time.Time
	// Key identifies the window variant for caching (not the exact bounds).
	Key string
	// MinUnits is the qualification threshold for this window; a winner
	// below it reports as "none". 0 disables the threshold.
	MinUnits int
}

// PreviousCalendarMonth returns the window covering the full month before
// now: first day of the previous month through first day of the current
// month, exclusive.
func PreviousCalendarMonth(now time.Time) Window {
	firstOfCurrent := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	firstOfPrevious := firstOfCurrent.AddDate(0, -1, 0)
	return Window{Start: firstOfPrevious, End: firstOfCurrent, Key: "prev_month"}
}

// TrailingDays returns the rolling window [now - days, now).
func TrailingDays(now time.Time, days int) Window {
	return Window{
		Start: now.AddDate(0, 0, -days),
		End:   now,
		Key:   fmt.Sprintf("trailing:%d", days),
	}
}

// SalesTally maps a product id to its summed units sold inside a window.
// Products with no sales are absent, not zero.
type SalesTally map[int]int

// Add accumulates units for a product.
func (t SalesTally) Add(productID, quantity int) {
	t[productID] += quantity
}

// Best returns the product with the highest summed quantity. Ties break to
// the lowest product id so the result never depends on iteration order.
// ok is false for an empty tally.
func (t SalesTally) Best() (productID, units int, ok bool) {
	for id, qty := range t {
		switch {
		case !ok, qty > units, qty == units && id < productID:
			productID, units, ok = id, qty, true
		}
	}
	return productID, units, ok
}

// SoldItemSource supplies order items whose parent order falls in a window.
type SoldItemSource interface {
	ItemsSoldBetween(start, end time.Time) ([]models.SoldItem, error)
}

// StockedProductSource supplies a product joined with current stock.
type StockedProductSource interface {
	GetWithStock(id int) (*models.ProductWithStock, error)
}

// SalesAggregator computes the best-selling product of a lookback window for
// promotional display. It is stateless and idempotent: identical window
// bounds over unchanged order data always produce the same result. It makes
// a single attempt per fetch; retry policy belongs to the caller.
type SalesAggregator struct {
	items    SoldItemSource
	products StockedProductSource
}

// NewSalesAggregator constructs a SalesAggregator. The qualification
// threshold is carried per window, not here: the homepage banner window
// sets one, the dashboard trailing window does not.
func NewSalesAggregator(items SoldItemSource, products StockedProductSource) *SalesAggregator {
	return &SalesAggregator{items: items, products: products}
}

// BestSeller returns the best-selling product of the window, or (nil, nil)
// when the window has no qualifying winner: no order activity, the top
// seller fell below the window's threshold, or the winning product has
// since been deleted. "None" is a valid terminal state, never an error.
//
// The returned stock quantity is display data only; it plays no part in the
// ranking, so a sold-out product can still be the best seller.
func (a *SalesAggregator) BestSeller(window Window) (*models.BestSeller, error) {
	items, err := a.items.ItemsSoldBetween(window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sold items: %w", err)
	}

	tally := make(SalesTally, len(items))
	for _, item := range items {
		tally.Add(item.ProductID, item.Quantity)
	}

	productID, units, ok := tally.Best()
	if !ok {
		return nil, nil
	}
	if window.MinUnits > 0 && units < window.MinUnits {
		log.Debug().
			Int("product_id", productID).
			Int("units", units).
			Int("min_units", window.MinUnits).
			Str("window", window.Key).
			Msg("Best seller below qualification threshold")
		return nil, nil
	}

	product, err := a.products.GetWithStock(productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Winner was deleted after the orders were placed.
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch winning product: %w", err)
	}

	return &models.BestSeller{
		Product:       product.Product,
		UnitsSold:     units,
		StockQuantity: product.StockQuantity,
	}, nil
}
