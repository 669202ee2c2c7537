package models

import "time"

// ProductStatus enumerates the lifecycle states of a catalog product.
type ProductStatus string

const (
	ProductStatusActive       ProductStatus = "active"
	ProductStatusInactive     ProductStatus = "inactive"
	ProductStatusDiscontinued ProductStatus = "discontinued"
)

// Product represents a catalog product. Archiving is a status transition to
// inactive; rows are only hard-deleted from the archive view.
// Fields are tagged for both DB scanning and JSON serialization.
type Product struct {
	ID          int           `db:"id" json:"id"`
	Name        string        `db:"name" json:"name"`
	Description string        `db:"description" json:"description"`
	Category    string        `db:"category" json:"category"`
	Type        string        `db:"type" json:"type"`
	Price       int           `db:"price" json:"price"`
	ImageURL    string        `db:"image_url" json:"imageUrl"`
	Status      ProductStatus `db:"status" json:"status"`
	CreatedAt   time.Time     `db:"created_at" json:"-"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updatedAt"`
}

// ProductWithStock joins a product with its current inventory quantity for
// storefront display. Stock is display data only; it never feeds ranking.
type ProductWithStock struct {
	Product
	StockQuantity int `db:"stock_quantity" json:"stockQuantity"`
}

// BestSeller is the composite view returned by the sales aggregator: the
// winning product plus units sold in the window and current stock.
type BestSeller struct {
	Product       Product `json:"product"`
	UnitsSold     int     `json:"unitsSold"`
	StockQuantity int     `json:"stockQuantity"`
}
