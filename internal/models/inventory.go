package models

import "time"

// Inventory tracks stock for a single product (one row per product).
type Inventory struct {
	ProductID    int       `db:"product_id" json:"productId"`
	Quantity     int       `db:"quantity" json:"quantity"`
	Reserved     int       `db:"reserved" json:"reserved"`
	ReorderLevel int       `db:"reorder_level" json:"reorderLevel"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}
