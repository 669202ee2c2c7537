package models

import "time"

// CartItem is a row in a user's cart.
type CartItem struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"-"`
	ProductID int       `db:"product_id" json:"productId"`
	Quantity  int       `db:"quantity" json:"quantity"`
	CreatedAt time.Time `db:"created_at" json:"addedAt"`
}

// CartLine joins a cart item with live product data for display and for
// building order item snapshots at checkout.
type CartLine struct {
	CartItem
	ProductName   string        `db:"product_name" json:"productName"`
	ProductImage  string        `db:"product_image" json:"productImage"`
	UnitPrice     int           `db:"unit_price" json:"unitPrice"`
	ProductStatus ProductStatus `db:"product_status" json:"productStatus"`
	StockQuantity int           `db:"stock_quantity" json:"stockQuantity"`
}
