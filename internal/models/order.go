package models

import "time"

// OrderStatus enumerates the order lifecycle.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusReceived   OrderStatus = "received"
)

// Order is a placed order. The shipping address is denormalized at creation
// time so later profile edits never touch past orders.
type Order struct {
	ID       int         `db:"id" json:"id"`
	OrderID  string      `db:"order_id" json:"orderId"`
	UserID   int         `db:"user_id" json:"userId"`
	Status   OrderStatus `db:"status" json:"status"`
	Subtotal int         `db:"subtotal" json:"subtotal"`
	Total    int         `db:"total" json:"total"`

	ShipRecipient  string `db:"ship_recipient" json:"shipRecipient"`
	ShipPhone      string `db:"ship_phone" json:"shipPhone"`
	ShipStreet     string `db:"ship_street" json:"shipStreet"`
	ShipCity       string `db:"ship_city" json:"shipCity"`
	ShipProvince   string `db:"ship_province" json:"shipProvince"`
	ShipPostalCode string `db:"ship_postal_code" json:"shipPostalCode"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`

	Items []OrderItem `db:"-" json:"items,omitempty"`
}

// OrderItem is a line of an order. Product name, image and unit price are
// snapshots taken at purchase time; total_price = quantity * unit_price at
// creation and is never recomputed.
type OrderItem struct {
	ID           int    `db:"id" json:"id"`
	OrderID      int    `db:"order_id" json:"-"`
	ProductID    int    `db:"product_id" json:"productId"`
	ProductName  string `db:"product_name" json:"productName"`
	ProductImage string `db:"product_image" json:"productImage"`
	UnitPrice    int    `db:"unit_price" json:"unitPrice"`
	Quantity     int    `db:"quantity" json:"quantity"`
	TotalPrice   int    `db:"total_price" json:"totalPrice"`
}

// SoldItem is the minimal projection the sales aggregator consumes: one row
// per order item whose parent order falls inside the aggregation window.
type SoldItem struct {
	ProductID int `db:"product_id"`
	Quantity  int `db:"quantity"`
}
