package models

// FeaturedEntry is an admin-curated slot in the featured collection
// carousel. Ordering is manual and independent of sales data.
type FeaturedEntry struct {
	ID           int `db:"id" json:"id"`
	DisplayOrder int `db:"display_order" json:"displayOrder"`
	ProductID    int `db:"product_id" json:"productId"`
}

// FeaturedProduct is a featured entry joined with its product and current
// stock, ready for the stock-availability filter.
type FeaturedProduct struct {
	DisplayOrder  int `db:"display_order" json:"displayOrder"`
	StockQuantity int `db:"stock_quantity" json:"stockQuantity"`
	Product
}
