package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/oakhaus/oakhaus-api/internal/models"
)

// InventoryRepository handles data access for stock records.
type InventoryRepository struct {
	db *sqlx.DB
}

// NewInventoryRepository creates a new InventoryRepository.
func NewInventoryRepository(db *sqlx.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// GetByProductID returns the inventory row for a product.
func (r *InventoryRepository) GetByProductID(productID int) (*models.Inventory, error) {
	const q = `SELECT * FROM inventory WHERE product_id = $1 LIMIT 1`
	stmt, err := r.db.Preparex(q)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	var inv models.Inventory
	if err := stmt.Get(&inv, productID); err != nil {
		return nil, err
	}
	return &inv, nil
}

// AddStock increments on-hand quantity for a product.
func (r *InventoryRepository) AddStock(productID, amount int) error {
	const q = `UPDATE inventory SET quantity = quantity + $2, updated_at = NOW() WHERE product_id = $1`
	res, err := r.db.Exec(q, productID, amount)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetStock overwrites quantity and reorder level for a product (manual edit).
func (r *InventoryRepository) SetStock(productID, quantity, reorderLevel int) error {
	const q = `UPDATE inventory SET quantity = $2, reorder_level = $3, updated_at = NOW() WHERE product_id = $1`
	res, err := r.db.Exec(q, productID, quantity, reorderLevel)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// LowStockProduct is a product at or below its reorder level.
type LowStockProduct struct {
	ProductID    int    `db:"product_id"`
	Name         string `db:"name"`
	Quantity     int    `db:"quantity"`
	ReorderLevel int    `db:"reorder_level"`
}

// GetLowStock returns active products whose quantity is at or below the
// reorder level. Products with reorder_level = 0 never trigger.
func (r *InventoryRepository) GetLowStock() ([]LowStockProduct, error) {
	const q = `
        SELECT i.product_id, p.name, i.quantity, i.reorder_level
        FROM inventory i
        JOIN products p ON p.id = i.product_id
        WHERE p.status = 'active'
          AND i.reorder_level > 0
          AND i.quantity <= i.reorder_level
        ORDER BY i.quantity ASC`
	var rows []LowStockProduct
	if err := r.db.Select(&rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}
