package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/oakhaus/oakhaus-api/internal/models"
)

// CartRepository handles data access for cart items.
type CartRepository struct {
	db *sqlx.DB
}

// NewCartRepository creates a new CartRepository.
func NewCartRepository(db *sqlx.DB) *CartRepository {
	return &CartRepository{db: db}
}

// GetLines returns a user's cart joined with live product data and stock.
func (r *CartRepository) GetLines(userID int) ([]models.CartLine, error) {
	const q = `
        SELECT c.*, p.name AS product_name, p.image_url AS product_image,
               p.price AS unit_price, p.status AS product_status,
               COALESCE(i.quantity, 0) AS stock_quantity
        FROM cart_items c
        JOIN products p ON p.id = c.product_id
        LEFT JOIN inventory i ON i.product_id = c.product_id
        WHERE c.user_id = $1
        ORDER BY c.created_at`
	stmt, err := r.db.Preparex(q)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	var lines []models.CartLine
	if err := stmt.Select(&lines, userID); err != nil {
		return nil, err
	}
	return lines, nil
}

// Upsert adds a product to the cart or bumps its quantity when it is
// already there.
func (r *CartRepository) Upsert(userID, productID, quantity int) error {
	const q = `
        INSERT INTO cart_items (user_id, product_id, quantity)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id, product_id)
        DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`
	_, err := r.db.Exec(q, userID, productID, quantity)
	return err
}

// SetQuantity overwrites the quantity of a cart line.
func (r *CartRepository) SetQuantity(userID, productID, quantity int) error {
	const q = `UPDATE cart_items SET quantity = $3 WHERE user_id = $1 AND product_id = $2`
	res, err := r.db.Exec(q, userID, productID, quantity)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Remove deletes a single product from the cart.
func (r *CartRepository) Remove(userID, productID int) error {
	const q = `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`
	_, err := r.db.Exec(q, userID, productID)
	return err
}

// Clear empties a user's cart.
func (r *CartRepository) Clear(userID int) error {
	const q = `DELETE FROM cart_items WHERE user_id = $1`
	_, err := r.db.Exec(q, userID)
	return err
}
