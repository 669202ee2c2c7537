package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/oakhaus/oakhaus-api/internal/models"
)

// FeaturedRepository handles data access for the featured collection.
type FeaturedRepository struct {
	db *sqlx.DB
}

// NewFeaturedRepository creates a new FeaturedRepository.
func NewFeaturedRepository(db *sqlx.DB) *FeaturedRepository {
	return &FeaturedRepository{db: db}
}

// GetAllWithStock returns every featured entry joined with its product and
// current stock, in admin display order. Stock filtering happens in the
// service layer so pagination can run after it.
func (r *FeaturedRepository) GetAllWithStock() ([]models.FeaturedProduct, error) {
	const q = `
        SELECT f.display_order, COALESCE(i.quantity, 0) AS stock_quantity, p.*
        FROM featured_collection f
        JOIN products p ON p.id = f.product_id
        LEFT JOIN inventory i ON i.product_id = f.product_id
        WHERE p.status = 'active'
        ORDER BY f.display_order`
	stmt, err := r.db.Preparex(q)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	var entries []models.FeaturedProduct
	if err := stmt.Select(&entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetEntries returns the raw curated list for admin editing.
func (r *FeaturedRepository) GetEntries() ([]models.FeaturedEntry, error) {
	const q = `SELECT * FROM featured_collection ORDER BY display_order`
	var entries []models.FeaturedEntry
	if err := r.db.Select(&entries, q); err != nil {
		return nil, err
	}
	return entries, nil
}

// Add appends a product at the end of the curated ordering.
func (r *FeaturedRepository) Add(productID int) error {
	const q = `
        INSERT INTO featured_collection (display_order, product_id)
        SELECT COALESCE(MAX(display_order), 0) + 1, $1 FROM featured_collection
        ON CONFLICT (product_id) DO NOTHING`
	_, err := r.db.Exec(q, productID)
	return err
}

// Remove drops a product from the collection.
func (r *FeaturedRepository) Remove(productID int) error {
	const q = `DELETE FROM featured_collection WHERE product_id = $1`
	_, err := r.db.Exec(q, productID)
	return err
}

// Reorder replaces the whole ordering atomically with the given product ids.
func (r *FeaturedRepository) Reorder(productIDs []int) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM featured_collection`); err != nil {
		return err
	}
	const q = `INSERT INTO featured_collection (display_order, product_id) VALUES ($1, $2)`
	for i, pid := range productIDs {
		if _, err := tx.Exec(q, i+1, pid); err != nil {
			return err
		}
	}
	return tx.Commit()
}
