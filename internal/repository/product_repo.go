package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/oakhaus/oakhaus-api/internal/models"
)

// ProductRepository handles data access for products.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetAllPaged returns active products with filters and pagination plus total count.
// Filters: category, productType (exact), search (ILIKE on name). Empty
// filters are ignored. Page begins at 1.
func (r *ProductRepository) GetAllPaged(category, productType, search string, page, limit int) ([]models.ProductWithStock, int, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	offset := (page - 1) * limit

	const baseWhere = `WHERE ($1 = '' OR p.category = $1)
        AND ($2 = '' OR p.type = $2)
        AND ($3 = '' OR p.name ILIKE '%' || $3 || '%')
        AND p.status = 'active'`

	countQuery := `SELECT COUNT(1) FROM products p ` + baseWhere
	var total int
	if err := r.db.Get(&total, countQuery, category, productType, search); err != nil {
		return nil, 0, err
	}

	listQuery := `
        SELECT p.*, COALESCE(i.quantity, 0) AS stock_quantity
        FROM products p
        LEFT JOIN inventory i ON i.product_id = p.id ` + baseWhere + `
        ORDER BY p.category, p.name LIMIT $4 OFFSET $5`
	var products []models.ProductWithStock
	if err := r.db.Select(&products, listQuery, category, productType, search, limit, offset); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// GetByID returns a single product by id.
func (r *ProductRepository) GetByID(id int) (*models.Product, error) {
	const q = `SELECT * FROM products WHERE id = $1 LIMIT 1`
	stmt, err := r.db.Preparex(q)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	var p models.Product
	if err := stmt.Get(&p, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetWithStock returns a product joined with its current inventory quantity.
func (r *ProductRepository) GetWithStock(id int) (*models.ProductWithStock, error) {
	const q = `
        SELECT p.*, COALESCE(i.quantity, 0) AS stock_quantity
        FROM products p
        LEFT JOIN inventory i ON i.product_id = p.id
        WHERE p.id = $1 LIMIT 1`
	stmt, err := r.db.Preparex(q)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	var p models.ProductWithStock
	if err := stmt.Get(&p, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create creates a new product together with its inventory row.
func (r *ProductRepository) Create(product *models.Product, initialStock, reorderLevel int) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const q = `INSERT INTO products (name, description, category, type, price, image_url, status)
              VALUES ($1, $2, $3, $4, $5, $6, $7)
              RETURNING id, created_at, updated_at`
	if err := tx.QueryRowx(q,
		product.Name,
		product.Description,
		product.Category,
		product.Type,
		product.Price,
		product.ImageURL,
		product.Status,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt); err != nil {
		return err
	}

	const invQ = `INSERT INTO inventory (product_id, quantity, reorder_level) VALUES ($1, $2, $3)`
	if _, err := tx.Exec(invQ, product.ID, initialStock, reorderLevel); err != nil {
		return err
	}

	return tx.Commit()
}

// Update updates an existing product.
func (r *ProductRepository) Update(product *models.Product) error {
	const q = `UPDATE products
              SET name = $1, description = $2, category = $3, type = $4,
                  price = $5, image_url = $6, status = $7, updated_at = NOW()
              WHERE id = $8
              RETURNING updated_at`
	return r.db.QueryRowx(q,
		product.Name,
		product.Description,
		product.Category,
		product.Type,
		product.Price,
		product.ImageURL,
		product.Status,
		product.ID,
	).Scan(&product.UpdatedAt)
}

// UpdateStatus sets the lifecycle status of a product (archive/restore).
func (r *ProductRepository) UpdateStatus(id int, status models.ProductStatus) error {
	const q = `UPDATE products SET status = $2, updated_at = NOW() WHERE id = $1`
	res, err := r.db.Exec(q, id, status)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateImageURL sets the image reference of a product.
func (r *ProductRepository) UpdateImageURL(id int, imageURL string) error {
	const q = `UPDATE products SET image_url = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(q, id, imageURL)
	return err
}

// Delete permanently deletes a product. Only used from the archive view.
func (r *ProductRepository) Delete(id int) error {
	const q = `DELETE FROM products WHERE id = $1`
	_, err := r.db.Exec(q, id)
	return err
}

// SearchByTerms returns active products matching any of the given terms via
// ILIKE against name, description, category and type. Used by both AI search
// endpoints.
func (r *ProductRepository) SearchByTerms(terms []string, limit int) ([]models.ProductWithStock, error) {
	if len(terms) == 0 {
		return []models.ProductWithStock{}, nil
	}
	if limit <= 0 {
		limit = 50
	}

	clauses := make([]string, 0, len(terms))
	args := []interface{}{}
	argIdx := 1
	for _, term := range terms {
		clauses = append(clauses, fmt.Sprintf(
			"(p.name ILIKE $%d OR p.description ILIKE $%d OR p.category ILIKE $%d OR p.type ILIKE $%d)",
			argIdx, argIdx, argIdx, argIdx))
		args = append(args, "%"+term+"%")
		argIdx++
	}

	q := fmt.Sprintf(`
        SELECT p.*, COALESCE(i.quantity, 0) AS stock_quantity
        FROM products p
        LEFT JOIN inventory i ON i.product_id = p.id
        WHERE p.status = 'active' AND (%s)
        ORDER BY p.name LIMIT $%d`, strings.Join(clauses, " OR "), argIdx)
	args = append(args, limit)

	var products []models.ProductWithStock
	if err := r.db.Select(&products, q, args...); err != nil {
		return nil, err
	}
	return products, nil
}

// AdminProductFilter holds filters for admin product queries.
type AdminProductFilter struct {
	Category string
	Type     string
	Search   string
	Status   *models.ProductStatus
	Page     int
	Limit    int
}

// AdminProductResult contains paginated product results for admin.
type AdminProductResult struct {
	Products   []models.ProductWithStock
	TotalItems int
	TotalPages int
	Page       int
	Limit      int
}

// GetAllAdmin returns all products for admin with filters and pagination
// (includes inactive and discontinued).
func (r *ProductRepository) GetAllAdmin(filter *AdminProductFilter) (*AdminProductResult, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	offset := (filter.Page - 1) * filter.Limit

	// Build dynamic WHERE clause
	baseWhere := `WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.Category != "" {
		baseWhere += fmt.Sprintf(" AND p.category ILIKE $%d", argIdx)
		args = append(args, "%"+filter.Category+"%")
		argIdx++
	}
	if filter.Type != "" {
		baseWhere += fmt.Sprintf(" AND p.type = $%d", argIdx)
		args = append(args, filter.Type)
		argIdx++
	}
	if filter.Search != "" {
		baseWhere += fmt.Sprintf(" AND (p.name ILIKE $%d OR p.description ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.Status != nil {
		baseWhere += fmt.Sprintf(" AND p.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := `SELECT COUNT(1) FROM products p ` + baseWhere
	var total int
	if err := r.db.Get(&total, countQuery, args...); err != nil {
		return nil, err
	}
	totalPages := (total + filter.Limit - 1) / filter.Limit

	listQuery := fmt.Sprintf(`
        SELECT p.*, COALESCE(i.quantity, 0) AS stock_quantity
        FROM products p
        LEFT JOIN inventory i ON i.product_id = p.id
        %s
        ORDER BY p.category, p.name LIMIT $%d OFFSET $%d`, baseWhere, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	var products []models.ProductWithStock
	if err := r.db.Select(&products, listQuery, args...); err != nil {
		return nil, err
	}

	return &AdminProductResult{
		Products:   products,
		TotalItems: total,
		TotalPages: totalPages,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// GetDistinctCategories returns all distinct categories of active products.
func (r *ProductRepository) GetDistinctCategories() ([]string, error) {
	const q = `SELECT DISTINCT category FROM products WHERE category != '' AND status = 'active' ORDER BY category`
	var categories []string
	if err := r.db.Select(&categories, q); err != nil {
		return nil, err
	}
	return categories, nil
}
