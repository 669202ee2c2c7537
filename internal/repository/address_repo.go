package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/oakhaus/oakhaus-api/internal/models"
)

// AddressRepository handles data access for user address books.
type AddressRepository struct {
	db *sqlx.DB
}

// NewAddressRepository creates a new AddressRepository.
func NewAddressRepository(db *sqlx.DB) *AddressRepository {
	return &AddressRepository{db: db}
}

// GetByUser returns a user's addresses, default first.
func (r *AddressRepository) GetByUser(userID int) ([]models.Address, error) {
	const q = `SELECT * FROM addresses WHERE user_id = $1 ORDER BY is_default DESC, id`
	var addrs []models.Address
	if err := r.db.Select(&addrs, q, userID); err != nil {
		return nil, err
	}
	return addrs, nil
}

// GetByID returns an address scoped to its owner.
func (r *AddressRepository) GetByID(id, userID int) (*models.Address, error) {
	const q = `SELECT * FROM addresses WHERE id = $1 AND user_id = $2 LIMIT 1`
	var a models.Address
	if err := r.db.Get(&a, q, id, userID); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new address. The first address for a user becomes the
// default automatically.
func (r *AddressRepository) Create(addr *models.Address) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var count int
	if err := tx.Get(&count, `SELECT COUNT(1) FROM addresses WHERE user_id = $1`, addr.UserID); err != nil {
		return err
	}
	if count == 0 {
		addr.IsDefault = true
	} else if addr.IsDefault {
		if _, err := tx.Exec(`UPDATE addresses SET is_default = false WHERE user_id = $1`, addr.UserID); err != nil {
			return err
		}
	}

	const q = `
        INSERT INTO addresses (user_id, label, recipient, phone, street, city, province, postal_code, is_default)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at`
	if err := tx.QueryRowx(q,
		addr.UserID, addr.Label, addr.Recipient, addr.Phone,
		addr.Street, addr.City, addr.Province, addr.PostalCode, addr.IsDefault,
	).Scan(&addr.ID, &addr.CreatedAt); err != nil {
		return err
	}

	return tx.Commit()
}

// Update edits an address scoped to its owner. Past orders keep their
// snapshot regardless.
func (r *AddressRepository) Update(addr *models.Address) error {
	const q = `
        UPDATE addresses
        SET label = $3, recipient = $4, phone = $5, street = $6,
            city = $7, province = $8, postal_code = $9
        WHERE id = $1 AND user_id = $2`
	res, err := r.db.Exec(q,
		addr.ID, addr.UserID, addr.Label, addr.Recipient, addr.Phone,
		addr.Street, addr.City, addr.Province, addr.PostalCode,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes an address scoped to its owner.
func (r *AddressRepository) Delete(id, userID int) error {
	const q = `DELETE FROM addresses WHERE id = $1 AND user_id = $2`
	res, err := r.db.Exec(q, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
