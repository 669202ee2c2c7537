package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/oakhaus/oakhaus-api/internal/models"
)

// UserRepository handles data access for user accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByEmail returns a user by email.
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	const q = `SELECT * FROM users WHERE email = $1 LIMIT 1`
	stmt, err := r.db.Preparex(q)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	var u models.User
	if err := stmt.Get(&u, email); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID returns a user by id.
func (r *UserRepository) GetByID(id int) (*models.User, error) {
	const q = `SELECT * FROM users WHERE id = $1 LIMIT 1`
	stmt, err := r.db.Preparex(q)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	var u models.User
	if err := stmt.Get(&u, id); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user.
func (r *UserRepository) Create(user *models.User) error {
	const q = `
        INSERT INTO users (email, password_hash, name, role, is_active)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`
	return r.db.QueryRowx(q,
		user.Email, user.PasswordHash, user.Name, user.Role, user.IsActive,
	).Scan(&user.ID, &user.CreatedAt)
}

// GetAdminIDs returns the ids of all active admin accounts, used to fan out
// admin notifications.
func (r *UserRepository) GetAdminIDs() ([]int, error) {
	const q = `SELECT id FROM users WHERE role = 'admin' AND is_active = true`
	var ids []int
	if err := r.db.Select(&ids, q); err != nil {
		return nil, err
	}
	return ids, nil
}
