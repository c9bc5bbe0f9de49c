package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/darthcode66/Snap-Self/internal/models"
)

// UserRepository mirrors identity-provider users locally.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository constructs a user repository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure inserts the user when missing. Existing rows are left untouched.
func (r *UserRepository) Ensure(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	if user.Role == "" {
		user.Role = models.RolePhotographer
	}

	const query = `INSERT INTO users (id, email, name, role, created_at, updated_at) VALUES (:id, :email, :name, :role, :created_at, :updated_at) ON CONFLICT (id) DO NOTHING`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}
	return nil
}

