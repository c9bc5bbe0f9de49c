package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/darthcode66/Snap-Self/internal/models"
)

var ownerQueries = map[models.ResourceKind]string{
	models.ResourceSchool:  `SELECT photographer_id FROM schools WHERE id = $1`,
	models.ResourceClass:   `SELECT s.photographer_id FROM classes c JOIN schools s ON s.id = c.school_id WHERE c.id = $1`,
	models.ResourceStudent: `SELECT s.photographer_id FROM students st JOIN classes c ON c.id = st.class_id JOIN schools s ON s.id = c.school_id WHERE st.id = $1`,
	models.ResourceSession: `SELECT photographer_id FROM photo_sessions WHERE id = $1`,
}

// OwnershipRepository resolves the owning photographer of any resource.
type OwnershipRepository struct {
	db *sqlx.DB
}

// NewOwnershipRepository constructs an ownership repository.
func NewOwnershipRepository(db *sqlx.DB) *OwnershipRepository {
	return &OwnershipRepository{db: db}
}

// OwnerOf returns the photographer id owning the resource, or sql.ErrNoRows.
func (r *OwnershipRepository) OwnerOf(ctx context.Context, kind models.ResourceKind, id string) (string, error) {
	query, ok := ownerQueries[kind]
	if !ok {
		return "", fmt.Errorf("unknown resource kind %q", kind)
	}
	var owner string
	if err := r.db.GetContext(ctx, &owner, query, id); err != nil {
		return "", err
	}
	return owner, nil
}
