package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/darthcode66/Snap-Self/internal/models"
)

const schoolColumns = `s.id, s.name, s.cnpj, s.phone, s.email, s.street, s.number, s.complement, s.neighborhood, s.city, s.state, s.zip_code, s.photographer_id, s.created_at, s.updated_at`

// SchoolRepository manages persistence for schools.
type SchoolRepository struct {
	db *sqlx.DB
}

// NewSchoolRepository constructs a school repository.
func NewSchoolRepository(db *sqlx.DB) *SchoolRepository {
	return &SchoolRepository{db: db}
}

// ListByPhotographer returns the photographer's schools, newest first, with class counts.
func (r *SchoolRepository) ListByPhotographer(ctx context.Context, photographerID string) ([]models.SchoolSummary, error) {
	query := `SELECT ` + schoolColumns + `, COUNT(c.id) AS class_count FROM schools s LEFT JOIN classes c ON c.school_id = s.id WHERE s.photographer_id = $1 GROUP BY s.id ORDER BY s.created_at DESC`
	schools := make([]models.SchoolSummary, 0)
	if err := r.db.SelectContext(ctx, &schools, query, photographerID); err != nil {
		return nil, fmt.Errorf("list schools: %w", err)
	}
	return schools, nil
}

// FindByID returns a school by id.
func (r *SchoolRepository) FindByID(ctx context.Context, id string) (*models.School, error) {
	query := `SELECT ` + schoolColumns + ` FROM schools s WHERE s.id = $1`
	var school models.School
	if err := r.db.GetContext(ctx, &school, query, id); err != nil {
		return nil, err
	}
	return &school, nil
}

// Create persists a school.
func (r *SchoolRepository) Create(ctx context.Context, school *models.School) error {
	if school.ID == "" {
		school.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if school.CreatedAt.IsZero() {
		school.CreatedAt = now
	}
	school.UpdatedAt = now

	const query = `INSERT INTO schools (id, name, cnpj, phone, email, street, number, complement, neighborhood, city, state, zip_code, photographer_id, created_at, updated_at) VALUES (:id, :name, :cnpj, :phone, :email, :street, :number, :complement, :neighborhood, :city, :state, :zip_code, :photographer_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, school); err != nil {
		return fmt.Errorf("create school: %w", err)
	}
	return nil
}

// Update rewrites the editable school fields. The owner never changes.
func (r *SchoolRepository) Update(ctx context.Context, school *models.School) error {
	school.UpdatedAt = time.Now().UTC()
	const query = `UPDATE schools SET name = :name, cnpj = :cnpj, phone = :phone, email = :email, street = :street, number = :number, complement = :complement, neighborhood = :neighborhood, city = :city, state = :state, zip_code = :zip_code, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, school); err != nil {
		return fmt.Errorf("update school: %w", err)
	}
	return nil
}

// Delete removes a school; classes and everything beneath cascade.
func (r *SchoolRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM schools WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete school: %w", err)
	}
	return nil
}
