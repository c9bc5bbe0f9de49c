package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/darthcode66/Snap-Self/internal/models"
)

// ClassIdentity is the tuple that must be unique per school.
type ClassIdentity struct {
	SchoolID string
	Grade    string
	Section  string
	Year     int
}

// ClassRepository manages persistence for classes.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository constructs a new class repository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// ListBySchool returns a school's classes ordered by grade then section, with counts.
func (r *ClassRepository) ListBySchool(ctx context.Context, schoolID string) ([]models.ClassSummary, error) {
	const query = `SELECT c.id, c.name, c.grade, c.section, c.year, c.school_id, c.created_at, c.updated_at,
        (SELECT COUNT(*) FROM students st WHERE st.class_id = c.id) AS student_count,
        (SELECT COUNT(*) FROM photo_sessions ps WHERE ps.class_id = c.id) AS session_count
        FROM classes c WHERE c.school_id = $1 ORDER BY c.grade ASC, c.section ASC`
	classes := make([]models.ClassSummary, 0)
	if err := r.db.SelectContext(ctx, &classes, query, schoolID); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

// FindByID returns a class record by ID.
func (r *ClassRepository) FindByID(ctx context.Context, id string) (*models.Class, error) {
	const query = `SELECT id, name, grade, section, year, school_id, created_at, updated_at FROM classes WHERE id = $1`
	var class models.Class
	if err := r.db.GetContext(ctx, &class, query, id); err != nil {
		return nil, err
	}
	return &class, nil
}

// ExistsByIdentity checks whether the (school, grade, section, year) tuple is taken.
func (r *ClassRepository) ExistsByIdentity(ctx context.Context, identity ClassIdentity) (bool, error) {
	const query = `SELECT 1 FROM classes WHERE school_id = $1 AND grade = $2 AND section = $3 AND year = $4 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, identity.SchoolID, identity.Grade, identity.Section, identity.Year); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check class identity: %w", err)
	}
	return true, nil
}

// Create persists a class record.
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	if class.ID == "" {
		class.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if class.CreatedAt.IsZero() {
		class.CreatedAt = now
	}
	class.UpdatedAt = now

	const query = `INSERT INTO classes (id, name, grade, section, year, school_id, created_at, updated_at) VALUES (:id, :name, :grade, :section, :year, :school_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, class); err != nil {
		return fmt.Errorf("create class: %w", err)
	}
	return nil
}

// Delete removes a class record; students and sessions cascade.
func (r *ClassRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM classes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete class: %w", err)
	}
	return nil
}
