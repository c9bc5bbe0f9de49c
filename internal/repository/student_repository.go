package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/darthcode66/Snap-Self/internal/models"
)

const (
	studentColumns = `id, name, sort_name, registration_number, has_authorization, has_paid, class_id, created_at, updated_at`
	insertStudent  = `INSERT INTO students (id, name, sort_name, registration_number, has_authorization, has_paid, class_id, created_at, updated_at) VALUES (:id, :name, :sort_name, :registration_number, :has_authorization, :has_paid, :class_id, :created_at, :updated_at)`
)

// StudentRepository manages persistence for students.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a student repository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// ListByClass returns the class roster ordered by sort key.
func (r *StudentRepository) ListByClass(ctx context.Context, classID string) ([]models.Student, error) {
	const query = `SELECT ` + studentColumns + ` FROM students WHERE class_id = $1 ORDER BY sort_name ASC, created_at ASC`
	students := make([]models.Student, 0)
	if err := r.db.SelectContext(ctx, &students, query, classID); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// FindByID returns a student by id.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	const query = `SELECT ` + studentColumns + ` FROM students WHERE id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// Create persists a single student.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	stampStudent(student, time.Now().UTC())
	if _, err := r.db.NamedExecContext(ctx, insertStudent, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// CreateBatch inserts all students in one transaction; any failure rolls back the whole batch.
func (r *StudentRepository) CreateBatch(ctx context.Context, students []models.Student) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin student import: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	for i := range students {
		stampStudent(&students[i], now)
		if _, err = tx.NamedExecContext(ctx, insertStudent, &students[i]); err != nil {
			return fmt.Errorf("import student %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit student import: %w", err)
	}
	return nil
}

// Delete removes a student; photos and marks cascade.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	return nil
}

func stampStudent(student *models.Student, now time.Time) {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	if student.CreatedAt.IsZero() {
		student.CreatedAt = now
	}
	student.UpdatedAt = now
}
