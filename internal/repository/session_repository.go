package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/darthcode66/Snap-Self/internal/models"
)

var sessionColumns = []string{
	"ps.id", "ps.class_id", "ps.photographer_id", "ps.photo_prefix", "ps.start_number", "ps.sort_order",
	"ps.total_students", "ps.photographed", "ps.absent", "ps.pending", "ps.current_student_index",
	"ps.status", "ps.created_at", "ps.updated_at", "ps.completed_at",
}

// SessionRepository manages persistence for photo sessions.
type SessionRepository struct {
	db *sqlx.DB
	sb squirrel.StatementBuilderType
}

// NewSessionRepository constructs a session repository.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// List returns the photographer's sessions, newest first, optionally for one class.
func (r *SessionRepository) List(ctx context.Context, filter models.SessionFilter) ([]models.SessionListItem, error) {
	columns := append(append([]string{}, sessionColumns...), "c.name AS class_name", "s.id AS school_id", "s.name AS school_name")
	builder := r.sb.Select(columns...).
		From("photo_sessions ps").
		Join("classes c ON c.id = ps.class_id").
		Join("schools s ON s.id = c.school_id").
		Where(squirrel.Eq{"ps.photographer_id": filter.PhotographerID}).
		OrderBy("ps.created_at DESC")
	if filter.ClassID != "" {
		builder = builder.Where(squirrel.Eq{"ps.class_id": filter.ClassID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list sessions query: %w", err)
	}

	sessions := make([]models.SessionListItem, 0)
	if err := r.db.SelectContext(ctx, &sessions, query, args...); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// FindByID returns a session by id.
func (r *SessionRepository) FindByID(ctx context.Context, id string) (*models.PhotoSession, error) {
	query, args, err := r.sb.Select(sessionColumns...).
		From("photo_sessions ps").
		Where(squirrel.Eq{"ps.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find session query: %w", err)
	}

	var session models.PhotoSession
	if err := r.db.GetContext(ctx, &session, query, args...); err != nil {
		return nil, err
	}
	return &session, nil
}

// Create persists a new session.
func (r *SessionRepository) Create(ctx context.Context, session *models.PhotoSession) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now

	const query = `INSERT INTO photo_sessions (id, class_id, photographer_id, photo_prefix, start_number, sort_order, total_students, photographed, absent, pending, current_student_index, status, created_at, updated_at, completed_at) VALUES (:id, :class_id, :photographer_id, :photo_prefix, :start_number, :sort_order, :total_students, :photographed, :absent, :pending, :current_student_index, :status, :created_at, :updated_at, :completed_at)`
	if _, err := r.db.NamedExecContext(ctx, query, session); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// Update applies only the fields present in changes. Completing a session stamps
// completed_at with now in the same statement.
func (r *SessionRepository) Update(ctx context.Context, id string, changes models.SessionChanges, now time.Time) error {
	builder := r.sb.Update("photo_sessions").Set("updated_at", now)
	if changes.Status != nil {
		builder = builder.Set("status", *changes.Status)
		if *changes.Status == models.SessionStatusCompleted {
			builder = builder.Set("completed_at", now)
		}
	}
	if changes.CurrentStudentIndex != nil {
		builder = builder.Set("current_student_index", *changes.CurrentStudentIndex)
	}
	if changes.Photographed != nil {
		builder = builder.Set("photographed", *changes.Photographed)
	}
	if changes.Absent != nil {
		builder = builder.Set("absent", *changes.Absent)
	}
	if changes.Pending != nil {
		builder = builder.Set("pending", *changes.Pending)
	}

	query, args, err := builder.Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build update session query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

// Delete removes a session; photos and marks cascade.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM photo_sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
