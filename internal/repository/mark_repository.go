package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/darthcode66/Snap-Self/internal/models"
)

const upsertMark = `INSERT INTO session_marks (session_id, student_id, status, marked_at) VALUES ($1, $2, $3, $4)
        ON CONFLICT (session_id, student_id) DO UPDATE SET status = EXCLUDED.status, marked_at = EXCLUDED.marked_at`

// MarkRepository persists per-student capture outcomes.
type MarkRepository struct {
	db *sqlx.DB
}

// NewMarkRepository constructs a mark repository.
func NewMarkRepository(db *sqlx.DB) *MarkRepository {
	return &MarkRepository{db: db}
}

// ListBySession returns every mark recorded for a session.
func (r *MarkRepository) ListBySession(ctx context.Context, sessionID string) ([]models.SessionMark, error) {
	const query = `SELECT session_id, student_id, status, marked_at FROM session_marks WHERE session_id = $1`
	marks := make([]models.SessionMark, 0)
	if err := r.db.SelectContext(ctx, &marks, query, sessionID); err != nil {
		return nil, fmt.Errorf("list marks: %w", err)
	}
	return marks, nil
}

// Set records a status for a student. Pending clears any stored mark.
func (r *MarkRepository) Set(ctx context.Context, sessionID, studentID string, status models.MarkStatus) error {
	if status == models.MarkPending {
		if _, err := r.db.ExecContext(ctx, `DELETE FROM session_marks WHERE session_id = $1 AND student_id = $2`, sessionID, studentID); err != nil {
			return fmt.Errorf("clear mark: %w", err)
		}
		return nil
	}
	if _, err := r.db.ExecContext(ctx, upsertMark, sessionID, studentID, status, time.Now().UTC()); err != nil {
		return fmt.Errorf("set mark: %w", err)
	}
	return nil
}
