package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/darthcode66/Snap-Self/internal/models"
)

// PhotoRepository manages persistence for session photos.
type PhotoRepository struct {
	db *sqlx.DB
}

// NewPhotoRepository constructs a photo repository.
func NewPhotoRepository(db *sqlx.DB) *PhotoRepository {
	return &PhotoRepository{db: db}
}

// ListBySession returns photos in upload order.
func (r *PhotoRepository) ListBySession(ctx context.Context, sessionID string) ([]models.Photo, error) {
	const query = `SELECT id, session_id, student_id, user_id, filename, size, format, url, width, height, created_at FROM photos WHERE session_id = $1 ORDER BY created_at ASC`
	photos := make([]models.Photo, 0)
	if err := r.db.SelectContext(ctx, &photos, query, sessionID); err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	return photos, nil
}

// CreateWithMark stores the photo and marks its student photographed in one transaction.
func (r *PhotoRepository) CreateWithMark(ctx context.Context, photo *models.Photo) (err error) {
	if photo.ID == "" {
		photo.ID = uuid.NewString()
	}
	if photo.CreatedAt.IsZero() {
		photo.CreatedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin photo transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const insertPhoto = `INSERT INTO photos (id, session_id, student_id, user_id, filename, size, format, url, width, height, created_at) VALUES (:id, :session_id, :student_id, :user_id, :filename, :size, :format, :url, :width, :height, :created_at)`
	if _, err = tx.NamedExecContext(ctx, insertPhoto, photo); err != nil {
		return fmt.Errorf("create photo: %w", err)
	}
	if _, err = tx.ExecContext(ctx, upsertMark, photo.SessionID, photo.StudentID, models.MarkPhotographed, photo.CreatedAt); err != nil {
		return fmt.Errorf("mark photographed: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit photo: %w", err)
	}
	return nil
}
