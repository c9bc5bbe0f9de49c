package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"mime"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/darthcode66/Snap-Self/internal/models"
	appErrors "github.com/darthcode66/Snap-Self/pkg/errors"
	"github.com/darthcode66/Snap-Self/pkg/storage"
)

const defaultPhotoFormat = "jpg"

type photoRepository interface {
	ListBySession(ctx context.Context, sessionID string) ([]models.Photo, error)
	CreateWithMark(ctx context.Context, photo *models.Photo) error
}

type sessionFinder interface {
	FindByID(ctx context.Context, id string) (*models.PhotoSession, error)
}

type studentFinder interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
}

// PhotoUpload describes an incoming photo file.
type PhotoUpload struct {
	StudentID   string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// PhotoService stores session photos and their metadata.
type PhotoService struct {
	repo     photoRepository
	sessions sessionFinder
	students studentFinder
	store    storage.PhotoStore
	guard    ownershipAuthorizer
	metrics  *MetricsService
	maxBytes int64
	logger   *zap.Logger
}

// NewPhotoService constructs PhotoService. maxBytes <= 0 disables the size limit.
func NewPhotoService(repo photoRepository, sessions sessionFinder, students studentFinder, store storage.PhotoStore, guard ownershipAuthorizer, metrics *MetricsService, maxBytes int64, logger *zap.Logger) *PhotoService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PhotoService{repo: repo, sessions: sessions, students: students, store: store, guard: guard, metrics: metrics, maxBytes: maxBytes, logger: logger}
}

// List returns a session's photos in upload order.
func (s *PhotoService) List(ctx context.Context, identity *models.Identity, sessionID string) ([]models.Photo, error) {
	if err := s.guard.Authorize(ctx, models.ResourceSession, sessionID, identity); err != nil {
		return nil, err
	}
	photos, err := s.repo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list photos")
	}
	return photos, nil
}

// Upload stores the file and records it against a student of the session's class.
// The student is marked photographed in the same transaction as the photo row.
func (s *PhotoService) Upload(ctx context.Context, identity *models.Identity, sessionID string, upload PhotoUpload) (*models.Photo, error) {
	if identity == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if upload.Body == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file is required")
	}
	upload.StudentID = strings.TrimSpace(upload.StudentID)
	if upload.StudentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "studentId is required")
	}
	if s.maxBytes > 0 && upload.Size > s.maxBytes {
		return nil, appErrors.Clone(appErrors.ErrPayloadTooLarge, fmt.Sprintf("file exceeds %d bytes", s.maxBytes))
	}
	if err := s.guard.Authorize(ctx, models.ResourceSession, sessionID, identity); err != nil {
		return nil, err
	}

	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}
	if session.Status == models.SessionStatusCompleted {
		return nil, appErrors.Clone(appErrors.ErrFinalized, "session already completed")
	}
	student, err := s.students.FindByID(ctx, upload.StudentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if student.ClassID != session.ClassID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	format := PhotoFormat(upload.ContentType)
	key := fmt.Sprintf("sessions/%s/students/%s/%s.%s", sessionID, student.ID, uuid.NewString(), format)
	url, err := s.store.Put(ctx, key, upload.Body)
	if err != nil {
		s.logger.Error("store photo failed", zap.String("session_id", sessionID), zap.String("key", key), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store photo")
	}

	photo := &models.Photo{
		SessionID: sessionID,
		StudentID: student.ID,
		UserID:    identity.UserID,
		Filename:  upload.Filename,
		Size:      upload.Size,
		Format:    format,
		URL:       url,
	}
	if err := s.repo.CreateWithMark(ctx, photo); err != nil {
		if rmErr := s.store.Remove(ctx, key); rmErr != nil {
			s.logger.Warn("remove orphaned photo failed", zap.String("key", key), zap.Error(rmErr))
		}
		s.logger.Error("record photo failed", zap.String("session_id", sessionID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record photo")
	}
	s.metrics.PhotoUploaded(upload.Size)
	s.metrics.MarkRecorded(string(models.MarkPhotographed))
	return photo, nil
}

// PhotoFormat derives the stored format from a media type: the subtype before any
// "+" suffix, lowercased, or jpg when nothing usable is present.
func PhotoFormat(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}
	_, subtype, ok := strings.Cut(mediaType, "/")
	if !ok {
		return defaultPhotoFormat
	}
	subtype, _, _ = strings.Cut(subtype, "+")
	subtype = strings.TrimSpace(subtype)
	if subtype == "" {
		return defaultPhotoFormat
	}
	return subtype
}
