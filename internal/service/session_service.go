package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/darthcode66/Snap-Self/internal/dto"
	"github.com/darthcode66/Snap-Self/internal/models"
	"github.com/darthcode66/Snap-Self/internal/roster"
	appErrors "github.com/darthcode66/Snap-Self/pkg/errors"
)

type sessionRepository interface {
	List(ctx context.Context, filter models.SessionFilter) ([]models.SessionListItem, error)
	FindByID(ctx context.Context, id string) (*models.PhotoSession, error)
	Create(ctx context.Context, session *models.PhotoSession) error
	Update(ctx context.Context, id string, changes models.SessionChanges, now time.Time) error
	Delete(ctx context.Context, id string) error
}

type classFinder interface {
	FindByID(ctx context.Context, id string) (*models.Class, error)
}

type photoLister interface {
	ListBySession(ctx context.Context, sessionID string) ([]models.Photo, error)
}

// SessionService manages capture sessions.
type SessionService struct {
	repo      sessionRepository
	classes   classFinder
	schools   schoolFinder
	students  rosterRepository
	photos    photoLister
	guard     ownershipAuthorizer
	counts    countsInvalidator
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// SessionServiceParams groups SessionService dependencies.
type SessionServiceParams struct {
	Sessions  sessionRepository
	Classes   classFinder
	Schools   schoolFinder
	Students  rosterRepository
	Photos    photoLister
	Guard     ownershipAuthorizer
	Counts    countsInvalidator
	Metrics   *MetricsService
	Validator *validator.Validate
	Logger    *zap.Logger
}

// NewSessionService constructs SessionService.
func NewSessionService(params SessionServiceParams) *SessionService {
	validate := params.Validator
	if validate == nil {
		validate = validator.New()
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		repo:      params.Sessions,
		classes:   params.Classes,
		schools:   params.Schools,
		students:  params.Students,
		photos:    params.Photos,
		guard:     params.Guard,
		counts:    params.Counts,
		metrics:   params.Metrics,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// List returns the caller's sessions, optionally narrowed to one owned class.
func (s *SessionService) List(ctx context.Context, identity *models.Identity, classID string) ([]models.SessionListItem, error) {
	if identity == nil {
		return nil, appErrors.ErrUnauthorized
	}
	classID = strings.TrimSpace(classID)
	if classID != "" {
		if err := s.guard.Authorize(ctx, models.ResourceClass, classID, identity); err != nil {
			return nil, err
		}
	}
	sessions, err := s.repo.List(ctx, models.SessionFilter{PhotographerID: identity.UserID, ClassID: classID})
	if err != nil {
		s.logger.Error("list sessions failed", zap.String("user_id", identity.UserID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list sessions")
	}
	return sessions, nil
}

// Create snapshots the class roster size and opens an in-progress session.
func (s *SessionService) Create(ctx context.Context, identity *models.Identity, req dto.CreateSessionRequest) (*models.PhotoSession, error) {
	if identity == nil {
		return nil, appErrors.ErrUnauthorized
	}
	req.PhotoPrefix = strings.TrimSpace(req.PhotoPrefix)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session payload")
	}
	order, ok := roster.ParseSortOrder(string(req.SortOrder))
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid sortOrder")
	}
	if err := s.guard.Authorize(ctx, models.ResourceClass, req.ClassID, identity); err != nil {
		return nil, err
	}

	students, err := s.students.ListByClass(ctx, req.ClassID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students")
	}

	start := 1
	if req.StartNumber != nil {
		start = *req.StartNumber
	}
	session := &models.PhotoSession{
		ClassID:        req.ClassID,
		PhotographerID: identity.UserID,
		PhotoPrefix:    req.PhotoPrefix,
		StartNumber:    start,
		SortOrder:      order,
		TotalStudents:  len(students),
		Pending:        len(students),
		Status:         models.SessionStatusInProgress,
	}
	if err := s.repo.Create(ctx, session); err != nil {
		s.logger.Error("create session failed", zap.String("class_id", req.ClassID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create session")
	}
	s.metrics.SessionCreated()
	if s.counts != nil {
		s.counts.Invalidate(ctx, identity.UserID)
	}
	return session, nil
}

// Get returns a session with its class, school, ordered roster and photos.
func (s *SessionService) Get(ctx context.Context, identity *models.Identity, id string) (*models.SessionDetail, error) {
	session, err := s.authorized(ctx, identity, id)
	if err != nil {
		return nil, err
	}
	class, err := s.classes.FindByID(ctx, session.ClassID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}
	school, err := s.schools.FindByID(ctx, class.SchoolID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load school")
	}
	students, err := s.roster(ctx, session)
	if err != nil {
		return nil, err
	}
	photos, err := s.photos.ListBySession(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load photos")
	}
	return &models.SessionDetail{PhotoSession: *session, Class: class, School: school, Students: students, Photos: photos}, nil
}

// Update applies a sparse change set. Only fields present in the request are written;
// a completed session cannot move back to another status.
func (s *SessionService) Update(ctx context.Context, identity *models.Identity, id string, req dto.UpdateSessionRequest) (*models.PhotoSession, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session payload")
	}
	current, err := s.authorized(ctx, identity, id)
	if err != nil {
		return nil, err
	}
	changes := req.Changes()
	if changes.Status != nil && current.Status == models.SessionStatusCompleted {
		if *changes.Status != models.SessionStatusCompleted {
			return nil, appErrors.Clone(appErrors.ErrFinalized, "session already completed")
		}
		// keeps the original completed_at
		changes.Status = nil
	}
	if changes.Empty() {
		return current, nil
	}

	if err := s.repo.Update(ctx, id, changes, s.now().UTC()); err != nil {
		s.logger.Error("update session failed", zap.String("session_id", id), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update session")
	}
	if changes.Status != nil && *changes.Status == models.SessionStatusCompleted && current.Status != models.SessionStatusCompleted {
		s.metrics.SessionCompleted()
	}
	return s.load(ctx, id)
}

// Delete removes a session together with its photos and marks.
func (s *SessionService) Delete(ctx context.Context, identity *models.Identity, id string) error {
	if err := s.guard.Authorize(ctx, models.ResourceSession, id, identity); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete session failed", zap.String("session_id", id), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete session")
	}
	if s.counts != nil {
		s.counts.Invalidate(ctx, identity.UserID)
	}
	return nil
}

func (s *SessionService) authorized(ctx context.Context, identity *models.Identity, id string) (*models.PhotoSession, error) {
	if err := s.guard.Authorize(ctx, models.ResourceSession, id, identity); err != nil {
		return nil, err
	}
	return s.load(ctx, id)
}

func (s *SessionService) load(ctx context.Context, id string) (*models.PhotoSession, error) {
	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, sessionLoadError(err)
	}
	return session, nil
}

func (s *SessionService) roster(ctx context.Context, session *models.PhotoSession) ([]models.Student, error) {
	students, err := s.students.ListByClass(ctx, session.ClassID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students")
	}
	return roster.Order(students, session.SortOrder), nil
}
