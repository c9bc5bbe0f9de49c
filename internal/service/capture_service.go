package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/darthcode66/Snap-Self/internal/capture"
	"github.com/darthcode66/Snap-Self/internal/dto"
	"github.com/darthcode66/Snap-Self/internal/models"
	"github.com/darthcode66/Snap-Self/internal/roster"
	appErrors "github.com/darthcode66/Snap-Self/pkg/errors"
)

type markRepository interface {
	ListBySession(ctx context.Context, sessionID string) ([]models.SessionMark, error)
	Set(ctx context.Context, sessionID, studentID string, status models.MarkStatus) error
}

// CaptureState is the reconstructed capture screen for a session.
type CaptureState struct {
	Session  models.PhotoSession `json:"session"`
	Cursor   int                 `json:"cursor"`
	Finished bool                `json:"finished"`
	Current  *capture.Entry      `json:"current,omitempty"`
	Progress capture.Progress    `json:"progress"`
	Entries  []capture.Entry     `json:"entries"`
}

type captureSessionStore interface {
	FindByID(ctx context.Context, id string) (*models.PhotoSession, error)
	Update(ctx context.Context, id string, changes models.SessionChanges, now time.Time) error
}

// CaptureService rebuilds capture progress from persisted marks.
type CaptureService struct {
	sessions  captureSessionStore
	students  rosterRepository
	marks     markRepository
	guard     ownershipAuthorizer
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewCaptureService constructs CaptureService.
func NewCaptureService(sessions captureSessionStore, students rosterRepository, marks markRepository, guard ownershipAuthorizer, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *CaptureService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CaptureService{sessions: sessions, students: students, marks: marks, guard: guard, metrics: metrics, validator: validate, logger: logger, now: time.Now}
}

// State returns the roster with statuses, photo codes and the session cursor.
func (s *CaptureService) State(ctx context.Context, identity *models.Identity, sessionID string) (*CaptureState, error) {
	if err := s.guard.Authorize(ctx, models.ResourceSession, sessionID, identity); err != nil {
		return nil, err
	}
	session, workflow, err := s.restore(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return buildCaptureState(session, workflow), nil
}

// Mark records one student's status and stores the advanced cursor so a later
// State resumes on the next pending student. Session counters are left to the
// client, which persists them through a session update on pause or completion.
func (s *CaptureService) Mark(ctx context.Context, identity *models.Identity, sessionID string, req dto.MarkStudentRequest) (*CaptureState, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid mark payload")
	}
	if err := s.guard.Authorize(ctx, models.ResourceSession, sessionID, identity); err != nil {
		return nil, err
	}
	session, workflow, err := s.restore(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == models.SessionStatusCompleted {
		return nil, appErrors.Clone(appErrors.ErrFinalized, "session already completed")
	}
	cursor := workflow.Cursor()
	if err := workflow.Mark(req.StudentID, req.Status); err != nil {
		if errors.Is(err, capture.ErrUnknownStudent) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark student")
	}
	if err := s.marks.Set(ctx, sessionID, req.StudentID, req.Status); err != nil {
		s.logger.Error("persist mark failed", zap.String("session_id", sessionID), zap.String("student_id", req.StudentID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save mark")
	}
	if next := workflow.Cursor(); next != cursor {
		if err := s.sessions.Update(ctx, sessionID, models.SessionChanges{CurrentStudentIndex: &next}, s.now().UTC()); err != nil {
			s.logger.Error("persist cursor failed", zap.String("session_id", sessionID), zap.Int("cursor", next), zap.Error(err))
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save cursor")
		}
		session.CurrentStudentIndex = next
	}
	s.metrics.MarkRecorded(string(req.Status))
	return buildCaptureState(session, workflow), nil
}

// Summary reports completion figures from the session counters.
func (s *CaptureService) Summary(ctx context.Context, identity *models.Identity, sessionID string) (*capture.Summary, error) {
	if err := s.guard.Authorize(ctx, models.ResourceSession, sessionID, identity); err != nil {
		return nil, err
	}
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, sessionLoadError(err)
	}
	summary := capture.Summarize(*session)
	return &summary, nil
}

func (s *CaptureService) restore(ctx context.Context, sessionID string) (*models.PhotoSession, *capture.Workflow, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, nil, sessionLoadError(err)
	}
	students, err := s.students.ListByClass(ctx, session.ClassID)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students")
	}
	marks, err := s.marks.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load marks")
	}
	ordered := roster.Order(students, session.SortOrder)
	return session, capture.Restore(ordered, marks, session.CurrentStudentIndex), nil
}

func buildCaptureState(session *models.PhotoSession, workflow *capture.Workflow) *CaptureState {
	state := &CaptureState{
		Session:  *session,
		Cursor:   workflow.Cursor(),
		Finished: workflow.Finished(),
		Progress: workflow.Progress(),
		Entries:  workflow.Entries(session.PhotoPrefix, session.StartNumber),
	}
	if !state.Finished {
		current := state.Entries[state.Cursor]
		state.Current = &current
	}
	return state
}

func sessionLoadError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, "session not found")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
}
