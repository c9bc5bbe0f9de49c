package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/darthcode66/Snap-Self/internal/dto"
	"github.com/darthcode66/Snap-Self/internal/models"
	"github.com/darthcode66/Snap-Self/internal/repository"
	"github.com/darthcode66/Snap-Self/internal/roster"
	"github.com/darthcode66/Snap-Self/pkg/database"
	appErrors "github.com/darthcode66/Snap-Self/pkg/errors"
)

type classRepository interface {
	ListBySchool(ctx context.Context, schoolID string) ([]models.ClassSummary, error)
	FindByID(ctx context.Context, id string) (*models.Class, error)
	ExistsByIdentity(ctx context.Context, identity repository.ClassIdentity) (bool, error)
	Create(ctx context.Context, class *models.Class) error
	Delete(ctx context.Context, id string) error
}

type rosterRepository interface {
	ListByClass(ctx context.Context, classID string) ([]models.Student, error)
}

type schoolFinder interface {
	FindByID(ctx context.Context, id string) (*models.School, error)
}

// ClassService coordinates class operations.
type ClassService struct {
	repo      classRepository
	students  rosterRepository
	schools   schoolFinder
	guard     ownershipAuthorizer
	counts    countsInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassService constructs ClassService.
func NewClassService(repo classRepository, students rosterRepository, schools schoolFinder, guard ownershipAuthorizer, counts countsInvalidator, validate *validator.Validate, logger *zap.Logger) *ClassService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassService{repo: repo, students: students, schools: schools, guard: guard, counts: counts, validator: validate, logger: logger}
}

// ListBySchool returns an owned school's classes ordered by grade and section.
func (s *ClassService) ListBySchool(ctx context.Context, identity *models.Identity, schoolID string) ([]models.ClassSummary, error) {
	if schoolID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "schoolId is required")
	}
	if err := s.guard.Authorize(ctx, models.ResourceSchool, schoolID, identity); err != nil {
		return nil, err
	}
	classes, err := s.repo.ListBySchool(ctx, schoolID)
	if err != nil {
		s.logger.Error("list classes failed", zap.String("school_id", schoolID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classes")
	}
	return classes, nil
}

// Get returns a class with its school and roster ordered by sort key.
func (s *ClassService) Get(ctx context.Context, identity *models.Identity, id string) (*models.ClassDetail, error) {
	if err := s.guard.Authorize(ctx, models.ResourceClass, id, identity); err != nil {
		return nil, err
	}
	class, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}
	school, err := s.schools.FindByID(ctx, class.SchoolID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load school")
	}
	students, err := s.students.ListByClass(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students")
	}
	return &models.ClassDetail{Class: *class, School: school, Students: roster.Order(students, models.SortOrderAlphabetical)}, nil
}

// Create adds a class under an owned school. Repeating the identity tuple is a conflict.
func (s *ClassService) Create(ctx context.Context, identity *models.Identity, req dto.CreateClassRequest) (*models.Class, error) {
	if identity == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class payload")
	}
	if err := s.guard.Authorize(ctx, models.ResourceSchool, req.SchoolID, identity); err != nil {
		return nil, err
	}

	key := repository.ClassIdentity{SchoolID: req.SchoolID, Grade: req.Grade, Section: req.Section, Year: req.Year}
	exists, err := s.repo.ExistsByIdentity(ctx, key)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check class identity")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "class already exists for this school, grade, section and year")
	}

	class := &models.Class{Name: req.Name, Grade: req.Grade, Section: req.Section, Year: req.Year, SchoolID: req.SchoolID}
	if err := s.repo.Create(ctx, class); err != nil {
		if database.IsUniqueViolation(err, "") {
			return nil, appErrors.Clone(appErrors.ErrConflict, "class already exists for this school, grade, section and year")
		}
		s.logger.Error("create class failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create class")
	}
	s.invalidate(ctx, identity)
	return class, nil
}

// Delete removes an owned class with its students and sessions.
func (s *ClassService) Delete(ctx context.Context, identity *models.Identity, id string) error {
	if err := s.guard.Authorize(ctx, models.ResourceClass, id, identity); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete class failed", zap.String("class_id", id), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete class")
	}
	s.invalidate(ctx, identity)
	return nil
}

func (s *ClassService) invalidate(ctx context.Context, identity *models.Identity) {
	if s.counts != nil {
		s.counts.Invalidate(ctx, identity.UserID)
	}
}
