package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/darthcode66/Snap-Self/internal/dto"
	"github.com/darthcode66/Snap-Self/internal/models"
	appErrors "github.com/darthcode66/Snap-Self/pkg/errors"
)

type schoolRepository interface {
	ListByPhotographer(ctx context.Context, photographerID string) ([]models.SchoolSummary, error)
	FindByID(ctx context.Context, id string) (*models.School, error)
	Create(ctx context.Context, school *models.School) error
	Update(ctx context.Context, school *models.School) error
	Delete(ctx context.Context, id string) error
}

type userRepository interface {
	Ensure(ctx context.Context, user *models.User) error
}

type ownershipAuthorizer interface {
	Authorize(ctx context.Context, kind models.ResourceKind, id string, identity *models.Identity) error
}

type countsInvalidator interface {
	Invalidate(ctx context.Context, photographerID string)
}

// SchoolService coordinates school operations for the calling photographer.
type SchoolService struct {
	repo      schoolRepository
	users     userRepository
	guard     ownershipAuthorizer
	counts    countsInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSchoolService constructs SchoolService.
func NewSchoolService(repo schoolRepository, users userRepository, guard ownershipAuthorizer, counts countsInvalidator, validate *validator.Validate, logger *zap.Logger) *SchoolService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SchoolService{repo: repo, users: users, guard: guard, counts: counts, validator: validate, logger: logger}
}

// List returns the caller's schools, newest first.
func (s *SchoolService) List(ctx context.Context, identity *models.Identity) ([]models.SchoolSummary, error) {
	if identity == nil {
		return nil, appErrors.ErrUnauthorized
	}
	schools, err := s.repo.ListByPhotographer(ctx, identity.UserID)
	if err != nil {
		s.logger.Error("list schools failed", zap.String("user_id", identity.UserID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schools")
	}
	return schools, nil
}

// Get returns one owned school.
func (s *SchoolService) Get(ctx context.Context, identity *models.Identity, id string) (*models.School, error) {
	if err := s.guard.Authorize(ctx, models.ResourceSchool, id, identity); err != nil {
		return nil, err
	}
	return s.load(ctx, id)
}

// Create registers a school for the caller, mirroring the caller locally first.
func (s *SchoolService) Create(ctx context.Context, identity *models.Identity, req dto.SchoolRequest) (*models.School, error) {
	if identity == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid school payload")
	}

	user := &models.User{ID: identity.UserID, Email: identity.Email, Name: identity.DisplayName(), Role: models.ParseUserRole(string(identity.Role))}
	if err := s.users.Ensure(ctx, user); err != nil {
		s.logger.Error("ensure user failed", zap.String("user_id", identity.UserID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to register photographer")
	}

	school := &models.School{PhotographerID: identity.UserID}
	applySchoolRequest(school, req)
	if err := s.repo.Create(ctx, school); err != nil {
		s.logger.Error("create school failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create school")
	}
	s.invalidate(ctx, identity)
	return school, nil
}

// Update rewrites an owned school's details.
func (s *SchoolService) Update(ctx context.Context, identity *models.Identity, id string, req dto.SchoolRequest) (*models.School, error) {
	if err := s.guard.Authorize(ctx, models.ResourceSchool, id, identity); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid school payload")
	}
	school, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	applySchoolRequest(school, req)
	if err := s.repo.Update(ctx, school); err != nil {
		s.logger.Error("update school failed", zap.String("school_id", id), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update school")
	}
	return school, nil
}

// Delete removes an owned school and everything beneath it.
func (s *SchoolService) Delete(ctx context.Context, identity *models.Identity, id string) error {
	if err := s.guard.Authorize(ctx, models.ResourceSchool, id, identity); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete school failed", zap.String("school_id", id), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete school")
	}
	s.invalidate(ctx, identity)
	return nil
}

func (s *SchoolService) load(ctx context.Context, id string) (*models.School, error) {
	school, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "school not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load school")
	}
	return school, nil
}

func (s *SchoolService) invalidate(ctx context.Context, identity *models.Identity) {
	if s.counts != nil {
		s.counts.Invalidate(ctx, identity.UserID)
	}
}

func applySchoolRequest(school *models.School, req dto.SchoolRequest) {
	school.Name = req.Name
	school.CNPJ = req.CNPJ
	school.Phone = req.Phone
	school.Email = req.Email
	school.Street = req.Street
	school.Number = req.Number
	school.Complement = req.Complement
	school.Neighborhood = req.Neighborhood
	school.City = req.City
	school.State = req.State
	school.ZipCode = req.ZipCode
}
