package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/darthcode66/Snap-Self/internal/dto"
	"github.com/darthcode66/Snap-Self/internal/models"
	"github.com/darthcode66/Snap-Self/internal/roster"
	appErrors "github.com/darthcode66/Snap-Self/pkg/errors"
)

type studentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	CreateBatch(ctx context.Context, students []models.Student) error
	Delete(ctx context.Context, id string) error
}

// StudentService manages class rosters.
type StudentService struct {
	repo      studentRepository
	guard     ownershipAuthorizer
	counts    countsInvalidator
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs StudentService.
func NewStudentService(repo studentRepository, guard ownershipAuthorizer, counts countsInvalidator, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, guard: guard, counts: counts, metrics: metrics, validator: validate, logger: logger}
}

// Create adds one student to an owned class.
func (s *StudentService) Create(ctx context.Context, identity *models.Identity, req dto.CreateStudentRequest) (*models.Student, error) {
	if identity == nil {
		return nil, appErrors.ErrUnauthorized
	}
	req.Name = roster.NormalizeName(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	if err := s.guard.Authorize(ctx, models.ResourceClass, req.ClassID, identity); err != nil {
		return nil, err
	}

	student := &models.Student{
		Name:             req.Name,
		SortName:         roster.SortName(req.Name),
		HasAuthorization: req.HasAuthorization,
		HasPaid:          req.HasPaid,
		ClassID:          req.ClassID,
	}
	if req.RegistrationNumber != nil {
		if reg := strings.TrimSpace(*req.RegistrationNumber); reg != "" {
			student.RegistrationNumber = &reg
		}
	}
	if err := s.repo.Create(ctx, student); err != nil {
		s.logger.Error("create student failed", zap.String("class_id", req.ClassID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	s.invalidate(ctx, identity)
	return student, nil
}

// Import inserts a batch of students into an owned class in one transaction.
// Rows whose name is blank are skipped.
func (s *StudentService) Import(ctx context.Context, identity *models.Identity, req dto.ImportStudentsRequest) (*dto.ImportStudentsResponse, error) {
	if identity == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid import payload")
	}
	if err := s.guard.Authorize(ctx, models.ResourceClass, req.ClassID, identity); err != nil {
		return nil, err
	}

	students := make([]models.Student, 0, len(req.Students))
	for _, row := range req.Students {
		name := roster.NormalizeName(row.Name)
		if name == "" {
			continue
		}
		students = append(students, models.Student{
			Name:     name,
			SortName: roster.SortName(name),
			ClassID:  req.ClassID,
		})
	}

	if len(students) > 0 {
		if err := s.repo.CreateBatch(ctx, students); err != nil {
			s.logger.Error("import students failed", zap.String("class_id", req.ClassID), zap.Int("rows", len(students)), zap.Error(err))
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to import students")
		}
		s.metrics.StudentsImported(len(students))
		s.invalidate(ctx, identity)
	}

	return &dto.ImportStudentsResponse{Success: true, Count: len(students), Students: students}, nil
}

// PreviewFile parses a roster file and returns what an import would create.
func (s *StudentService) PreviewFile(ctx context.Context, identity *models.Identity, opts dto.ImportFileOptions, raw []byte) (*dto.ImportPreviewResponse, error) {
	if identity == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if opts.ClassID != "" {
		if err := s.guard.Authorize(ctx, models.ResourceClass, opts.ClassID, identity); err != nil {
			return nil, err
		}
	}
	table, err := roster.Parse(raw, opts.Encoding)
	if err != nil {
		return nil, rosterError(err)
	}
	candidates, err := roster.Extract(table, opts.NameColumn)
	if err != nil {
		return nil, rosterError(err)
	}

	preview := &dto.ImportPreviewResponse{
		Columns:    table.Columns,
		NameColumn: table.Columns[table.ColumnIndex(opts.NameColumn)],
		Delimiter:  table.Delimiter,
		Encoding:   table.Encoding,
		RowCount:   len(table.Rows),
		Students:   make([]dto.ImportStudent, 0, len(candidates)),
	}
	for _, c := range candidates {
		preview.Students = append(preview.Students, dto.ImportStudent{Name: c.Name})
	}
	return preview, nil
}

// ImportFile parses a roster file and imports its names into an owned class.
func (s *StudentService) ImportFile(ctx context.Context, identity *models.Identity, opts dto.ImportFileOptions, raw []byte) (*dto.ImportStudentsResponse, error) {
	if opts.ClassID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "classId is required")
	}
	preview, err := s.PreviewFile(ctx, identity, opts, raw)
	if err != nil {
		return nil, err
	}
	if len(preview.Students) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file has no student names")
	}
	return s.Import(ctx, identity, dto.ImportStudentsRequest{ClassID: opts.ClassID, Students: preview.Students})
}

// Delete removes a student from an owned class.
func (s *StudentService) Delete(ctx context.Context, identity *models.Identity, id string) error {
	if err := s.guard.Authorize(ctx, models.ResourceStudent, id, identity); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete student failed", zap.String("student_id", id), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
	}
	s.invalidate(ctx, identity)
	return nil
}

func (s *StudentService) invalidate(ctx context.Context, identity *models.Identity) {
	if s.counts != nil {
		s.counts.Invalidate(ctx, identity.UserID)
	}
}

func rosterError(err error) error {
	switch {
	case errors.Is(err, roster.ErrUnsupportedEncoding),
		errors.Is(err, roster.ErrEmptyFile),
		errors.Is(err, roster.ErrUnknownColumn):
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	default:
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unreadable roster file")
	}
}
