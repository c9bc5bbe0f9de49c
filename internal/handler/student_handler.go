package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/darthcode66/Snap-Self/internal/dto"
	"github.com/darthcode66/Snap-Self/internal/middleware"
	"github.com/darthcode66/Snap-Self/internal/models"
	appErrors "github.com/darthcode66/Snap-Self/pkg/errors"
	"github.com/darthcode66/Snap-Self/pkg/response"
)

type studentService interface {
	Create(ctx context.Context, identity *models.Identity, req dto.CreateStudentRequest) (*models.Student, error)
	Import(ctx context.Context, identity *models.Identity, req dto.ImportStudentsRequest) (*dto.ImportStudentsResponse, error)
	PreviewFile(ctx context.Context, identity *models.Identity, opts dto.ImportFileOptions, raw []byte) (*dto.ImportPreviewResponse, error)
	ImportFile(ctx context.Context, identity *models.Identity, opts dto.ImportFileOptions, raw []byte) (*dto.ImportStudentsResponse, error)
	Delete(ctx context.Context, identity *models.Identity, id string) error
}

// StudentHandler exposes roster endpoints.
type StudentHandler struct {
	students     studentService
	maxFileBytes int64
}

// NewStudentHandler constructs StudentHandler. maxFileBytes bounds roster file uploads.
func NewStudentHandler(students studentService, maxFileBytes int64) *StudentHandler {
	return &StudentHandler{students: students, maxFileBytes: maxFileBytes}
}

// Create godoc
// @Summary Add a student to a class
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body dto.CreateStudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Router /students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	identity := requireIdentity(c)
	if identity == nil {
		return
	}
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	student, err := h.students.Create(c.Request.Context(), identity, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetAuditResourceID(c, student.ID)
	response.Created(c, student)
}

// Import godoc
// @Summary Import students into a class
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body dto.ImportStudentsRequest true "Import payload"
// @Success 201 {object} response.Envelope
// @Router /students/import [post]
func (h *StudentHandler) Import(c *gin.Context) {
	identity := requireIdentity(c)
	if identity == nil {
		return
	}
	var req dto.ImportStudentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	result, err := h.students.Import(c.Request.Context(), identity, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetAuditResourceID(c, req.ClassID)
	response.Created(c, result)
}

// PreviewFile godoc
// @Summary Preview a roster file without importing
// @Tags Students
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV roster"
// @Param encoding formData string false "utf-8, iso-8859-1, windows-1252 or utf-16"
// @Param nameColumn formData string false "Header of the name column"
// @Param classId formData string false "Class ID"
// @Success 200 {object} response.Envelope
// @Router /students/import/preview [post]
func (h *StudentHandler) PreviewFile(c *gin.Context) {
	identity := requireIdentity(c)
	if identity == nil {
		return
	}
	opts, raw, err := h.readRosterFile(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	preview, err := h.students.PreviewFile(c.Request.Context(), identity, opts, raw)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, preview)
}

// ImportFile godoc
// @Summary Import students from a roster file
// @Tags Students
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV roster"
// @Param classId formData string true "Class ID"
// @Param encoding formData string false "utf-8, iso-8859-1, windows-1252 or utf-16"
// @Param nameColumn formData string false "Header of the name column"
// @Success 201 {object} response.Envelope
// @Router /students/import/file [post]
func (h *StudentHandler) ImportFile(c *gin.Context) {
	identity := requireIdentity(c)
	if identity == nil {
		return
	}
	opts, raw, err := h.readRosterFile(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.students.ImportFile(c.Request.Context(), identity, opts, raw)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetAuditResourceID(c, opts.ClassID)
	response.Created(c, result)
}

// Delete godoc
// @Summary Remove a student
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	identity := requireIdentity(c)
	if identity == nil {
		return
	}
	if err := h.students.Delete(c.Request.Context(), identity, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.DeleteResponse{Success: true})
}

func (h *StudentHandler) readRosterFile(c *gin.Context) (dto.ImportFileOptions, []byte, error) {
	var opts dto.ImportFileOptions
	if err := c.ShouldBind(&opts); err != nil {
		return opts, nil, invalidPayload(err)
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return opts, nil, appErrors.Clone(appErrors.ErrValidation, "file is required")
	}
	if h.maxFileBytes > 0 && fileHeader.Size > h.maxFileBytes {
		return opts, nil, appErrors.Clone(appErrors.ErrPayloadTooLarge, fmt.Sprintf("file exceeds %d bytes", h.maxFileBytes))
	}
	src, err := fileHeader.Open()
	if err != nil {
		return opts, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open file")
	}
	defer src.Close()

	raw, err := io.ReadAll(src)
	if err != nil {
		return opts, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read file")
	}
	return opts, raw, nil
}
