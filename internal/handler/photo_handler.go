package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/darthcode66/Snap-Self/internal/middleware"
	"github.com/darthcode66/Snap-Self/internal/models"
	"github.com/darthcode66/Snap-Self/internal/service"
	appErrors "github.com/darthcode66/Snap-Self/pkg/errors"
	"github.com/darthcode66/Snap-Self/pkg/response"
)

type photoService interface {
	List(ctx context.Context, identity *models.Identity, sessionID string) ([]models.Photo, error)
	Upload(ctx context.Context, identity *models.Identity, sessionID string, upload service.PhotoUpload) (*models.Photo, error)
}

// PhotoHandler exposes session photo endpoints.
type PhotoHandler struct {
	photos photoService
}

// NewPhotoHandler constructs PhotoHandler.
func NewPhotoHandler(photos photoService) *PhotoHandler {
	return &PhotoHandler{photos: photos}
}

// List godoc
// @Summary List session photos
// @Tags Photos
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/photos [get]
func (h *PhotoHandler) List(c *gin.Context) {
	identity := requireIdentity(c)
	if identity == nil {
		return
	}
	photos, err := h.photos.List(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, photos)
}

// Upload godoc
// @Summary Upload a student photo
// @Tags Photos
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Session ID"
// @Param studentId formData string true "Student ID"
// @Param file formData file true "Photo"
// @Success 201 {object} response.Envelope
// @Failure 413 {object} response.Envelope
// @Router /sessions/{id}/photos [post]
func (h *PhotoHandler) Upload(c *gin.Context) {
	identity := requireIdentity(c)
	if identity == nil {
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file is required"))
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open file"))
		return
	}
	defer src.Close()

	photo, err := h.photos.Upload(c.Request.Context(), identity, c.Param("id"), service.PhotoUpload{
		StudentID:   c.PostForm("studentId"),
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Body:        src,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetAuditResourceID(c, photo.ID)
	response.Created(c, photo)
}
