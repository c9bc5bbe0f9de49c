package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/darthcode66/Snap-Self/internal/dto"
	"github.com/darthcode66/Snap-Self/internal/middleware"
	"github.com/darthcode66/Snap-Self/internal/models"
	"github.com/darthcode66/Snap-Self/pkg/response"
)

type classService interface {
	ListBySchool(ctx context.Context, identity *models.Identity, schoolID string) ([]models.ClassSummary, error)
	Get(ctx context.Context, identity *models.Identity, id string) (*models.ClassDetail, error)
	Create(ctx context.Context, identity *models.Identity, req dto.CreateClassRequest) (*models.Class, error)
	Delete(ctx context.Context, identity *models.Identity, id string) error
}

// ClassHandler exposes class endpoints.
type ClassHandler struct {
	classes classService
}

// NewClassHandler constructs ClassHandler.
func NewClassHandler(classes classService) *ClassHandler {
	return &ClassHandler{classes: classes}
}

// List godoc
// @Summary List classes of a school
// @Tags Classes
// @Produce json
// @Param schoolId query string true "School ID"
// @Success 200 {object} response.Envelope
// @Router /classes [get]
func (h *ClassHandler) List(c *gin.Context) {
	identity := requireIdentity(c)
	if identity == nil {
		return
	}
	classes, err := h.classes.ListBySchool(c.Request.Context(), identity, c.Query("schoolId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes)
}

// Get godoc
// @Summary Get class with roster
// @Tags Classes
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /classes/{id} [get]
func (h *ClassHandler) Get(c *gin.Context) {
	identity := requireIdentity(c)
	if identity == nil {
		return
	}
	class, err := h.classes.Get(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, class)
}

// Create godoc
// @Summary Create class
// @Tags Classes
// @Accept json
// @Produce json
// @Param payload body dto.CreateClassRequest true "Class payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /classes [post]
func (h *ClassHandler) Create(c *gin.Context) {
	identity := requireIdentity(c)
	if identity == nil {
		return
	}
	var req dto.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	class, err := h.classes.Create(c.Request.Context(), identity, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetAuditResourceID(c, class.ID)
	response.Created(c, class)
}

// Delete godoc
// @Summary Delete class
// @Tags Classes
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /classes/{id} [delete]
func (h *ClassHandler) Delete(c *gin.Context) {
	identity := requireIdentity(c)
	if identity == nil {
		return
	}
	if err := h.classes.Delete(c.Request.Context(), identity, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.DeleteResponse{Success: true})
}
