package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/darthcode66/Snap-Self/internal/capture"
	"github.com/darthcode66/Snap-Self/internal/dto"
	"github.com/darthcode66/Snap-Self/internal/models"
	"github.com/darthcode66/Snap-Self/internal/service"
	"github.com/darthcode66/Snap-Self/pkg/response"
)

type captureService interface {
	State(ctx context.Context, identity *models.Identity, sessionID string) (*service.CaptureState, error)
	Mark(ctx context.Context, identity *models.Identity, sessionID string, req dto.MarkStudentRequest) (*service.CaptureState, error)
	Summary(ctx context.Context, identity *models.Identity, sessionID string) (*capture.Summary, error)
}

// CaptureHandler exposes the capture workflow endpoints.
type CaptureHandler struct {
	capture captureService
}

// NewCaptureHandler constructs CaptureHandler.
func NewCaptureHandler(capture captureService) *CaptureHandler {
	return &CaptureHandler{capture: capture}
}

// State godoc
// @Summary Capture progress with roster statuses and photo codes
// @Tags Capture
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/capture [get]
func (h *CaptureHandler) State(c *gin.Context) {
	identity := requireIdentity(c)
	if identity == nil {
		return
	}
	state, err := h.capture.State(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, state)
}

// Mark godoc
// @Summary Record a student's capture status
// @Tags Capture
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.MarkStudentRequest true "Mark payload"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/marks [put]
func (h *CaptureHandler) Mark(c *gin.Context) {
	identity := requireIdentity(c)
	if identity == nil {
		return
	}
	var req dto.MarkStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	state, err := h.capture.Mark(c.Request.Context(), identity, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, state)
}

// Summary godoc
// @Summary Session completion summary
// @Tags Capture
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/summary [get]
func (h *CaptureHandler) Summary(c *gin.Context) {
	identity := requireIdentity(c)
	if identity == nil {
		return
	}
	summary, err := h.capture.Summary(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary)
}
