package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/darthcode66/Snap-Self/internal/middleware"
	"github.com/darthcode66/Snap-Self/internal/models"
	"github.com/darthcode66/Snap-Self/pkg/response"
)

type dashboardService interface {
	Counts(ctx context.Context, identity *models.Identity) (*models.DashboardCounts, bool, error)
}

// DashboardHandler serves the photographer dashboard.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Counts godoc
// @Summary Dashboard counts
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Counts(c *gin.Context) {
	identity := requireIdentity(c)
	if identity == nil {
		return
	}
	counts, hit, err := h.service.Counts(c.Request.Context(), identity)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.JSON(c, http.StatusOK, counts, middleware.ExtractMeta(c))
}
