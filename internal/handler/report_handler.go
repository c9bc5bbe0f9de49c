package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/darthcode66/Snap-Self/internal/models"
	"github.com/darthcode66/Snap-Self/internal/service"
	"github.com/darthcode66/Snap-Self/pkg/response"
)

type reportService interface {
	Render(ctx context.Context, identity *models.Identity, sessionID, format string) (*service.Report, error)
}

// ReportHandler exposes report downloads.
type ReportHandler struct {
	reports reportService
}

// NewReportHandler constructs handler.
func NewReportHandler(reports reportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// SessionReport godoc
// @Summary Download a session report
// @Tags Reports
// @Produce text/csv
// @Produce application/pdf
// @Param id path string true "Session ID"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} binary
// @Router /sessions/{id}/report [get]
func (h *ReportHandler) SessionReport(c *gin.Context) {
	identity := requireIdentity(c)
	if identity == nil {
		return
	}
	report, err := h.reports.Render(c.Request.Context(), identity, c.Param("id"), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, report.Filename, report.ContentType, report.Body)
}
