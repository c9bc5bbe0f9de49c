package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/darthcode66/Snap-Self/internal/models"
	appErrors "github.com/darthcode66/Snap-Self/pkg/errors"
	"github.com/darthcode66/Snap-Self/pkg/export"
)

// Report formats.
const (
	ReportFormatCSV = "csv"
	ReportFormatPDF = "pdf"
)

var reportHeaders = []string{"Código", "Aluno", "Matrícula", "Situação", "Autorização", "Pago"}

var markLabels = map[models.MarkStatus]string{
	models.MarkPhotographed: "Fotografado",
	models.MarkAbsent:       "Ausente",
	models.MarkPending:      "Pendente",
}

type reportRenderer interface {
	ContentType() string
	Render(data export.Dataset, title string) ([]byte, error)
}

// Report is a rendered session report ready to stream.
type Report struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ReportService renders per-student session reports.
type ReportService struct {
	capture   *CaptureService
	renderers map[string]reportRenderer
	logger    *zap.Logger
}

// NewReportService constructs ReportService with CSV and PDF renderers.
func NewReportService(capture *CaptureService, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		capture: capture,
		renderers: map[string]reportRenderer{
			ReportFormatCSV: export.NewCSVExporter(';'),
			ReportFormatPDF: export.NewPDFExporter(),
		},
		logger: logger,
	}
}

// Render builds the report for an owned session in the requested format.
func (s *ReportService) Render(ctx context.Context, identity *models.Identity, sessionID, format string) (*Report, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ReportFormatCSV
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	state, err := s.capture.State(ctx, identity, sessionID)
	if err != nil {
		return nil, err
	}

	title := fmt.Sprintf("Sessão %s - %d/%d fotografados", state.Session.PhotoPrefix, state.Progress.Photographed, state.Progress.Total)
	body, err := renderer.Render(sessionDataset(state), title)
	if err != nil {
		s.logger.Error("render report failed", zap.String("session_id", sessionID), zap.String("format", format), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report")
	}
	return &Report{
		Filename:    fmt.Sprintf("%s.%s", reportBaseName(state.Session), format),
		ContentType: renderer.ContentType(),
		Body:        body,
	}, nil
}

func sessionDataset(state *CaptureState) export.Dataset {
	rows := make([]map[string]string, 0, len(state.Entries))
	for _, entry := range state.Entries {
		rows = append(rows, map[string]string{
			"Código":      entry.Code,
			"Aluno":       entry.Student.Name,
			"Matrícula":   entry.Student.Registration(),
			"Situação":    markLabels[entry.Status],
			"Autorização": yesNo(entry.Student.HasAuthorization),
			"Pago":        yesNo(entry.Student.HasPaid),
		})
	}
	return export.Dataset{Headers: reportHeaders, Rows: rows}
}

func reportBaseName(session models.PhotoSession) string {
	prefix := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == '"' || r == ' ' {
			return '_'
		}
		return r
	}, session.PhotoPrefix)
	if prefix == "" {
		prefix = "sessao"
	}
	return prefix + "_" + session.CreatedAt.UTC().Format("20060102")
}

func yesNo(v bool) string {
	if v {
		return "Sim"
	}
	return "Não"
}
