package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/axion-crm/internal/application/analytics"
	"github.com/jhoicas/axion-crm/internal/application/dto"
)

// dashboardPDF lo implementa *pdf.MarotoPDFGenerator.
type dashboardPDF interface {
	GenerateDashboardPDF(ctx context.Context, s *dto.DashboardSummaryDTO) ([]byte, error)
}

// DashboardHandler maneja los endpoints del dashboard.
type DashboardHandler struct {
	uc  *appanalytics.DashboardUseCase
	pdf dashboardPDF
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, pdf dashboardPDF) *DashboardHandler {
	return &DashboardHandler{uc: uc, pdf: pdf}
}

// GetSummary devuelve el resumen de las tarjetas visibles del principal.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (total_cards, total_value, stages[], date_label;
// users y collaborators solo para admin).
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context(), GetPrincipal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}

// GetReportPDF GET /api/dashboard/report.pdf
func (h *DashboardHandler) GetReportPDF(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context(), GetPrincipal(c))
	if err != nil {
		return writeError(c, err)
	}
	doc, err := h.pdf.GenerateDashboardPDF(c.Context(), summary)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="dashboard.pdf"`)
	return c.Send(doc)
}
