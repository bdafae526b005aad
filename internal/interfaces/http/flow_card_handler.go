package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/axion-crm/internal/application/usecase"
)

// FlowCardHandler lectura de flow cards con alcance por rol.
type FlowCardHandler struct {
	uc *usecase.FlowCardUseCase
}

// NewFlowCardHandler construye el handler.
func NewFlowCardHandler(uc *usecase.FlowCardUseCase) *FlowCardHandler {
	return &FlowCardHandler{uc: uc}
}

// List GET /api/flow-cards
func (h *FlowCardHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListVisible(c.Context(), GetPrincipal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/flow-cards/:id. Fuera del alcance responde 404.
func (h *FlowCardHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetVisible(c.Context(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
