package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/axion-crm/internal/application/dto"
	"github.com/jhoicas/axion-crm/pkg/phone"
)

// MessagingHandler construye enlaces de mensajería a partir de teléfonos libres.
type MessagingHandler struct {
	linker phone.Linker
}

// NewMessagingHandler construye el handler.
func NewMessagingHandler(linker phone.Linker) *MessagingHandler {
	return &MessagingHandler{linker: linker}
}

// Link godoc
// @Summary  Enlace de mensajería
// @Tags     messaging
// @Produce  json
// @Param    phone    query  string  true   "teléfono en cualquier formato"
// @Param    message  query  string  false  "texto prellenado"
// @Success  200  {object}  dto.MessagingLinkResponse
// @Failure  422  {object}  dto.ErrorResponse
// @Router   /api/messaging/link [get]
func (h *MessagingHandler) Link(c *fiber.Ctx) error {
	digits, ok := phone.NormalizeBR(c.Query("phone"))
	if !ok {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: "INVALID_PHONE", Message: "el teléfono no contiene dígitos",
		})
	}
	return c.JSON(dto.MessagingLinkResponse{
		Phone: digits,
		Link:  h.linker.Link(digits, c.Query("message")),
	})
}
