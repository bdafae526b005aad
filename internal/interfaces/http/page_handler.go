package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/axion-crm/internal/application/dto"
	"github.com/jhoicas/axion-crm/internal/domain/access"
)

// PageHandler responde las rutas de página ya filtradas por RequirePage.
// El render es del cliente: aquí solo se indica qué vista corresponde.
type PageHandler struct{}

// NewPageHandler construye el handler.
func NewPageHandler() *PageHandler { return &PageHandler{} }

// View devuelve un handler que informa la vista name.
func (h *PageHandler) View(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out := dto.ViewResponse{View: name, Path: c.Path()}
		if p := GetPrincipal(c); p != nil {
			out.Role = string(p.Role)
		}
		return c.JSON(out)
	}
}

// Login es público. Con sesión activa redirige al inicio del rol.
func (h *PageHandler) Login(c *fiber.Ctx) error {
	id := GetIdentity(c)
	if id.Loading {
		c.Set(fiber.HeaderRetryAfter, retryAfter)
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}
	if id.User != nil {
		return c.Redirect(access.HomeFor(id.User.Role), fiber.StatusFound)
	}
	return c.JSON(dto.ViewResponse{View: "login", Path: access.LoginPath, From: c.Query("from")})
}
