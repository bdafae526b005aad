package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/axion-crm/internal/application/dto"
	"github.com/jhoicas/axion-crm/internal/domain"
	"github.com/jhoicas/axion-crm/internal/domain/access"
	"github.com/jhoicas/axion-crm/internal/domain/entity"
)

// RequireRoles aplica el gate a rutas de API. Debe usarse DESPUÉS de IdentityMiddleware.
// Sin roles basta con tener sesión.
//
// Comportamiento:
//   - 503 Service Unavailable → identidad en resolución (Retry-After: 1).
//   - 401 Unauthorized        → sin sesión; redirect apunta al login.
//   - 403 Forbidden           → rol no permitido; redirect apunta al inicio del rol.
func RequireRoles(roles ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		d := access.Guard(GetIdentity(c), c.Path(), roles...)
		switch d.Outcome {
		case access.Suspend:
			return writeError(c, domain.ErrSessionPending)
		case access.RedirectToLogin:
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: "UNAUTHORIZED", Message: "sesión requerida", Redirect: loginURL(d.From),
			})
		case access.RedirectToRoleHome:
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code: "FORBIDDEN", Message: "rol sin acceso a este recurso", Redirect: d.Target,
			})
		}
		return c.Next()
	}
}

// RequirePage aplica el gate a rutas de página: redirige en lugar de responder error.
// Mientras la identidad se resuelve no se renderiza la vista (503).
func RequirePage(roles ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		d := access.Guard(GetIdentity(c), c.Path(), roles...)
		switch d.Outcome {
		case access.Suspend:
			c.Set(fiber.HeaderRetryAfter, retryAfter)
			return c.SendStatus(fiber.StatusServiceUnavailable)
		case access.RedirectToLogin:
			return c.Redirect(loginURL(d.From), fiber.StatusFound)
		case access.RedirectToRoleHome:
			return c.Redirect(d.Target, fiber.StatusFound)
		}
		return c.Next()
	}
}

const retryAfter = "1"

func loginURL(from string) string {
	if from == "" {
		return access.LoginPath
	}
	return access.LoginPath + "?from=" + url.QueryEscape(from)
}
