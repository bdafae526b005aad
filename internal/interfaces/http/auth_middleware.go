package http

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/axion-crm/internal/domain"
	"github.com/jhoicas/axion-crm/internal/domain/access"
	"github.com/jhoicas/axion-crm/internal/domain/entity"
	"github.com/jhoicas/axion-crm/pkg/authstate"
	"github.com/jhoicas/axion-crm/pkg/logger"
)

// Locals keys y cookies de sesión.
const (
	LocalIdentity = "identity"
	SessionCookie = "axion_session"
)

const defaultResolveTimeout = 3 * time.Second

// tokenParser lo implementa *auth.AuthUseCase.
type tokenParser interface {
	ParseToken(token string) (string, error)
}

// principalResolver lo implementa *usecase.ProfileUseCase.
type principalResolver interface {
	Resolve(ctx context.Context, userID string) (*entity.Principal, error)
}

// IdentityMiddleware resuelve la identidad de la petición y la deja en c.Locals.
//
// Token: "Authorization: Bearer <jwt>" o cookie axion_session.
//   - sin token, token inválido o usuario inexistente → identidad anónima
//   - backend no configurado → anónima (se registra)
//   - timeout u otro fallo al resolver → Loading (el gate suspende)
//
// Nunca corta la cadena: decidir qué hacer con la identidad es trabajo del gate.
// Con la identidad resuelta se reescribe la cookie derivada axion_auth_v1.
func IdentityMiddleware(tokens tokenParser, profiles principalResolver, timeout time.Duration, log *logger.Logger) fiber.Handler {
	if timeout <= 0 {
		timeout = defaultResolveTimeout
	}
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx) error {
		id := resolveIdentity(c, tokens, profiles, timeout, log)
		c.Locals(LocalIdentity, id)
		if !id.Loading {
			setAuthFlag(c, id.User != nil)
		}
		return c.Next()
	}
}

func resolveIdentity(c *fiber.Ctx, tokens tokenParser, profiles principalResolver, timeout time.Duration, log *logger.Logger) access.Identity {
	raw := bearerToken(c)
	if raw == "" {
		raw = c.Cookies(SessionCookie)
	}
	if raw == "" {
		return access.Identity{}
	}
	userID, err := tokens.ParseToken(raw)
	if err != nil {
		return access.Identity{}
	}

	ctx, cancel := context.WithTimeout(c.Context(), timeout)
	defer cancel()
	p, err := profiles.Resolve(ctx, userID)
	switch {
	case err == nil:
		return access.Identity{User: p}
	case errors.Is(err, domain.ErrNotConfigured):
		log.Warn().Msg("identidad: backend no configurado, sesión tratada como anónima")
		return access.Identity{}
	default:
		log.Warn().Err(err).Str("user_id", userID).Msg("identidad: resolución pendiente")
		return access.Identity{Loading: true}
	}
}

func bearerToken(c *fiber.Ctx) string {
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// setAuthFlag escribe la bandera derivada. Es legible por el cliente (no HTTPOnly) y no autoriza nada.
func setAuthFlag(c *fiber.Ctx, authenticated bool) {
	c.Cookie(&fiber.Cookie{
		Name:     authstate.Key,
		Value:    authstate.Encode(authstate.State{IsAuthenticated: authenticated}),
		Path:     "/",
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// GetIdentity devuelve la identidad resuelta (después de IdentityMiddleware).
func GetIdentity(c *fiber.Ctx) access.Identity {
	id, _ := c.Locals(LocalIdentity).(access.Identity)
	return id
}

// GetPrincipal devuelve el usuario autenticado o nil.
func GetPrincipal(c *fiber.Ctx) *entity.Principal {
	return GetIdentity(c).User
}

// GetUserID devuelve el ID del usuario autenticado o "".
func GetUserID(c *fiber.Ctx) string {
	if p := GetPrincipal(c); p != nil {
		return p.ID
	}
	return ""
}
