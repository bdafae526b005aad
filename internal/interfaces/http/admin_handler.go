package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/axion-crm/internal/application/dto"
	"github.com/jhoicas/axion-crm/internal/application/usecase"
)

// AdminHandler endpoints del panel de administración (usuarios y colaboradores).
// Todas las rutas van detrás de RequireRoles(admin).
type AdminHandler struct {
	users   *usecase.AdminUserUseCase
	collabs *usecase.CollaboratorUseCase
}

// NewAdminHandler construye el handler.
func NewAdminHandler(users *usecase.AdminUserUseCase, collabs *usecase.CollaboratorUseCase) *AdminHandler {
	return &AdminHandler{users: users, collabs: collabs}
}

// ListUsers godoc
// @Summary  Listar usuarios
// @Tags     admin
// @Produce  json
// @Param    limit   query  int  false  "máx 100"
// @Param    offset  query  int  false  "desplazamiento"
// @Success  200  {object}  dto.UserListResponse
// @Router   /api/admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de página inválidos"})
	}
	out, err := h.users.List(c.Context(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateUser godoc
// @Summary  Crear usuario
// @Tags     admin
// @Accept   json
// @Produce  json
// @Param    body  body  dto.CreateUserRequest  true  "email, password, name, role"
// @Success  201  {object}  dto.UserResponse
// @Failure  400  {object}  dto.ErrorResponse
// @Failure  409  {object}  dto.ErrorResponse
// @Router   /api/admin/users [post]
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.users.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateUser PATCH /api/admin/users/:id
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.users.Update(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteUser DELETE /api/admin/users/:id
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.users.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListCollaborators GET /api/admin/collaborators
func (h *AdminHandler) ListCollaborators(c *fiber.Ctx) error {
	out, err := h.collabs.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpsertCollaborator PUT /api/admin/collaborators (ID en el cuerpo; vacío crea).
func (h *AdminHandler) UpsertCollaborator(c *fiber.Ctx) error {
	var in dto.UpsertCollaboratorRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.collabs.UpsertSettings(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
