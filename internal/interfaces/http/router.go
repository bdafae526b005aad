package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/axion-crm/internal/application/analytics"
	"github.com/jhoicas/axion-crm/internal/application/auth"
	"github.com/jhoicas/axion-crm/internal/application/usecase"
	"github.com/jhoicas/axion-crm/internal/domain/entity"
	"github.com/jhoicas/axion-crm/pkg/logger"
	"github.com/jhoicas/axion-crm/pkg/phone"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	ProfileUC      *usecase.ProfileUseCase
	AdminUserUC    *usecase.AdminUserUseCase
	CollaboratorUC *usecase.CollaboratorUseCase
	FlowCardUC     *usecase.FlowCardUseCase
	DashboardUC    *appanalytics.DashboardUseCase
	DashboardPDF   dashboardPDF
	Linker         phone.Linker
	Log            *logger.Logger

	SessionTTL     time.Duration
	SecureCookies  bool
	ResolveTimeout time.Duration
}

// Router registra páginas y rutas de la API.
//
//	/login                         público
//	/                              cualquier sesión
//	/vendedor, /producao, /admin   por rol (RequirePage)
//	/api/auth/login                público
//	/api/...                       RequireRoles
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(IdentityMiddleware(deps.AuthUC, deps.ProfileUC, deps.ResolveTimeout, deps.Log))

	admin, seller, production := entity.RoleAdmin, entity.RoleSeller, entity.RoleProduction

	// Páginas
	pages := NewPageHandler()
	app.Get("/login", pages.Login)
	app.Get("/", RequirePage(), pages.View("home"))
	app.Get("/perfil", RequirePage(), pages.View("profile"))
	app.Get("/vendedor", RequirePage(seller, admin), pages.View("seller-home"))
	app.Get("/producao", RequirePage(production, admin), pages.View("production-home"))
	app.Get("/admin", RequirePage(admin), pages.View("admin-home"))
	app.Get("/admin/usuarios", RequirePage(admin), pages.View("admin-users"))
	app.Get("/admin/colaboradores", RequirePage(admin), pages.View("admin-collaborators"))

	api := app.Group("/api")

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, deps.ProfileUC, deps.SessionTTL, deps.SecureCookies)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/logout", authHandler.Logout)
	api.Get("/auth/me", RequireRoles(), authHandler.Me)

	// Mensajería (cualquier sesión)
	messaging := NewMessagingHandler(deps.Linker)
	api.Get("/messaging/link", RequireRoles(), messaging.Link)

	// Flow cards: el alcance por rol lo aplica el caso de uso
	cards := api.Group("/flow-cards", RequireRoles(admin, seller, production))
	cardHandler := NewFlowCardHandler(deps.FlowCardUC)
	cards.Get("/", cardHandler.List)
	cards.Get("/:id", cardHandler.GetByID)

	// Dashboard
	dash := api.Group("/dashboard", RequireRoles(admin, seller, production))
	dashHandler := NewDashboardHandler(deps.DashboardUC, deps.DashboardPDF)
	dash.Get("/summary", dashHandler.GetSummary)
	dash.Get("/report.pdf", dashHandler.GetReportPDF)

	// Administración
	adminGroup := api.Group("/admin", RequireRoles(admin))
	adminHandler := NewAdminHandler(deps.AdminUserUC, deps.CollaboratorUC)
	adminGroup.Get("/users", adminHandler.ListUsers)
	adminGroup.Post("/users", adminHandler.CreateUser)
	adminGroup.Patch("/users/:id", adminHandler.UpdateUser)
	adminGroup.Delete("/users/:id", adminHandler.DeleteUser)
	adminGroup.Get("/collaborators", adminHandler.ListCollaborators)
	adminGroup.Put("/collaborators", adminHandler.UpsertCollaborator)
}
