package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/axion-crm/internal/application/analytics"
	"github.com/jhoicas/axion-crm/internal/application/audit"
	"github.com/jhoicas/axion-crm/internal/application/auth"
	"github.com/jhoicas/axion-crm/internal/application/usecase"
	"github.com/jhoicas/axion-crm/internal/domain"
	"github.com/jhoicas/axion-crm/internal/domain/repository"
	infrapdf "github.com/jhoicas/axion-crm/internal/infrastructure/pdf"
	"github.com/jhoicas/axion-crm/internal/infrastructure/postgres"
	"github.com/jhoicas/axion-crm/internal/infrastructure/querycache"
	httpRouter "github.com/jhoicas/axion-crm/internal/interfaces/http"
	"github.com/jhoicas/axion-crm/pkg/config"
	"github.com/jhoicas/axion-crm/pkg/logger"
	"github.com/jhoicas/axion-crm/pkg/phone"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Sin base configurada la aplicación arranca igual: las rutas que la necesitan responden 503.
	var (
		userRepo   repository.UserProfileRepository
		collabRepo repository.CollaboratorRepository
		cardRepo   repository.FlowCardRepository
		auditRepo  repository.AuditLogRepository
		txRunner   usecase.AdminTxRunner
	)
	pool, err := postgres.Connect(ctx, cfg.DB)
	switch {
	case errors.Is(err, domain.ErrNotConfigured):
		log.Warn().Msg("base de datos no configurada, modo sin backend")
	case err != nil:
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	default:
		userRepo = postgres.NewUserProfileRepository(pool)
		collabRepo = postgres.NewCollaboratorRepository(pool)
		cardRepo = postgres.NewFlowCardRepository(pool)
		auditRepo = postgres.NewAuditLogRepository(pool)
		txRunner = postgres.NewTxRunner(pool)
	}
	defer postgres.CloseShared()

	var store querycache.Store = querycache.NewMemoryStore()
	if cfg.Cache.RedisAddr != "" {
		rs, err := querycache.NewRedisStore(ctx, cfg.Cache.RedisAddr)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, caché en memoria")
		} else {
			store = rs
			defer rs.Close()
		}
	}
	cache := querycache.New(store, log.Module("querycache"), querycache.Options{
		TTL:               cfg.Cache.TTL,
		BackgroundRefresh: cfg.Cache.BackgroundRefresh,
		RefreshLimit:      cfg.Cache.RefreshLimit,
		MaxRegistered:     cfg.Cache.MaxRegistered,
	})

	recorder := audit.NewRecorder(auditRepo, log, cfg.Audit.Timeout)
	linker := phone.NewLinker(cfg.Messaging.BaseURL)

	adminUserUC := usecase.NewAdminUserUseCase(userRepo, cache, recorder)
	if txRunner != nil {
		adminUserUC.WithTx(txRunner)
	}
	collaboratorUC := usecase.NewCollaboratorUseCase(collabRepo, cache, recorder)
	flowCardUC := usecase.NewFlowCardUseCase(cardRepo, linker)
	profileUC := usecase.NewProfileUseCase(userRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(flowCardUC, userRepo, collabRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, recorder)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Module("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Axion CRM API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		_, dbErr := postgres.Shared()
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": cfg.App.Name,
			"backend": dbErr == nil,
		})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ProfileUC:      profileUC,
		AdminUserUC:    adminUserUC,
		CollaboratorUC: collaboratorUC,
		FlowCardUC:     flowCardUC,
		DashboardUC:    dashboardUC,
		DashboardPDF:   infrapdf.NewMarotoPDFGenerator(cfg.App.Name),
		Linker:         linker,
		Log:            log,
		SessionTTL:     time.Duration(cfg.JWT.Expiration) * time.Minute,
		SecureCookies:  cfg.App.Env == "production",
		ResolveTimeout: 3 * time.Second,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	cache.Wait()
	recorder.Wait()

	log.Info().Msg("aplicación detenida")
}
