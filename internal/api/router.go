package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	"github.com/stepwise/process-tracker/internal/api/handler"
	"github.com/stepwise/process-tracker/internal/api/middleware"
	"github.com/stepwise/process-tracker/internal/core/ports"
	"github.com/stepwise/process-tracker/internal/infrastructure/db/sqlite"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Store     *sqlite.Store
	Redis     *redis.Client // nil when the cache is disabled
	Users     ports.UserRepository
	Sync      ports.SyncService
	Query     ports.QueryService
	Auth      ports.AuthService
	JWTSecret string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("tracker"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	userHandler := handler.NewUserHandler(d.Users, d.Query)
	processHandler := handler.NewProcessHandler(d.Sync, d.Query)
	deletedHandler := handler.NewDeletedHandler(d.Sync, d.Query)
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Store, d.Redis)

	// --- Unprotected surface ---
	e.GET("/ping", healthHandler.Ping)
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Data routes ---
	// JWT is enforced only when a secret is configured; the sync core itself
	// never checks the caller against the owner it writes for.
	users := e.Group("/users")
	processes := e.Group("/processes")
	if d.JWTSecret != "" {
		authMiddleware := middleware.Auth(d.JWTSecret)
		users.Use(authMiddleware)
		processes.Use(authMiddleware)
	}

	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.GET("/:username", userHandler.Get)

	processes.GET("/last_updates", processHandler.LastUpdates)
	processes.GET("/deleted", deletedHandler.List)
	processes.POST("/deleted", deletedHandler.DeleteBatch)
	processes.GET("/deleted/:id", deletedHandler.IsDeleted)
	processes.POST("", processHandler.Create)
	processes.POST("/batch", processHandler.CreateBatch)
	processes.PUT("", processHandler.Update)
	processes.GET("/:id", processHandler.Get)
	processes.DELETE("/:id", processHandler.Delete)
	processes.GET("/:id/steps", processHandler.GetSteps)
	processes.PUT("/:id/steps", processHandler.UpdateSteps)
	processes.DELETE("/steps", processHandler.DeleteSteps)

	return e
}
