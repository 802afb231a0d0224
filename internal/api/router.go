package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/zafiri/staff-portal/internal/api/handler"
	"github.com/zafiri/staff-portal/internal/api/middleware"
	"github.com/zafiri/staff-portal/internal/core/ports"
)

// Dependencies carries the wired services the router needs.
type Dependencies struct {
	Auth         ports.AuthService
	Registration ports.RegistrationService
	Roster       ports.RosterService

	Redis *redis.Client
	Mongo *mongo.Database

	JWTSecret  string
	SessionTTL time.Duration
	Logger     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes
// registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.SessionTTL)
	dashboardHandler := handler.NewDashboardHandler()
	registrationHandler := handler.NewRegistrationHandler(deps.Registration)
	rosterHandler := handler.NewRosterHandler(deps.Roster)

	session := middleware.Session(deps.JWTSecret, deps.Auth)
	adminOnly := middleware.RBAC("admin")

	// --- Public routes ---
	e.POST("/portal/login", authHandler.Login)

	// --- Session-scoped routes ---
	portal := e.Group("/portal", session)
	portal.POST("/logout", authHandler.Logout)
	portal.GET("/dashboard", dashboardHandler.Get)
	portal.POST("/register", registrationHandler.Register, adminOnly)

	// --- User management (admin only) ---
	users := portal.Group("/users", adminOnly)
	users.GET("", rosterHandler.List)
	users.GET("/stats", rosterHandler.Stats)
	users.POST("/:id/edit", rosterHandler.StartEdit)
	users.POST("/edit/cancel", rosterHandler.CancelEdit)
	users.POST("/edit/save", rosterHandler.SaveEdit)
	users.PATCH("/:id", registrationHandler.Update)
	users.DELETE("/:id", rosterHandler.Delete)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Redis, deps.Mongo)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	return e
}
