package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shoporbit/console-gateway/internal/api/handler"
	"github.com/shoporbit/console-gateway/internal/api/middleware"
	"github.com/shoporbit/console-gateway/internal/core/domain"
	"github.com/shoporbit/console-gateway/internal/core/ports"
	"github.com/shoporbit/console-gateway/internal/infrastructure/httpclient"
)

// Dependencies carries everything the router needs wired in.
type Dependencies struct {
	Sessions  ports.SessionService
	Notifier  ports.Notifier
	Upstream  *httpclient.Client
	Mongo     *mongo.Database
	Redis     *redis.Client
	JWTSecret string
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log, deps.Notifier)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("console"))
	e.Use(middleware.Session(deps.JWTSecret))

	auth := middleware.Auth(deps.JWTSecret)
	guestGate := middleware.Gate(deps.Sessions, domain.RouteGuestOnly)
	protectedGate := middleware.Gate(deps.Sessions, domain.RouteProtected)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Sessions, deps.Notifier)
	notificationHandler := handler.NewNotificationHandler(deps.Notifier)
	proxyHandler := handler.NewProxyHandler(deps.Upstream, deps.Log)

	// --- Auth routes ---
	// Login and register are guest-only: a verified session is bounced to
	// its dashboard, an unverified one to the two-factor step. The
	// two-factor entry itself is exempt from the gate — it is the gate's
	// own redirect target for unverified sessions.
	e.POST("/auth/login", authHandler.Login, guestGate)
	e.POST("/auth/register", authHandler.Register, guestGate)
	e.POST("/auth/verify-2fa", authHandler.VerifyTwoFactor, auth)
	e.POST("/auth/logout", authHandler.Logout, auth)
	e.GET("/auth/session", authHandler.Session)

	// --- Notifications ---
	e.GET("/notifications", notificationHandler.Active, auth)
	e.POST("/notifications", notificationHandler.Push, auth)
	e.DELETE("/notifications/:id", notificationHandler.Dismiss, auth)

	// --- Role-scoped commerce API proxies ---
	// The gate runs first: unauthorized navigation is a redirect decision,
	// never a token error, so an anonymous request must reach the gate and
	// be bounced to the landing page. Strict auth after it only sees
	// requests the gate already allowed.
	e.Any("/api/admin/*", proxyHandler.Forward, protectedGate, auth, middleware.RBAC(string(domain.RoleAdmin)))
	e.Any("/api/vendor/*", proxyHandler.Forward, protectedGate, auth, middleware.RBAC(string(domain.RoleVendor)))
	e.Any("/api/csr/*", proxyHandler.Forward, protectedGate, auth, middleware.RBAC(string(domain.RoleCSR)))

	// --- Public storefront shell ---
	e.Any("/api/*", proxyHandler.ForwardPublic)
	e.GET("/sanctum/csrf-cookie", proxyHandler.ForwardCSRFCookie)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
