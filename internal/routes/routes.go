// Package routes wires handlers and middleware onto the fiber app.
package routes

import (
	"strings"
	"time"

	"sentinel/internal/handlers"
	"sentinel/internal/middleware"
	"sentinel/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"go.uber.org/zap"
)

// Options configures the route tree. An empty JWTSecret leaves the write
// endpoint open; an empty FrontendDir disables static serving.
type Options struct {
	CORSOrigins []string
	JWTSecret   string
	FrontendDir string
	ExtendLimit int
	Logger      *zap.Logger
}

type Handlers struct {
	Timelock    *handlers.TimelockHandler
	Risk        *handlers.RiskHandler
	Wallet      *handlers.WalletHandler
	Health      *handlers.HealthHandler
	Submissions *handlers.SubmissionHandler
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, h Handlers, opts Options) {
	if opts.ExtendLimit <= 0 {
		opts.ExtendLimit = 10
	}
	origins := strings.Join(opts.CORSOrigins, ",")
	if origins == "" {
		origins = "*"
	}

	api := app.Group("/api", cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,OPTIONS",
	}))

	api.Get("/health", h.Health.HealthCheck)

	extend := []fiber.Handler{limiter.New(limiter.Config{
		Max:        opts.ExtendLimit,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	})}
	audit := []fiber.Handler{}
	if opts.JWTSecret != "" {
		auth := middleware.OperatorAuth(opts.JWTSecret, opts.Logger)
		extend = append(extend, auth, middleware.RequirePermission(models.PermissionTimelockExtend))
		audit = append(audit, auth, middleware.RequirePermission(models.PermissionAuditRead))
	}
	api.Post("/extend_timelock", append(extend, h.Timelock.ExtendTimelock)...)
	api.Get("/submissions", append(audit, h.Submissions.ListSubmissions)...)

	api.Get("/risk-assessment", h.Risk.Assess)
	api.Post("/risk-assessment", h.Risk.Assess)
	api.Post("/simulate-protection", h.Risk.SimulateProtection)

	api.Post("/wallet_data", h.Wallet.GetWalletData)
	api.Post("/mock_wallet", h.Wallet.MockWallet)

	if opts.FrontendDir != "" {
		app.Static("/", opts.FrontendDir, fiber.Static{Index: "index.html"})
	}

	app.Use(func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), "/api/") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
		}
		return c.Status(fiber.StatusNotFound).SendString("Not found")
	})
}
