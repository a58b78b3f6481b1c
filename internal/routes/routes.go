package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/ipatlas/geotrace/internal/config"
	"github.com/ipatlas/geotrace/internal/handlers"
	"github.com/ipatlas/geotrace/internal/middleware"
	"github.com/ipatlas/geotrace/internal/services"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authService *services.AuthService,
	authHandler *handlers.AuthHandler,
	ipHandler *handlers.IPHandler,
	healthHandler *handlers.HealthHandler,
) {
	app.Get("/health", healthHandler.Check)

	// Login rate limit: 10 req/min per IP
	auth := app.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/login", authHandler.Login)

	// Everything under /ip requires a verified token and a live principal.
	ip := app.Group("/ip", middleware.Protected(cfg), middleware.RequirePrincipal(authService))
	ip.Get("/current", ipHandler.Lookup)
	ip.Post("/lookup", ipHandler.Lookup)
	ip.Get("/history", ipHandler.History)
	ip.Delete("/history", ipHandler.DeleteHistory)
}
