package handlers

import (
	"io"
	"net/http"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"storefront/internal/metrics"
	"storefront/internal/middleware"
	"storefront/internal/services"
)

// AppConfig holds what NewApp needs to wire the HTTP surface.
type AppConfig struct {
	Products *services.ProductService
	Carts    *services.CartService

	// Health is mounted on /health when set.
	Health http.Handler
	// AccessLog receives request log lines. Defaults to stdout.
	AccessLog io.Writer
}

// NewApp builds the Fiber app with every route registered.
func NewApp(cfg AppConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "storefront",
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
	})

	accessLog := cfg.AccessLog
	if accessLog == nil {
		accessLog = os.Stdout
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger(accessLog))
	app.Use(metrics.Middleware())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to the Products & Carts API",
		})
	})
	if cfg.Health != nil {
		app.Get("/health", adaptor.HTTPHandler(cfg.Health))
	}
	app.Get("/metrics", metrics.Handler())

	api := app.Group("/api")
	NewProductHandler(cfg.Products).RegisterRoutes(api)
	NewCartHandler(cfg.Carts).RegisterRoutes(api)

	app.Use(NotFound)
	return app
}
