package web

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"

	"github.com/spritelang/spritec/pkg/blocks"
	"github.com/spritelang/spritec/pkg/engine"
	"github.com/spritelang/spritec/pkg/persistence"
)

// NewApp assembles the fiber application with all API routes.
func NewApp(catalog blocks.Catalog, runner *engine.Engine, store persistence.Persistence) *fiber.App {
	validate := validator.New(validator.WithRequiredStructEnabled())
	handlers := NewAPIHandlers(catalog, runner, store, validate)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Spritec API")
	})

	app.Post("/compile", handlers.Compile)
	app.Post("/run", handlers.Run)
	app.Get("/catalog", handlers.GetCatalog)

	r := app.Group("/runs")
	r.Get("/", handlers.GetRuns)
	r.Get("/:id", handlers.GetRun)
	r.Delete("/:id", handlers.DeleteRun)

	app.Get("/health", handlers.HealthCheck)

	return app
}
