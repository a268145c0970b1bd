package server

import (
	"github.com/beetlebugorg/gars/internal/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
)

// SetupRoutes registers the REST and GraphQL APIs and the metrics endpoint.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	app.Use(requestid.New())
	app.Use(RequestIDLogMiddleware())
	app.Use(AccessLogMiddleware())

	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	app.Use(ETagMiddleware())
	app.Use(CachingMiddleware())

	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	d := deps.requestTimeout()
	v1 := app.Group("/v1")
	v1.Get("/gars/:coordinate", timeout.NewWithContext(CoordinateHandler(deps), d))
	v1.Get("/point", timeout.NewWithContext(PointHandler(deps), d))
	v1.Get("/labels", timeout.NewWithContext(LabelsHandler(deps), d))
	v1.Get("/tiles/:z/:x/:y", timeout.NewWithContext(TileHandler(deps), d))
	v1.Get("/tiles/:z/:x/:y/hit", timeout.NewWithContext(TileHitHandler(deps), d))

	app.Post("/graphql", timeout.NewWithContext(GraphQLHandler(deps), d))
}
