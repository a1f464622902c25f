package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/writerpro-api/internal/config"
	"github.com/noah-isme/writerpro-api/internal/handler"
	"github.com/noah-isme/writerpro-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AnalysisHandler   *handler.AnalysisHandler
	PlacementHandler  *handler.PlacementHandler
	CompletionHandler *handler.CompletionHandler
	ProfileHandler    *handler.ProfileHandler
	ExerciseHandler   *handler.ExerciseHandler
	JWTMiddleware     fiber.Handler
	AnalyzeLimiter    fiber.Handler
	ScoringProvider   string
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg, deps.ScoringProvider))

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AnalysisHandler != nil {
		var guards []fiber.Handler
		if deps.AnalyzeLimiter != nil {
			guards = append(guards, deps.AnalyzeLimiter)
		}
		deps.AnalysisHandler.Register(api.Group("/analysis", jwtMiddleware), guards...)
	}

	if deps.PlacementHandler != nil {
		deps.PlacementHandler.Register(api.Group("/assessment", jwtMiddleware))
	}

	if deps.CompletionHandler != nil {
		deps.CompletionHandler.Register(api.Group("/completed", jwtMiddleware))
	}

	if deps.ProfileHandler != nil {
		deps.ProfileHandler.Register(api.Group("/profile", jwtMiddleware))
	}

	if deps.ExerciseHandler != nil {
		deps.ExerciseHandler.Register(api.Group("/exercises", jwtMiddleware))
	}
}
