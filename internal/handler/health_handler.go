package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/writerpro-api/internal/config"
	"github.com/noah-isme/writerpro-api/internal/utils"
)

// HealthResponse represents the payload returned by the health endpoint.
type HealthResponse struct {
	Status          string    `json:"status"`
	Timestamp       time.Time `json:"timestamp"`
	Service         string    `json:"service"`
	Environment     string    `json:"environment"`
	ScoringProvider string    `json:"scoringProvider"`
}

// HealthCheck reports service health and which scoring provider is active.
// provider is "heuristic" when no external provider is configured.
func HealthCheck(cfg config.Config, provider string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := HealthResponse{
			Status:          "ok",
			Timestamp:       time.Now().UTC(),
			Service:         cfg.AppName,
			Environment:     cfg.AppEnv,
			ScoringProvider: provider,
		}

		return utils.SendSuccess(c, "service healthy", payload)
	}
}
