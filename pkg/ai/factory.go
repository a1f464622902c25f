package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config selects and configures the scoring provider.
type Config struct {
	Provider        string
	GeminiAPIKey    string
	GeminiModel     string
	OpenAIAPIKey    string
	OpenAIModel     string
	AnthropicAPIKey string
	AnthropicModel  string
	Timeout         time.Duration
}

// NewProvider builds the configured provider. It returns a nil Provider and a
// nil error when no usable credential is configured, so callers fall back to
// heuristic scoring.
func NewProvider(ctx context.Context, cfg Config, logger zerolog.Logger) (Provider, error) {
	name := strings.ToLower(strings.TrimSpace(cfg.Provider))

	switch name {
	case "", "none", "heuristic":
		return nil, nil
	case "gemini":
		if !UsableKey(cfg.GeminiAPIKey) {
			logger.Warn().Str("provider", name).Msg("gemini api key missing or placeholder, heuristic scoring only")
			return nil, nil
		}
		return NewGeminiProvider(ctx, GeminiConfig{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			Timeout: cfg.Timeout,
			Logger:  logger,
		})
	case "openai":
		if !UsableKey(cfg.OpenAIAPIKey) {
			logger.Warn().Str("provider", name).Msg("openai api key missing or placeholder, heuristic scoring only")
			return nil, nil
		}
		return NewOpenAIProvider(OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			Timeout: cfg.Timeout,
			Logger:  logger,
		})
	case "anthropic":
		if !UsableKey(cfg.AnthropicAPIKey) {
			logger.Warn().Str("provider", name).Msg("anthropic api key missing or placeholder, heuristic scoring only")
			return nil, nil
		}
		return NewAnthropicProvider(AnthropicConfig{
			APIKey:  cfg.AnthropicAPIKey,
			Model:   cfg.AnthropicModel,
			Timeout: cfg.Timeout,
			Logger:  logger,
		})
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.Provider)
	}
}

// UsableKey reports whether key looks like a real credential rather than an
// empty value or a template placeholder such as "your_gemini_api_key_here".
func UsableKey(key string) bool {
	key = strings.TrimSpace(key)
	if key == "" {
		return false
	}
	lower := strings.ToLower(key)
	return !strings.HasPrefix(lower, "your_") && !strings.HasSuffix(lower, "_here") && lower != "changeme"
}
