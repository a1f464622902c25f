package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"
)

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int
	Timeout   time.Duration
	Logger    zerolog.Logger
}

// GeminiProvider implements Provider using the Google Gen AI SDK.
type GeminiProvider struct {
	client *genai.Client
	cfg    GeminiConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewGeminiProvider creates a new Gemini provider.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 4096
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		cfg:    cfg,
		tracer: otel.Tracer("github.com/noah-isme/writerpro-api/pkg/ai/gemini"),
		logger: cfg.Logger.With().Str("component", "gemini_provider").Logger(),
	}, nil
}

// Name identifies the provider in persisted analyses.
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// Generate sends the prompt to Gemini and returns the raw text response.
func (p *GeminiProvider) Generate(parent context.Context, prompt Prompt) (string, error) {
	ctx, span := p.tracer.Start(parent, "gemini.generate", trace.WithAttributes(
		attribute.String("model", p.cfg.Model),
	))
	defer span.End()

	ctx, cancel := withTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	maxTokens := p.cfg.MaxTokens
	if prompt.MaxTokens > 0 {
		maxTokens = prompt.MaxTokens
	}

	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxTokens),
	}
	if prompt.Temperature > 0 {
		temperature := prompt.Temperature
		config.Temperature = &temperature
	}
	if prompt.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: prompt.System}},
		}
	}
	if prompt.JSON {
		config.ResponseMIMEType = "application/json"
	}

	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: prompt.User}},
	}}

	start := time.Now()
	result, err := p.client.Models.GenerateContent(ctx, p.cfg.Model, contents, config)
	observeDuration(p.Name(), p.cfg.Model, time.Since(start))
	if err != nil {
		recordFailure(span, p.Name(), p.cfg.Model, err)
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	content := strings.TrimSpace(result.Text())
	if content == "" {
		recordFailure(span, p.Name(), p.cfg.Model, ErrEmptyResponse)
		return "", ErrEmptyResponse
	}

	if result.UsageMetadata != nil {
		p.logger.Debug().
			Int32("prompt_tokens", result.UsageMetadata.PromptTokenCount).
			Int32("candidate_tokens", result.UsageMetadata.CandidatesTokenCount).
			Msg("gemini completion received")
	}

	return content, nil
}
