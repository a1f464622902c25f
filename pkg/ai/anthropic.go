package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int
	Timeout   time.Duration
	Logger    zerolog.Logger
}

// AnthropicProvider implements Provider using the Anthropic Messages API.
type AnthropicProvider struct {
	client *anthropic.Client
	cfg    AnthropicConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewAnthropicProvider constructs a new provider.
func NewAnthropicProvider(cfg AnthropicConfig) (*AnthropicProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "claude-haiku-4-5-20251001"
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 2048
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	client := anthropic.NewClient(opts...)

	return &AnthropicProvider{
		client: &client,
		cfg:    cfg,
		tracer: otel.Tracer("github.com/noah-isme/writerpro-api/pkg/ai/anthropic"),
		logger: cfg.Logger.With().Str("component", "anthropic_provider").Logger(),
	}, nil
}

// Name identifies the provider in persisted analyses.
func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

// Generate sends the prompt to Anthropic and returns the first text block.
func (p *AnthropicProvider) Generate(parent context.Context, prompt Prompt) (string, error) {
	ctx, span := p.tracer.Start(parent, "anthropic.generate", trace.WithAttributes(
		attribute.String("model", p.cfg.Model),
	))
	defer span.End()

	ctx, cancel := withTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	maxTokens := p.cfg.MaxTokens
	if prompt.MaxTokens > 0 {
		maxTokens = prompt.MaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.cfg.Model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt.User)),
		},
	}
	if prompt.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: prompt.System}}
	}
	if prompt.Temperature > 0 {
		params.Temperature = anthropic.Float(float64(prompt.Temperature))
	}

	start := time.Now()
	msg, err := p.client.Messages.New(ctx, params)
	observeDuration(p.Name(), p.cfg.Model, time.Since(start))
	if err != nil {
		recordFailure(span, p.Name(), p.cfg.Model, err)
		return "", fmt.Errorf("anthropic generate: %w", err)
	}

	for _, block := range msg.Content {
		if block.Type == "text" && strings.TrimSpace(block.Text) != "" {
			p.logger.Debug().
				Int64("input_tokens", msg.Usage.InputTokens).
				Int64("output_tokens", msg.Usage.OutputTokens).
				Msg("anthropic completion received")
			return strings.TrimSpace(block.Text), nil
		}
	}

	recordFailure(span, p.Name(), p.cfg.Model, ErrEmptyResponse)
	return "", ErrEmptyResponse
}
