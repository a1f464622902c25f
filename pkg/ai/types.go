package ai

import (
	"context"
	"errors"
)

// Prompt is a single-turn request sent to a scoring provider.
type Prompt struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float32
	// JSON asks the provider to constrain its output to a JSON object when the
	// backend supports it.
	JSON bool
}

// Provider describes a text generation backend capable of grading writing.
type Provider interface {
	Generate(ctx context.Context, prompt Prompt) (string, error)
	Name() string
}

// ErrEmptyResponse indicates the provider answered without any text content.
var ErrEmptyResponse = errors.New("provider returned no content")
