package ai

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestUsableKeyRejectsPlaceholders(t *testing.T) {
	require.False(t, UsableKey(""))
	require.False(t, UsableKey("   "))
	require.False(t, UsableKey("your_gemini_api_key_here"))
	require.False(t, UsableKey("YOUR_OPENAI_KEY"))
	require.True(t, UsableKey("AIzaSyExampleKey"))
}

func TestNewProviderWithoutCredentialReturnsNil(t *testing.T) {
	for _, name := range []string{"", "none", "gemini", "openai", "anthropic"} {
		provider, err := NewProvider(context.Background(), Config{Provider: name, GeminiAPIKey: "your_gemini_api_key_here"}, zerolog.Nop())
		require.NoError(t, err, name)
		require.Nil(t, provider, name)
	}
}

func TestNewProviderRejectsUnknownBackend(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{Provider: "cohere"}, zerolog.Nop())
	require.Error(t, err)
}

func TestNewProviderBuildsOpenAI(t *testing.T) {
	provider, err := NewProvider(context.Background(), Config{Provider: "OpenAI", OpenAIAPIKey: "sk-test"}, zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, provider)
	require.Equal(t, "openai", provider.Name())
}

func TestNewProviderBuildsGeminiAndAnthropic(t *testing.T) {
	gemini, err := NewProvider(context.Background(), Config{Provider: "gemini", GeminiAPIKey: "AIzaSyExampleKey"}, zerolog.Nop())
	require.NoError(t, err)
	require.IsType(t, &GeminiProvider{}, gemini)
	require.Equal(t, "gemini", gemini.Name())

	anthropic, err := NewProvider(context.Background(), Config{Provider: " Anthropic ", AnthropicAPIKey: "sk-ant-test", AnthropicModel: "claude-sonnet-4-5"}, zerolog.Nop())
	require.NoError(t, err)
	require.IsType(t, &AnthropicProvider{}, anthropic)
	require.Equal(t, "claude-sonnet-4-5", anthropic.(*AnthropicProvider).cfg.Model)
}
