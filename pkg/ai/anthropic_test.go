package ai

import (
	"context"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func anthropicMessage(content []map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"id":            "msg_01",
		"type":          "message",
		"role":          "assistant",
		"model":         "claude-haiku-4-5-20251001",
		"content":       content,
		"stop_reason":   "end_turn",
		"stop_sequence": nil,
		"usage":         map[string]interface{}{"input_tokens": 20, "output_tokens": 8},
	}
}

func newTestAnthropic(t *testing.T, server *recordingServer) *AnthropicProvider {
	t.Helper()
	provider, err := NewAnthropicProvider(AnthropicConfig{APIKey: "sk-ant-test", BaseURL: server.URL, Logger: zerolog.Nop()})
	require.NoError(t, err)
	return provider
}

func TestAnthropicProviderReturnsFirstTextBlock(t *testing.T) {
	server := newRecordingServer(t, http.StatusOK, anthropicMessage([]map[string]interface{}{
		{"type": "text", "text": "   "},
		{"type": "text", "text": " {\"overallScore\": 58} "},
	}))
	provider := newTestAnthropic(t, server)

	content, err := provider.Generate(context.Background(), Prompt{System: "grade", User: "essay", MaxTokens: 900})
	require.NoError(t, err)
	require.Equal(t, `{"overallScore": 58}`, content)

	requests := server.Requests()
	require.Len(t, requests, 1)
	require.Equal(t, "/v1/messages", requests[0].Path)
	require.Equal(t, "sk-ant-test", requests[0].Header.Get("X-Api-Key"))
	require.Equal(t, "claude-haiku-4-5-20251001", requests[0].Body["model"])
	require.Equal(t, float64(900), requests[0].Body["max_tokens"])

	system, ok := requests[0].Body["system"].([]interface{})
	require.True(t, ok)
	require.Len(t, system, 1)
}

func TestAnthropicProviderEmptyContent(t *testing.T) {
	server := newRecordingServer(t, http.StatusOK, anthropicMessage([]map[string]interface{}{}))
	provider := newTestAnthropic(t, server)

	_, err := provider.Generate(context.Background(), Prompt{User: "essay"})
	require.ErrorIs(t, err, ErrEmptyResponse)
}

func TestAnthropicProviderSurfacesAPIErrors(t *testing.T) {
	server := newRecordingServer(t, http.StatusBadRequest, map[string]interface{}{
		"type":  "error",
		"error": map[string]interface{}{"type": "invalid_request_error", "message": "max_tokens too large"},
	})
	provider := newTestAnthropic(t, server)

	_, err := provider.Generate(context.Background(), Prompt{User: "essay"})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrEmptyResponse)
	require.Contains(t, err.Error(), "anthropic generate")
	require.Len(t, server.Requests(), 1)
}
