package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/writerpro-api/internal/dto"
	"github.com/noah-isme/writerpro-api/internal/handler"
	"github.com/noah-isme/writerpro-api/internal/profile"
)

type stubProfileService struct {
	response dto.ProfileResponse
	err      error
	lastID   uint
}

func (s *stubProfileService) Get(_ context.Context, userID uint) (dto.ProfileResponse, error) {
	s.lastID = userID
	return s.response, s.err
}

func TestProfileHandler(t *testing.T) {
	svc := &stubProfileService{response: dto.ProfileResponse{
		UserID: 6,
		Level:  "Intermediate (B1)",
		Skills: profile.Skills{Grammar: 60, Vocabulary: 55, Overall: 23},
	}}
	app := newTestApp("/api/v1/profile", 6, func(router fiber.Router, _ *validator.Validate) {
		handler.NewProfileHandler(svc, zerolog.Nop()).Register(router)
	})

	resp, env := doJSON(t, app, http.MethodGet, "/api/v1/profile", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, uint(6), svc.lastID)

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	skills := data["skills"].(map[string]interface{})
	require.Equal(t, float64(60), skills["grammar"])
	require.Equal(t, float64(23), skills["overallScore"])

	svc.err = errors.New("boom")
	resp, env = doJSON(t, app, http.MethodGet, "/api/v1/profile", nil)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	require.Equal(t, "failed to load profile", env.Message)
}
