package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/writerpro-api/internal/completion"
	"github.com/noah-isme/writerpro-api/internal/dto"
	"github.com/noah-isme/writerpro-api/internal/handler"
	"github.com/noah-isme/writerpro-api/internal/service"
)

type stubCompletionService struct {
	level    string
	index    int
	request  dto.CompletionRequest
	outcome  completion.Outcome
	indexes  []int
	done     bool
	err      error
	lastUser uint
}

func (s *stubCompletionService) MarkCompleted(_ context.Context, userID uint, level string, exerciseIndex int, req dto.CompletionRequest) (dto.CompletionResponse, error) {
	s.lastUser = userID
	s.level = level
	s.index = exerciseIndex
	s.request = req
	if s.err != nil {
		return dto.CompletionResponse{}, s.err
	}
	return dto.CompletionResponse{Level: level, ExerciseIndex: exerciseIndex, AnalysisID: req.AnalysisID, Status: string(s.outcome)}, nil
}

func (s *stubCompletionService) List(_ context.Context, userID uint, level string) (dto.CompletedListResponse, error) {
	s.lastUser = userID
	s.level = level
	return dto.CompletedListResponse{Level: level, CompletedQuestions: s.indexes}, s.err
}

func (s *stubCompletionService) Status(_ context.Context, userID uint, level string, exerciseIndex int) (dto.CompletionStatusResponse, error) {
	s.lastUser = userID
	s.level = level
	s.index = exerciseIndex
	return dto.CompletionStatusResponse{Level: level, ExerciseIndex: exerciseIndex, IsCompleted: s.done}, s.err
}

func newCompletionApp(svc service.CompletionService, userID uint) *fiber.App {
	return newTestApp("/api/v1/completed", userID, func(router fiber.Router, v *validator.Validate) {
		handler.NewCompletionHandler(svc, v, zerolog.Nop()).Register(router)
	})
}

func TestCompletionHandler_MarkDecodesLevel(t *testing.T) {
	svc := &stubCompletionService{outcome: completion.Completed}
	app := newCompletionApp(svc, 8)

	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/completed/Intermediate%20(B1)/3", map[string]interface{}{"analysisId": 41})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, env.Success)
	require.Equal(t, "Intermediate (B1)", svc.level)
	require.Equal(t, 3, svc.index)
	require.Equal(t, uint(41), svc.request.AnalysisID)
	require.Equal(t, uint(8), svc.lastUser)
}

func TestCompletionHandler_AlreadyCompletedConflicts(t *testing.T) {
	svc := &stubCompletionService{outcome: completion.AlreadyCompleted}
	app := newCompletionApp(svc, 8)

	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/completed/beginner/0", map[string]interface{}{"analysisId": 2})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	require.False(t, env.Success)
	require.Equal(t, "exercise already completed", env.Message)

	var details dto.CompletionResponse
	require.NoError(t, json.Unmarshal(env.Details, &details))
	require.Equal(t, string(completion.AlreadyCompleted), details.Status)
}

func TestCompletionHandler_MarkRejectsBadInput(t *testing.T) {
	cases := []struct {
		name    string
		path    string
		payload map[string]interface{}
		err     error
		status  int
	}{
		{name: "non numeric index", path: "/api/v1/completed/beginner/first", payload: map[string]interface{}{"analysisId": 1}, status: fiber.StatusBadRequest},
		{name: "missing analysis", path: "/api/v1/completed/beginner/1", payload: map[string]interface{}{}, status: fiber.StatusBadRequest},
		{name: "unknown level", path: "/api/v1/completed/expert/1", payload: map[string]interface{}{"analysisId": 1}, err: fmt.Errorf("%w: unknown level", completion.ErrInvalidInput), status: fiber.StatusBadRequest},
		{name: "foreign analysis", path: "/api/v1/completed/beginner/1", payload: map[string]interface{}{"analysisId": 1}, err: service.ErrAnalysisNotFound, status: fiber.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newCompletionApp(&stubCompletionService{err: tc.err}, 8)
			resp, env := doJSON(t, app, http.MethodPost, tc.path, tc.payload)
			require.Equal(t, tc.status, resp.StatusCode)
			require.False(t, env.Success)
		})
	}
}

func TestCompletionHandler_ListAndStatus(t *testing.T) {
	svc := &stubCompletionService{indexes: []int{0, 2, 5}, done: true}
	app := newCompletionApp(svc, 8)

	resp, env := doJSON(t, app, http.MethodGet, "/api/v1/completed/Upper-Intermediate%20(B2)", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "Upper-Intermediate (B2)", svc.level)

	var list dto.CompletedListResponse
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Equal(t, []int{0, 2, 5}, list.CompletedQuestions)

	resp, env = doJSON(t, app, http.MethodGet, "/api/v1/completed/advanced/5/status", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var status dto.CompletionStatusResponse
	require.NoError(t, json.Unmarshal(env.Data, &status))
	require.True(t, status.IsCompleted)
	require.Equal(t, 5, svc.index)
}
