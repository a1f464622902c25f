package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/writerpro-api/internal/completion"
	"github.com/noah-isme/writerpro-api/internal/dto"
	"github.com/noah-isme/writerpro-api/internal/models"
	"github.com/noah-isme/writerpro-api/internal/repository"
	"github.com/noah-isme/writerpro-api/internal/scoring"
)

func newCompletionFixture(t *testing.T) (CompletionService, repository.AnalysisRepository) {
	t.Helper()

	db := newServiceDB(t)
	analyses := repository.NewAnalysisRepository(db)
	tracker := completion.NewTracker(repository.NewCompletionRepository(db), zerolog.Nop())
	return NewCompletionService(tracker, analyses, zerolog.Nop()), analyses
}

func storeAnalysis(t *testing.T, analyses repository.AnalysisRepository, learnerID uint) uint {
	t.Helper()

	sub := scoring.Submission{Text: sampleEssay, Level: scoring.LevelIntermediate}
	evaluation := scoring.Evaluation{
		Result: scoring.Heuristic(sampleEssay, scoring.LevelIntermediate, 0),
		Source: scoring.SourceHeuristic,
	}
	analysis := models.NewAnalysis(learnerID, sub, evaluation)
	require.NoError(t, analyses.Create(context.Background(), &analysis))
	return analysis.ID
}

func TestCompletionServiceMarksOnce(t *testing.T) {
	svc, analyses := newCompletionFixture(t)
	ctx := context.Background()
	analysisID := storeAnalysis(t, analyses, 8)

	first, err := svc.MarkCompleted(ctx, 8, "intermediate", 2, dto.CompletionRequest{AnalysisID: analysisID})
	require.NoError(t, err)
	require.Equal(t, dto.CompletionResponse{
		Level:         string(scoring.LevelIntermediate),
		ExerciseIndex: 2,
		AnalysisID:    analysisID,
		Status:        string(completion.Completed),
	}, first)

	second, err := svc.MarkCompleted(ctx, 8, "Intermediate (B1)", 2, dto.CompletionRequest{AnalysisID: analysisID})
	require.NoError(t, err)
	require.Equal(t, string(completion.AlreadyCompleted), second.Status)

	_, err = svc.MarkCompleted(ctx, 8, "Intermediate (B1)", 0, dto.CompletionRequest{AnalysisID: analysisID})
	require.NoError(t, err)

	list, err := svc.List(ctx, 8, "intermediate")
	require.NoError(t, err)
	require.Equal(t, []int{0, 2}, list.CompletedQuestions)
	require.Equal(t, string(scoring.LevelIntermediate), list.Level)

	status, err := svc.Status(ctx, 8, "Intermediate (B1)", 2)
	require.NoError(t, err)
	require.True(t, status.IsCompleted)

	status, err = svc.Status(ctx, 8, "Intermediate (B1)", 3)
	require.NoError(t, err)
	require.False(t, status.IsCompleted)
}

func TestCompletionServiceRejectsForeignAnalysis(t *testing.T) {
	svc, analyses := newCompletionFixture(t)
	ctx := context.Background()
	analysisID := storeAnalysis(t, analyses, 8)

	_, err := svc.MarkCompleted(ctx, 9, "Beginner", 0, dto.CompletionRequest{AnalysisID: analysisID})
	require.ErrorIs(t, err, ErrAnalysisNotFound)

	list, err := svc.List(ctx, 9, "Beginner")
	require.NoError(t, err)
	require.Empty(t, list.CompletedQuestions)
}

func TestCompletionServiceValidation(t *testing.T) {
	svc, analyses := newCompletionFixture(t)
	ctx := context.Background()
	analysisID := storeAnalysis(t, analyses, 8)

	_, err := svc.MarkCompleted(ctx, 8, "Expert", 1, dto.CompletionRequest{AnalysisID: analysisID})
	require.ErrorIs(t, err, completion.ErrInvalidInput)

	_, err = svc.MarkCompleted(ctx, 8, "Beginner", -1, dto.CompletionRequest{AnalysisID: analysisID})
	require.ErrorIs(t, err, completion.ErrInvalidInput)

	_, err = svc.MarkCompleted(ctx, 8, "Beginner", 1, dto.CompletionRequest{})
	require.ErrorIs(t, err, completion.ErrInvalidInput)

	_, err = svc.List(ctx, 8, "nope")
	require.ErrorIs(t, err, completion.ErrInvalidInput)
}
