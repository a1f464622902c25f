package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/writerpro-api/internal/dto"
	"github.com/noah-isme/writerpro-api/internal/events"
	"github.com/noah-isme/writerpro-api/internal/placement"
	"github.com/noah-isme/writerpro-api/internal/repository"
	"github.com/noah-isme/writerpro-api/internal/scoring"
)

func newPlacementFixture(t *testing.T) (*placementService, repository.LearnerRepository, *recordingPublisher) {
	t.Helper()

	db := newServiceDB(t)
	learners := repository.NewLearnerRepository(db)
	publisher := &recordingPublisher{}
	svc := NewPlacementService(
		repository.NewAssessmentRepository(db),
		repository.NewPlacementRepository(db),
		learners,
		publisher,
		zerolog.Nop(),
	).(*placementService)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return svc, learners, publisher
}

// answers builds a submission answering the first correctCount questions of
// the default test correctly and the rest wrongly.
func answers(correctCount int) []dto.PlacementAnswer {
	questions := placement.DefaultAssessment().Questions
	result := make([]dto.PlacementAnswer, 0, len(questions))
	for i, q := range questions {
		selected := ""
		for _, opt := range q.Options {
			if opt.IsCorrect == (i < correctCount) {
				selected = opt.Text
				break
			}
		}
		result = append(result, dto.PlacementAnswer{QuestionID: q.ID, SelectedAnswer: selected, TimeSpent: 10})
	}
	return result
}

func TestPlacementServiceQuestionsSeedsDefaultOnce(t *testing.T) {
	svc, _, _ := newPlacementFixture(t)
	ctx := context.Background()

	first, err := svc.Questions(ctx)
	require.NoError(t, err)
	require.NotZero(t, first.ID)
	require.Equal(t, 15, first.TotalQuestions)
	require.Len(t, first.Questions, 15)
	require.Equal(t, placement.DefaultAssessment().Title, first.Title)

	second, err := svc.Questions(ctx)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
}

func TestPlacementServiceSubmitSeedsProfile(t *testing.T) {
	svc, learners, publisher := newPlacementFixture(t)
	ctx := context.Background()

	resp, err := svc.Submit(ctx, 11, dto.PlacementSubmitRequest{Responses: answers(15)})
	require.NoError(t, err)
	require.NotZero(t, resp.ID)
	require.Equal(t, 15, resp.CorrectAnswers)
	require.Equal(t, 100, resp.Percentage)
	require.Equal(t, placement.C2, resp.Level)
	require.Equal(t, scoring.LevelAdvanced, resp.UserFacingLevel)
	require.True(t, resp.IsLatest)
	require.Equal(t, 150, resp.TotalTimeSpent)
	require.Equal(t, resp.CompletedAt.Add(-150*time.Second), resp.StartedAt)

	learner, err := learners.GetOrCreate(ctx, 11)
	require.NoError(t, err)
	require.True(t, learner.HasCompletedAssessment)
	require.NotNil(t, learner.AssessmentCompletedAt)
	require.Equal(t, string(scoring.LevelAdvanced), learner.Level)
	require.Equal(t, 100, learner.Grammar)
	require.Equal(t, 100, learner.Vocabulary)
	require.Equal(t, 100, learner.Structure)
	require.Equal(t, 100, learner.Clarity)
	require.Equal(t, 0, learner.Creativity)
	require.Equal(t, 80, learner.OverallScore)

	require.Equal(t, []string{events.SubjectPlacementCompleted}, publisher.subjects)
	event, ok := publisher.payloads[0].(events.PlacementCompleted)
	require.True(t, ok)
	require.Equal(t, resp.ID, event.AttemptID)
	require.Equal(t, "C2", event.Level)
}

func TestPlacementServiceResubmitKeepsSingleLatest(t *testing.T) {
	svc, _, _ := newPlacementFixture(t)
	ctx := context.Background()

	started := time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC)
	completed := started.Add(20 * time.Minute)
	first, err := svc.Submit(ctx, 4, dto.PlacementSubmitRequest{
		Responses: answers(5),
		TimeData:  dto.PlacementTimeData{StartedAt: &started, CompletedAt: &completed, TotalTimeSpent: 1200},
	})
	require.NoError(t, err)
	require.Equal(t, placement.A2, first.Level)
	require.Equal(t, started, first.StartedAt)
	require.Equal(t, 1200, first.TotalTimeSpent)

	second, err := svc.Submit(ctx, 4, dto.PlacementSubmitRequest{AssessmentID: first.AssessmentID, Responses: answers(10)})
	require.NoError(t, err)
	require.Equal(t, placement.B2, second.Level)

	latest, err := svc.Latest(ctx, 4)
	require.NoError(t, err)
	require.Equal(t, second.ID, latest.ID)

	history, err := svc.History(ctx, 4)
	require.NoError(t, err)
	require.Len(t, history, 2)
	latestCount := 0
	for _, attempt := range history {
		if attempt.IsLatest {
			latestCount++
			require.Equal(t, second.ID, attempt.ID)
		}
	}
	require.Equal(t, 1, latestCount)

	status, err := svc.Status(ctx, 4)
	require.NoError(t, err)
	require.True(t, status.HasCompletedAssessment)
	require.Equal(t, string(scoring.LevelUpperIntermediate), status.Level)
	require.NotNil(t, status.LatestAttempt)
	require.Equal(t, second.ID, status.LatestAttempt.ID)
}

func TestPlacementServiceErrors(t *testing.T) {
	svc, _, publisher := newPlacementFixture(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, 1, dto.PlacementSubmitRequest{AssessmentID: 999, Responses: answers(3)})
	require.ErrorIs(t, err, ErrAssessmentNotFound)

	_, err = svc.Submit(ctx, 1, dto.PlacementSubmitRequest{
		Responses: []dto.PlacementAnswer{{QuestionID: 404, SelectedAnswer: "am"}},
	})
	require.ErrorIs(t, err, placement.ErrInvalidInput)

	_, err = svc.Latest(ctx, 1)
	require.ErrorIs(t, err, ErrPlacementNotFound)

	history, err := svc.History(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, history)

	status, err := svc.Status(ctx, 1)
	require.NoError(t, err)
	require.False(t, status.HasCompletedAssessment)
	require.Nil(t, status.LatestAttempt)
	require.Equal(t, string(scoring.LevelBeginner), status.Level)

	require.Empty(t, publisher.subjects)
}
