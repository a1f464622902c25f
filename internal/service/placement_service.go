package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/writerpro-api/internal/dto"
	"github.com/noah-isme/writerpro-api/internal/events"
	"github.com/noah-isme/writerpro-api/internal/models"
	"github.com/noah-isme/writerpro-api/internal/observability"
	"github.com/noah-isme/writerpro-api/internal/placement"
	"github.com/noah-isme/writerpro-api/internal/profile"
	"github.com/noah-isme/writerpro-api/internal/repository"
)

// PlacementService runs the placement test and records its results.
type PlacementService interface {
	Questions(ctx context.Context) (dto.AssessmentResponse, error)
	Submit(ctx context.Context, userID uint, req dto.PlacementSubmitRequest) (dto.PlacementAttemptResponse, error)
	Latest(ctx context.Context, userID uint) (dto.PlacementAttemptResponse, error)
	History(ctx context.Context, userID uint) ([]dto.PlacementAttemptResponse, error)
	Status(ctx context.Context, userID uint) (dto.PlacementStatusResponse, error)
}

type placementService struct {
	assessments repository.AssessmentRepository
	attempts    repository.PlacementRepository
	learners    repository.LearnerRepository
	publisher   events.Publisher
	logger      zerolog.Logger
	now         func() time.Time
}

// NewPlacementService wires the placement workflow. publisher may be nil.
func NewPlacementService(assessments repository.AssessmentRepository, attempts repository.PlacementRepository, learners repository.LearnerRepository, publisher events.Publisher, logger zerolog.Logger) PlacementService {
	if publisher == nil {
		publisher = events.NewNopPublisher()
	}
	return &placementService{
		assessments: assessments,
		attempts:    attempts,
		learners:    learners,
		publisher:   publisher,
		logger:      logger.With().Str("component", "placement_service").Logger(),
		now:         time.Now,
	}
}

func (s *placementService) Questions(ctx context.Context) (dto.AssessmentResponse, error) {
	assessment, err := s.activeAssessment(ctx)
	if err != nil {
		return dto.AssessmentResponse{}, err
	}
	return dto.NewAssessmentResponse(assessment), nil
}

func (s *placementService) Submit(ctx context.Context, userID uint, req dto.PlacementSubmitRequest) (dto.PlacementAttemptResponse, error) {
	assessment, err := s.resolveAssessment(ctx, req.AssessmentID)
	if err != nil {
		return dto.PlacementAttemptResponse{}, err
	}

	responses := make([]placement.Response, 0, len(req.Responses))
	spent := 0
	for _, answer := range req.Responses {
		responses = append(responses, placement.Response{
			QuestionID:       answer.QuestionID,
			SelectedAnswer:   answer.SelectedAnswer,
			TimeSpentSeconds: answer.TimeSpent,
		})
		if answer.TimeSpent > 0 {
			spent += answer.TimeSpent
		}
	}

	result, err := placement.Score(responses, assessment.AnswerKey())
	if err != nil {
		return dto.PlacementAttemptResponse{}, err
	}

	totalTime := req.TimeData.TotalTimeSpent
	if totalTime <= 0 {
		totalTime = spent
	}
	completedAt := s.now().UTC()
	if req.TimeData.CompletedAt != nil && !req.TimeData.CompletedAt.IsZero() {
		completedAt = req.TimeData.CompletedAt.UTC()
	}
	startedAt := completedAt.Add(-time.Duration(totalTime) * time.Second)
	if req.TimeData.StartedAt != nil && !req.TimeData.StartedAt.IsZero() {
		startedAt = req.TimeData.StartedAt.UTC()
	}

	attempt := models.NewPlacementAttempt(userID, assessment.ID, result, startedAt, completedAt, totalTime)
	_, err = s.attempts.RecordAttempt(ctx, &attempt, func(learner *models.Learner) {
		learner.SetSkills(profile.SeedFromPlacement(learner.Skills(), result.SkillsBreakdown))
		learner.Level = string(result.UserFacingLevel)
		learner.HasCompletedAssessment = true
		placedAt := completedAt
		learner.AssessmentCompletedAt = &placedAt
	})
	if err != nil {
		return dto.PlacementAttemptResponse{}, fmt.Errorf("record placement attempt: %w", err)
	}

	observability.PlacementLevels().WithLabelValues(string(result.Level)).Inc()

	event := events.PlacementCompleted{
		LearnerID:       userID,
		AttemptID:       attempt.ID,
		AssessmentID:    assessment.ID,
		CorrectAnswers:  result.CorrectAnswers,
		Level:           string(result.Level),
		UserFacingLevel: string(result.UserFacingLevel),
	}
	if err := s.publisher.Publish(ctx, events.SubjectPlacementCompleted, event); err != nil {
		s.logger.Warn().Err(err).Uint("attempt_id", attempt.ID).Msg("failed to publish placement event")
	}

	s.logger.Info().
		Uint("user_id", userID).
		Uint("attempt_id", attempt.ID).
		Str("level", string(result.Level)).
		Int("correct_answers", result.CorrectAnswers).
		Msg("placement attempt recorded")

	return dto.NewPlacementAttemptResponse(attempt), nil
}

func (s *placementService) Latest(ctx context.Context, userID uint) (dto.PlacementAttemptResponse, error) {
	attempt, err := s.attempts.Latest(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.PlacementAttemptResponse{}, ErrPlacementNotFound
		}
		return dto.PlacementAttemptResponse{}, err
	}
	return dto.NewPlacementAttemptResponse(attempt), nil
}

func (s *placementService) History(ctx context.Context, userID uint) ([]dto.PlacementAttemptResponse, error) {
	attempts, err := s.attempts.History(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewPlacementAttemptResponseSlice(attempts), nil
}

func (s *placementService) Status(ctx context.Context, userID uint) (dto.PlacementStatusResponse, error) {
	learner, err := s.learners.GetOrCreate(ctx, userID)
	if err != nil {
		return dto.PlacementStatusResponse{}, err
	}

	status := dto.PlacementStatusResponse{
		HasCompletedAssessment: learner.HasCompletedAssessment,
		CompletedAt:            learner.AssessmentCompletedAt,
		Level:                  learner.Level,
	}

	attempt, err := s.attempts.Latest(ctx, userID)
	switch {
	case err == nil:
		latest := dto.NewPlacementAttemptResponse(attempt)
		status.LatestAttempt = &latest
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return dto.PlacementStatusResponse{}, err
	}

	return status, nil
}

func (s *placementService) resolveAssessment(ctx context.Context, id uint) (models.Assessment, error) {
	if id == 0 {
		return s.activeAssessment(ctx)
	}
	assessment, err := s.assessments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Assessment{}, ErrAssessmentNotFound
		}
		return models.Assessment{}, err
	}
	return assessment, nil
}

// activeAssessment returns the active placement test, seeding the default one
// on first use.
func (s *placementService) activeAssessment(ctx context.Context) (models.Assessment, error) {
	assessment, err := s.assessments.GetActive(ctx)
	if err == nil {
		return assessment, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Assessment{}, err
	}

	seed := models.NewAssessment(placement.DefaultAssessment())
	if err := s.assessments.Create(ctx, &seed); err != nil {
		return models.Assessment{}, fmt.Errorf("seed default assessment: %w", err)
	}
	s.logger.Info().Uint("assessment_id", seed.ID).Str("version", seed.Version).Msg("seeded default assessment")
	return seed, nil
}
