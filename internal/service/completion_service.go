package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/writerpro-api/internal/completion"
	"github.com/noah-isme/writerpro-api/internal/dto"
	"github.com/noah-isme/writerpro-api/internal/repository"
	"github.com/noah-isme/writerpro-api/internal/scoring"
)

// CompletionTracker records exercise completions exactly once.
type CompletionTracker interface {
	MarkCompleted(ctx context.Context, userID uint, level string, exerciseIndex int, analysisRef uint) (completion.Outcome, error)
	ListCompleted(ctx context.Context, userID uint, level string) ([]int, error)
	IsCompleted(ctx context.Context, userID uint, level string, exerciseIndex int) (bool, error)
}

// CompletionService exposes exercise completion tracking to the API.
type CompletionService interface {
	MarkCompleted(ctx context.Context, userID uint, level string, exerciseIndex int, req dto.CompletionRequest) (dto.CompletionResponse, error)
	List(ctx context.Context, userID uint, level string) (dto.CompletedListResponse, error)
	Status(ctx context.Context, userID uint, level string, exerciseIndex int) (dto.CompletionStatusResponse, error)
}

type completionService struct {
	tracker  CompletionTracker
	analyses repository.AnalysisRepository
	logger   zerolog.Logger
}

// NewCompletionService builds the completion service.
func NewCompletionService(tracker CompletionTracker, analyses repository.AnalysisRepository, logger zerolog.Logger) CompletionService {
	return &completionService{
		tracker:  tracker,
		analyses: analyses,
		logger:   logger.With().Str("component", "completion_service").Logger(),
	}
}

func (s *completionService) MarkCompleted(ctx context.Context, userID uint, level string, exerciseIndex int, req dto.CompletionRequest) (dto.CompletionResponse, error) {
	if req.AnalysisID != 0 {
		if _, err := s.analyses.GetByID(ctx, userID, req.AnalysisID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.CompletionResponse{}, ErrAnalysisNotFound
			}
			return dto.CompletionResponse{}, err
		}
	}

	outcome, err := s.tracker.MarkCompleted(ctx, userID, level, exerciseIndex, req.AnalysisID)
	if err != nil {
		return dto.CompletionResponse{}, err
	}

	return dto.CompletionResponse{
		Level:         displayLevel(level),
		ExerciseIndex: exerciseIndex,
		AnalysisID:    req.AnalysisID,
		Status:        string(outcome),
	}, nil
}

func (s *completionService) List(ctx context.Context, userID uint, level string) (dto.CompletedListResponse, error) {
	indexes, err := s.tracker.ListCompleted(ctx, userID, level)
	if err != nil {
		return dto.CompletedListResponse{}, err
	}
	return dto.CompletedListResponse{Level: displayLevel(level), CompletedQuestions: indexes}, nil
}

func (s *completionService) Status(ctx context.Context, userID uint, level string, exerciseIndex int) (dto.CompletionStatusResponse, error) {
	done, err := s.tracker.IsCompleted(ctx, userID, level, exerciseIndex)
	if err != nil {
		return dto.CompletionStatusResponse{}, err
	}
	return dto.CompletionStatusResponse{
		Level:         displayLevel(level),
		ExerciseIndex: exerciseIndex,
		IsCompleted:   done,
	}, nil
}

func displayLevel(raw string) string {
	if level, ok := scoring.ParseLevel(raw); ok {
		return string(level)
	}
	return raw
}
