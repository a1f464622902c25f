package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/writerpro-api/internal/dto"
	"github.com/noah-isme/writerpro-api/internal/exercise"
	"github.com/noah-isme/writerpro-api/internal/models"
	"github.com/noah-isme/writerpro-api/internal/repository"
	"github.com/noah-isme/writerpro-api/internal/scoring"
)

// ExerciseService exposes the writing exercise catalogue.
type ExerciseService interface {
	List(ctx context.Context, userID uint, query dto.ExerciseQuery) ([]dto.ExerciseResponse, error)
	Get(ctx context.Context, userID uint, level string, index int) (dto.ExerciseResponse, error)
}

type exerciseService struct {
	exercises   repository.ExerciseRepository
	completions CompletionTracker
	logger      zerolog.Logger
}

// NewExerciseService builds the catalogue service. completions may be nil, in
// which case every exercise is reported as not completed.
func NewExerciseService(exercises repository.ExerciseRepository, completions CompletionTracker, logger zerolog.Logger) ExerciseService {
	return &exerciseService{
		exercises:   exercises,
		completions: completions,
		logger:      logger.With().Str("component", "exercise_service").Logger(),
	}
}

func (s *exerciseService) List(ctx context.Context, userID uint, query dto.ExerciseQuery) ([]dto.ExerciseResponse, error) {
	filter := repository.ExerciseFilter{
		Type:     strings.ToLower(strings.TrimSpace(query.Type)),
		Category: strings.ToLower(strings.TrimSpace(query.Category)),
	}
	if strings.TrimSpace(query.Level) != "" {
		level, ok := scoring.ParseLevel(query.Level)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownLevel, query.Level)
		}
		filter.Level = string(level)
	}

	if err := s.ensureCatalogue(ctx); err != nil {
		return nil, err
	}

	rows, err := s.exercises.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	sortByLevel(rows)

	completed := make(map[string]map[int]struct{})
	responses := make([]dto.ExerciseResponse, 0, len(rows))
	for _, row := range rows {
		done, ok := completed[row.Level]
		if !ok {
			done, err = s.completedAt(ctx, userID, row.Level)
			if err != nil {
				return nil, err
			}
			completed[row.Level] = done
		}
		_, isDone := done[row.Position]
		responses = append(responses, dto.ExerciseResponse{Exercise: row.Entry(), Completed: isDone})
	}
	return responses, nil
}

func (s *exerciseService) Get(ctx context.Context, userID uint, level string, index int) (dto.ExerciseResponse, error) {
	parsed, ok := scoring.ParseLevel(level)
	if !ok {
		return dto.ExerciseResponse{}, fmt.Errorf("%w: %q", ErrUnknownLevel, level)
	}
	if index < 0 {
		return dto.ExerciseResponse{}, ErrExerciseNotFound
	}

	if err := s.ensureCatalogue(ctx); err != nil {
		return dto.ExerciseResponse{}, err
	}

	row, err := s.exercises.GetByPosition(ctx, string(parsed), index)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ExerciseResponse{}, ErrExerciseNotFound
		}
		return dto.ExerciseResponse{}, err
	}

	response := dto.ExerciseResponse{Exercise: row.Entry()}
	if s.completions != nil && userID != 0 {
		response.Completed, err = s.completions.IsCompleted(ctx, userID, string(parsed), index)
		if err != nil {
			return dto.ExerciseResponse{}, err
		}
	}
	return response, nil
}

func (s *exerciseService) completedAt(ctx context.Context, userID uint, level string) (map[int]struct{}, error) {
	done := make(map[int]struct{})
	if s.completions == nil || userID == 0 {
		return done, nil
	}
	indexes, err := s.completions.ListCompleted(ctx, userID, level)
	if err != nil {
		return nil, err
	}
	for _, idx := range indexes {
		done[idx] = struct{}{}
	}
	return done, nil
}

// ensureCatalogue seeds the built-in exercises into an empty catalogue. A
// concurrent seed that wins the race leaves a duplicate key error, which is
// treated as success.
func (s *exerciseService) ensureCatalogue(ctx context.Context) error {
	total, err := s.exercises.Count(ctx)
	if err != nil {
		return err
	}
	if total > 0 {
		return nil
	}

	catalogue := exercise.DefaultCatalogue()
	rows := make([]models.Exercise, 0, len(catalogue))
	for _, entry := range catalogue {
		rows = append(rows, models.NewExercise(entry))
	}
	if err := s.exercises.CreateBatch(ctx, rows); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return fmt.Errorf("seed exercise catalogue: %w", err)
	}
	s.logger.Info().Int("exercises", len(rows)).Msg("seeded exercise catalogue")
	return nil
}

func sortByLevel(rows []models.Exercise) {
	rank := make(map[string]int, len(scoring.Levels()))
	for i, level := range scoring.Levels() {
		rank[string(level)] = i
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rank[rows[i].Level] != rank[rows[j].Level] {
			return rank[rows[i].Level] < rank[rows[j].Level]
		}
		return rows[i].Position < rows[j].Position
	})
}
