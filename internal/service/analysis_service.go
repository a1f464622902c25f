package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/writerpro-api/internal/dto"
	"github.com/noah-isme/writerpro-api/internal/events"
	"github.com/noah-isme/writerpro-api/internal/models"
	"github.com/noah-isme/writerpro-api/internal/profile"
	"github.com/noah-isme/writerpro-api/internal/repository"
	"github.com/noah-isme/writerpro-api/internal/scoring"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 50
)

// SubmissionAnalyzer grades a writing submission.
type SubmissionAnalyzer interface {
	Analyze(ctx context.Context, sub scoring.Submission) (scoring.Evaluation, error)
}

// AnalysisService grades submissions and serves the learner's analysis history.
type AnalysisService interface {
	Analyze(ctx context.Context, userID uint, req dto.AnalyzeRequest) (dto.AnalysisResponse, error)
	History(ctx context.Context, userID uint, query dto.AnalysisHistoryQuery) (dto.AnalysisHistoryResponse, error)
	Get(ctx context.Context, userID, id uint) (dto.AnalysisResponse, error)
	Delete(ctx context.Context, userID, id uint) error
}

type analysisService struct {
	analyzer  SubmissionAnalyzer
	analyses  repository.AnalysisRepository
	publisher events.Publisher
	cache     *redis.Client
	cacheTTL  time.Duration
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	now       func() time.Time
}

type historyStats struct {
	Stats      repository.AnalysisStats `json:"stats"`
	LevelStats []repository.LevelStat   `json:"levelStats"`
}

// NewAnalysisService wires the analysis workflow. cache and publisher may be nil.
func NewAnalysisService(analyzer SubmissionAnalyzer, analyses repository.AnalysisRepository, publisher events.Publisher, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) AnalysisService {
	if publisher == nil {
		publisher = events.NewNopPublisher()
	}
	return &analysisService{
		analyzer:  analyzer,
		analyses:  analyses,
		publisher: publisher,
		cache:     cache,
		cacheTTL:  ttl,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "analysis_service").Logger(),
		now:       time.Now,
	}
}

func (s *analysisService) Analyze(ctx context.Context, userID uint, req dto.AnalyzeRequest) (dto.AnalysisResponse, error) {
	sub := scoring.Submission{
		Text:           s.clean(req.Text),
		Question:       s.clean(req.Question),
		Level:          canonicalLevel(req.Level),
		ElapsedSeconds: req.TimeSpent,
	}

	evaluation, err := s.analyzer.Analyze(ctx, sub)
	if err != nil {
		return dto.AnalysisResponse{}, err
	}

	analysis := models.NewAnalysis(userID, sub, evaluation)
	dims := evaluation.Result.Dimensions()
	_, err = s.analyses.RecordAnalysis(ctx, &analysis, func(learner *models.Learner) error {
		learner.SetSkills(profile.Update(learner.Skills(), dims))
		learner.SetActivity(profile.RecordSubmission(learner.Activity(), analysis.WordCount, s.now()))
		return nil
	})
	if err != nil {
		return dto.AnalysisResponse{}, fmt.Errorf("record analysis: %w", err)
	}

	s.invalidate(ctx, userID)

	event := events.AnalysisCompleted{
		LearnerID:    userID,
		AnalysisID:   analysis.ID,
		Level:        analysis.Level,
		OverallScore: analysis.OverallScore,
		Source:       analysis.Source,
		WordCount:    analysis.WordCount,
	}
	if err := s.publisher.Publish(ctx, events.SubjectAnalysisCompleted, event); err != nil {
		s.logger.Warn().Err(err).Uint("analysis_id", analysis.ID).Msg("failed to publish analysis event")
	}

	s.logger.Info().
		Uint("user_id", userID).
		Uint("analysis_id", analysis.ID).
		Str("source", evaluation.Source).
		Int("overall_score", analysis.OverallScore).
		Msg("submission analyzed")

	return dto.NewAnalysisResponse(analysis), nil
}

func (s *analysisService) History(ctx context.Context, userID uint, query dto.AnalysisHistoryQuery) (dto.AnalysisHistoryResponse, error) {
	page := query.Page
	if page <= 0 {
		page = 1
	}
	limit := query.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	level := ""
	if strings.TrimSpace(query.Level) != "" {
		level = string(canonicalLevel(query.Level))
	}

	analyses, total, err := s.analyses.List(ctx, repository.AnalysisFilter{
		LearnerID: userID,
		Level:     level,
		Page:      page,
		PageSize:  limit,
	})
	if err != nil {
		return dto.AnalysisHistoryResponse{}, err
	}

	summary, err := s.stats(ctx, userID, level)
	if err != nil {
		return dto.AnalysisHistoryResponse{}, err
	}

	rows := make([]dto.AnalysisSummary, 0, len(analyses))
	for _, analysis := range analyses {
		rows = append(rows, dto.NewAnalysisSummary(analysis))
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return dto.AnalysisHistoryResponse{
		Analyses: rows,
		Pagination: dto.HistoryPagination{
			CurrentPage:   page,
			TotalPages:    totalPages,
			TotalAnalyses: total,
			Limit:         limit,
			HasNextPage:   page < totalPages,
			HasPrevPage:   page > 1,
		},
		Stats:      summary.Stats,
		LevelStats: summary.LevelStats,
	}, nil
}

func (s *analysisService) Get(ctx context.Context, userID, id uint) (dto.AnalysisResponse, error) {
	analysis, err := s.analyses.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AnalysisResponse{}, ErrAnalysisNotFound
		}
		return dto.AnalysisResponse{}, err
	}
	return dto.NewAnalysisResponse(analysis), nil
}

func (s *analysisService) Delete(ctx context.Context, userID, id uint) error {
	if err := s.analyses.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnalysisNotFound
		}
		return err
	}

	s.invalidate(ctx, userID)
	return nil
}

func (s *analysisService) stats(ctx context.Context, userID uint, level string) (historyStats, error) {
	cacheKey, cacheField := statsCacheKey(userID), statsCacheField(level)

	if s.cache != nil {
		if cached, err := s.cache.HGet(ctx, cacheKey, cacheField).Result(); err == nil {
			var summary historyStats
			if unmarshalErr := json.Unmarshal([]byte(cached), &summary); unmarshalErr == nil {
				s.logger.Debug().Uint("user_id", userID).Str("level", level).Msg("history stats cache hit")
				return summary, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read history stats cache")
		}
	}

	stats, err := s.analyses.Stats(ctx, userID, level)
	if err != nil {
		return historyStats{}, err
	}
	levels, err := s.analyses.LevelDistribution(ctx, userID)
	if err != nil {
		return historyStats{}, err
	}
	if levels == nil {
		levels = []repository.LevelStat{}
	}
	summary := historyStats{Stats: stats, LevelStats: levels}

	if s.cache != nil {
		payload, err := json.Marshal(summary)
		if err == nil {
			_, err = s.cache.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.HSet(ctx, cacheKey, cacheField, payload)
				if s.cacheTTL > 0 {
					pipe.Expire(ctx, cacheKey, s.cacheTTL)
				}
				return nil
			})
			if err != nil {
				s.logger.Warn().Err(err).Msg("failed to store history stats cache")
			}
		}
	}

	return summary, nil
}

// invalidate drops every cached stats entry for the learner. Each entry embeds
// the learner-wide level distribution, so a write affects all level filters.
func (s *analysisService) invalidate(ctx context.Context, userID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, statsCacheKey(userID)).Err(); err != nil {
		s.logger.Warn().Err(err).Uint("user_id", userID).Msg("failed to invalidate history stats cache")
	}
}

// clean strips markup and restores the plain text entities the policy escapes.
func (s *analysisService) clean(value string) string {
	return strings.TrimSpace(html.UnescapeString(s.sanitizer.Sanitize(value)))
}

// statsCacheKey names the per-learner hash holding one stats entry per level filter.
func statsCacheKey(userID uint) string {
	return fmt.Sprintf("analysis:stats:%d", userID)
}

func statsCacheField(level string) string {
	if level == "" {
		return "all"
	}
	return level
}

func canonicalLevel(raw string) scoring.Level {
	if level, ok := scoring.ParseLevel(raw); ok {
		return level
	}
	return scoring.Level(strings.TrimSpace(raw))
}
