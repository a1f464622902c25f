package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/writerpro-api/internal/models"
)

// AnalysisFilter narrows a learner's analysis history.
type AnalysisFilter struct {
	LearnerID uint
	Level     string
	Page      int
	PageSize  int
}

// AnalysisStats aggregates a learner's analyses.
type AnalysisStats struct {
	TotalAnalyses       int64   `json:"totalAnalyses"`
	AverageScore        float64 `json:"averageScore"`
	BestScore           int     `json:"bestScore"`
	AverageIELTS        float64 `gorm:"column:average_ielts" json:"averageIelts"`
	AverageTOEFL        float64 `gorm:"column:average_toefl" json:"averageToefl"`
	AveragePTE          float64 `gorm:"column:average_pte" json:"averagePte"`
	TotalWords          int64   `json:"totalWords"`
	TotalTimeSpent      int64   `json:"totalTimeSpent"`
	AverageGrammar      float64 `json:"averageGrammar"`
	AverageVocabulary   float64 `json:"averageVocabulary"`
	AverageCoherence    float64 `json:"averageCoherence"`
	AverageTaskResponse float64 `json:"averageTaskResponse"`
}

// LevelStat summarises analyses written at one level.
type LevelStat struct {
	Level        string  `json:"level"`
	Count        int64   `json:"count"`
	AverageScore float64 `json:"averageScore"`
}

// AnalysisRepository persists graded submissions.
type AnalysisRepository interface {
	Create(ctx context.Context, analysis *models.Analysis) error
	RecordAnalysis(ctx context.Context, analysis *models.Analysis, mutate func(*models.Learner) error) (models.Learner, error)
	GetByID(ctx context.Context, learnerID, id uint) (models.Analysis, error)
	List(ctx context.Context, filter AnalysisFilter) ([]models.Analysis, int64, error)
	Stats(ctx context.Context, learnerID uint, level string) (AnalysisStats, error)
	LevelDistribution(ctx context.Context, learnerID uint) ([]LevelStat, error)
	Delete(ctx context.Context, learnerID, id uint) error
}

type analysisRepository struct {
	db *gorm.DB
}

// NewAnalysisRepository constructs an analysis repository.
func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

func (r *analysisRepository) Create(ctx context.Context, analysis *models.Analysis) error {
	return r.db.WithContext(ctx).Create(analysis).Error
}

// RecordAnalysis inserts the analysis and applies mutate to its learner under a
// row lock in one transaction. A mutate or save failure discards the analysis.
func (r *analysisRepository) RecordAnalysis(ctx context.Context, analysis *models.Analysis, mutate func(*models.Learner) error) (models.Learner, error) {
	var updated models.Learner
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		learner, err := lockLearner(tx, analysis.LearnerID)
		if err != nil {
			return err
		}
		if err := tx.Create(analysis).Error; err != nil {
			return err
		}
		if mutate != nil {
			if err := mutate(&learner); err != nil {
				return err
			}
		}
		if err := tx.Save(&learner).Error; err != nil {
			return err
		}
		updated = learner
		return nil
	})
	if err != nil {
		analysis.ID = 0
		return models.Learner{}, err
	}
	return updated, nil
}

func (r *analysisRepository) GetByID(ctx context.Context, learnerID, id uint) (models.Analysis, error) {
	var analysis models.Analysis
	err := r.db.WithContext(ctx).
		Where("id = ? AND learner_id = ?", id, learnerID).
		First(&analysis).Error
	if err != nil {
		return models.Analysis{}, err
	}
	return analysis, nil
}

func (r *analysisRepository) List(ctx context.Context, filter AnalysisFilter) ([]models.Analysis, int64, error) {
	query := r.scoped(ctx, filter.LearnerID, filter.Level)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC").Order("id DESC")
	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Limit(filter.PageSize).Offset((page - 1) * filter.PageSize)
	}

	var analyses []models.Analysis
	if err := query.Find(&analyses).Error; err != nil {
		return nil, 0, err
	}
	return analyses, total, nil
}

func (r *analysisRepository) Stats(ctx context.Context, learnerID uint, level string) (AnalysisStats, error) {
	var stats AnalysisStats
	err := r.scoped(ctx, learnerID, level).
		Select(`COUNT(*) AS total_analyses,
			COALESCE(AVG(overall_score), 0) AS average_score,
			COALESCE(MAX(overall_score), 0) AS best_score,
			COALESCE(AVG(ielts), 0) AS average_ielts,
			COALESCE(AVG(toefl), 0) AS average_toefl,
			COALESCE(AVG(pte), 0) AS average_pte,
			COALESCE(SUM(word_count), 0) AS total_words,
			COALESCE(SUM(time_spent_seconds), 0) AS total_time_spent,
			COALESCE(AVG(grammar_score), 0) AS average_grammar,
			COALESCE(AVG(vocabulary_score), 0) AS average_vocabulary,
			COALESCE(AVG(coherence_score), 0) AS average_coherence,
			COALESCE(AVG(task_response_score), 0) AS average_task_response`).
		Scan(&stats).Error
	if err != nil {
		return AnalysisStats{}, err
	}
	return stats, nil
}

func (r *analysisRepository) LevelDistribution(ctx context.Context, learnerID uint) ([]LevelStat, error) {
	var levels []LevelStat
	err := r.scoped(ctx, learnerID, "").
		Select("level, COUNT(*) AS count, COALESCE(AVG(overall_score), 0) AS average_score").
		Group("level").
		Order("count DESC").
		Order("level").
		Scan(&levels).Error
	if err != nil {
		return nil, err
	}
	return levels, nil
}

func (r *analysisRepository) Delete(ctx context.Context, learnerID, id uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND learner_id = ?", id, learnerID).
		Delete(&models.Analysis{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *analysisRepository) scoped(ctx context.Context, learnerID uint, level string) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.Analysis{}).Where("learner_id = ?", learnerID)
	if level != "" {
		query = query.Where("level = ?", level)
	}
	return query
}
