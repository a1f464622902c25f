package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/writerpro-api/internal/completion"
	"github.com/noah-isme/writerpro-api/internal/models"
	"github.com/noah-isme/writerpro-api/internal/scoring"
)

// CompletionRepository is the database-backed completion store. Uniqueness is
// enforced by the composite index on completed_exercises.
type CompletionRepository struct {
	db *gorm.DB
}

var _ completion.Store = (*CompletionRepository)(nil)

// NewCompletionRepository constructs the database completion store.
func NewCompletionRepository(db *gorm.DB) *CompletionRepository {
	return &CompletionRepository{db: db}
}

// Insert adds the record unless the triple already exists.
func (r *CompletionRepository) Insert(ctx context.Context, record completion.Record) (bool, error) {
	row := models.CompletedExercise{
		LearnerID:     record.UserID,
		Level:         string(record.Level),
		ExerciseIndex: record.ExerciseIndex,
		AnalysisID:    record.AnalysisRef,
		CompletedAt:   record.CompletedAt,
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListIndexes returns completed exercise indexes for a level in ascending order.
func (r *CompletionRepository) ListIndexes(ctx context.Context, userID uint, level scoring.Level) ([]int, error) {
	var indexes []int
	err := r.db.WithContext(ctx).
		Model(&models.CompletedExercise{}).
		Where("learner_id = ? AND level = ?", userID, string(level)).
		Order("exercise_index ASC").
		Pluck("exercise_index", &indexes).Error
	if err != nil {
		return nil, err
	}
	return indexes, nil
}

// Exists reports whether the triple has a record.
func (r *CompletionRepository) Exists(ctx context.Context, userID uint, level scoring.Level, exerciseIndex int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CompletedExercise{}).
		Where("learner_id = ? AND level = ? AND exercise_index = ?", userID, string(level), exerciseIndex).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
