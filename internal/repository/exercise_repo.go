package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/writerpro-api/internal/models"
)

// ExerciseFilter narrows the exercise catalogue. Empty fields match everything.
type ExerciseFilter struct {
	Level    string
	Type     string
	Category string
}

// ExerciseRepository stores the writing exercise catalogue.
type ExerciseRepository interface {
	List(ctx context.Context, filter ExerciseFilter) ([]models.Exercise, error)
	GetByPosition(ctx context.Context, level string, position int) (models.Exercise, error)
	Count(ctx context.Context) (int64, error)
	CreateBatch(ctx context.Context, exercises []models.Exercise) error
}

type exerciseRepository struct {
	db *gorm.DB
}

// NewExerciseRepository constructs an exercise repository.
func NewExerciseRepository(db *gorm.DB) ExerciseRepository {
	return &exerciseRepository{db: db}
}

func (r *exerciseRepository) List(ctx context.Context, filter ExerciseFilter) ([]models.Exercise, error) {
	query := r.db.WithContext(ctx).Model(&models.Exercise{}).Where("is_active = ?", true)
	if filter.Level != "" {
		query = query.Where("level = ?", filter.Level)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var exercises []models.Exercise
	if err := query.Order("level ASC").Order("position ASC").Find(&exercises).Error; err != nil {
		return nil, err
	}
	return exercises, nil
}

func (r *exerciseRepository) GetByPosition(ctx context.Context, level string, position int) (models.Exercise, error) {
	var exercise models.Exercise
	err := r.db.WithContext(ctx).
		Where("level = ? AND position = ? AND is_active = ?", level, position, true).
		First(&exercise).Error
	if err != nil {
		return models.Exercise{}, err
	}
	return exercise, nil
}

func (r *exerciseRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Exercise{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *exerciseRepository) CreateBatch(ctx context.Context, exercises []models.Exercise) error {
	if len(exercises) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&exercises).Error
	})
}
