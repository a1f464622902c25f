package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/writerpro-api/internal/models"
)

// PlacementRepository stores graded placement attempts.
type PlacementRepository interface {
	RecordAttempt(ctx context.Context, attempt *models.PlacementAttempt, apply func(*models.Learner)) (models.Learner, error)
	Latest(ctx context.Context, learnerID uint) (models.PlacementAttempt, error)
	History(ctx context.Context, learnerID uint) ([]models.PlacementAttempt, error)
}

type placementRepository struct {
	db *gorm.DB
}

// NewPlacementRepository constructs a placement repository.
func NewPlacementRepository(db *gorm.DB) PlacementRepository {
	return &placementRepository{db: db}
}

// RecordAttempt demotes the learner's previous latest attempt, inserts the new
// one as latest and applies the profile change, all in one transaction.
func (r *placementRepository) RecordAttempt(ctx context.Context, attempt *models.PlacementAttempt, apply func(*models.Learner)) (models.Learner, error) {
	var updated models.Learner
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		learner, err := lockLearner(tx, attempt.LearnerID)
		if err != nil {
			return err
		}

		err = tx.Model(&models.PlacementAttempt{}).
			Where("learner_id = ? AND is_latest = ?", attempt.LearnerID, true).
			Update("is_latest", false).Error
		if err != nil {
			return err
		}

		attempt.IsLatest = true
		if err := tx.Create(attempt).Error; err != nil {
			return err
		}

		if apply != nil {
			apply(&learner)
		}
		if err := tx.Save(&learner).Error; err != nil {
			return err
		}
		updated = learner
		return nil
	})
	if err != nil {
		return models.Learner{}, err
	}
	return updated, nil
}

func (r *placementRepository) Latest(ctx context.Context, learnerID uint) (models.PlacementAttempt, error) {
	var attempt models.PlacementAttempt
	err := r.db.WithContext(ctx).
		Where("learner_id = ? AND is_latest = ?", learnerID, true).
		First(&attempt).Error
	if err != nil {
		return models.PlacementAttempt{}, err
	}
	return attempt, nil
}

func (r *placementRepository) History(ctx context.Context, learnerID uint) ([]models.PlacementAttempt, error) {
	var attempts []models.PlacementAttempt
	err := r.db.WithContext(ctx).
		Where("learner_id = ?", learnerID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&attempts).Error
	if err != nil {
		return nil, err
	}
	return attempts, nil
}
