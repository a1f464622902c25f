package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/writerpro-api/internal/models"
	"github.com/noah-isme/writerpro-api/internal/scoring"
)

// LearnerRepository provides access to learner profiles.
type LearnerRepository interface {
	GetOrCreate(ctx context.Context, id uint) (models.Learner, error)
}

type learnerRepository struct {
	db *gorm.DB
}

// NewLearnerRepository constructs a learner repository.
func NewLearnerRepository(db *gorm.DB) LearnerRepository {
	return &learnerRepository{db: db}
}

func (r *learnerRepository) GetOrCreate(ctx context.Context, id uint) (models.Learner, error) {
	db := r.db.WithContext(ctx)
	if err := ensureLearner(db, id); err != nil {
		return models.Learner{}, err
	}

	var learner models.Learner
	if err := db.First(&learner, id).Error; err != nil {
		return models.Learner{}, err
	}
	return learner, nil
}

func ensureLearner(tx *gorm.DB, id uint) error {
	learner := models.Learner{ID: id, Level: string(scoring.LevelBeginner)}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&learner).Error
}

// lockLearner creates the learner if needed and reads it under a row lock, so
// concurrent read-modify-write cycles for one learner serialise within their
// transactions.
func lockLearner(tx *gorm.DB, id uint) (models.Learner, error) {
	if err := ensureLearner(tx, id); err != nil {
		return models.Learner{}, err
	}

	var learner models.Learner
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&learner, id).Error; err != nil {
		return models.Learner{}, err
	}
	return learner, nil
}
