package models

import "time"

// CompletedExercise records that a learner finished an exercise at a level.
// The (learner, level, exercise) triple is unique.
type CompletedExercise struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	LearnerID     uint      `gorm:"not null;uniqueIndex:idx_completed_exercise" json:"learner_id"`
	Level         string    `gorm:"size:32;not null;uniqueIndex:idx_completed_exercise" json:"level"`
	ExerciseIndex int       `gorm:"not null;uniqueIndex:idx_completed_exercise" json:"exercise_index"`
	AnalysisID    uint      `gorm:"not null" json:"analysis_id"`
	CompletedAt   time.Time `gorm:"not null" json:"completed_at"`
}
