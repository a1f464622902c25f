package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/noah-isme/writerpro-api/internal/placement"
)

// PlacementStatusCompleted marks a fully graded attempt.
const PlacementStatusCompleted = "completed"

// PlacementAttempt is a graded placement test. Exactly one attempt per learner
// carries IsLatest.
type PlacementAttempt struct {
	ID              uint                                    `gorm:"primaryKey" json:"id"`
	LearnerID       uint                                    `gorm:"not null;index:idx_placement_learner_latest" json:"learner_id"`
	AssessmentID    uint                                    `gorm:"not null;index" json:"assessment_id"`
	Responses       datatypes.JSONSlice[placement.Response] `gorm:"type:json" json:"responses"`
	TotalQuestions  int                                     `gorm:"not null" json:"total_questions"`
	CorrectAnswers  int                                     `gorm:"not null" json:"correct_answers"`
	TotalScore      int                                     `gorm:"not null" json:"total_score"`
	Percentage      int                                     `gorm:"not null" json:"percentage"`
	Level           string                                  `gorm:"size:2;not null" json:"level"`
	UserFacingLevel string                                  `gorm:"size:32;not null" json:"user_facing_level"`
	SkillsBreakdown datatypes.JSONType[placement.Breakdown] `gorm:"type:json" json:"skills_breakdown"`
	StartedAt       time.Time                               `json:"started_at"`
	CompletedAt     time.Time                               `json:"completed_at"`
	TotalTimeSpent  int                                     `gorm:"not null;default:0" json:"total_time_spent"`
	Status          string                                  `gorm:"size:16;not null" json:"status"`
	IsLatest        bool                                    `gorm:"not null;default:false;index:idx_placement_learner_latest" json:"is_latest"`
	CreatedAt       time.Time                               `json:"created_at"`
	UpdatedAt       time.Time                               `json:"updated_at"`
}

// NewPlacementAttempt builds the stored form of a graded placement result.
func NewPlacementAttempt(learnerID, assessmentID uint, result placement.Result, startedAt, completedAt time.Time, totalTimeSpent int) PlacementAttempt {
	return PlacementAttempt{
		LearnerID:       learnerID,
		AssessmentID:    assessmentID,
		Responses:       datatypes.NewJSONSlice(result.Responses),
		TotalQuestions:  result.TotalQuestions,
		CorrectAnswers:  result.CorrectAnswers,
		TotalScore:      result.TotalScore,
		Percentage:      result.Percentage,
		Level:           string(result.Level),
		UserFacingLevel: string(result.UserFacingLevel),
		SkillsBreakdown: datatypes.NewJSONType(result.SkillsBreakdown),
		StartedAt:       startedAt.UTC(),
		CompletedAt:     completedAt.UTC(),
		TotalTimeSpent:  totalTimeSpent,
		Status:          PlacementStatusCompleted,
		IsLatest:        true,
	}
}
