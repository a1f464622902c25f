package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/noah-isme/writerpro-api/internal/placement"
)

// Assessment is a stored placement test together with its answer key.
type Assessment struct {
	ID          uint                                    `gorm:"primaryKey" json:"id"`
	Title       string                                  `gorm:"size:255;not null" json:"title"`
	Description string                                  `gorm:"type:text" json:"description"`
	Version     string                                  `gorm:"size:32;not null" json:"version"`
	IsActive    bool                                    `gorm:"not null;default:true;index" json:"is_active"`
	Questions   datatypes.JSONSlice[placement.Question] `gorm:"type:json" json:"questions"`
	Bands       datatypes.JSONSlice[placement.Band]     `gorm:"type:json" json:"bands"`
	CreatedAt   time.Time                               `json:"created_at"`
	UpdatedAt   time.Time                               `json:"updated_at"`
}

// NewAssessment converts a placement test into its stored form.
func NewAssessment(a placement.Assessment) Assessment {
	return Assessment{
		Title:       a.Title,
		Description: a.Description,
		Version:     a.Version,
		IsActive:    true,
		Questions:   datatypes.NewJSONSlice(a.Questions),
		Bands:       datatypes.NewJSONSlice(a.Bands),
	}
}

// AnswerKey returns the grading view of the assessment.
func (a Assessment) AnswerKey() placement.AnswerKey {
	return placement.AnswerKey{
		Questions: []placement.Question(a.Questions),
		Bands:     []placement.Band(a.Bands),
	}
}
