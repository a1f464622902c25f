package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/noah-isme/writerpro-api/internal/exercise"
	"github.com/noah-isme/writerpro-api/internal/scoring"
)

// Exercise is a catalogued writing task. (Level, Position) is unique and
// Position is the exercise index completions refer to.
type Exercise struct {
	ID               uint                        `gorm:"primaryKey" json:"id"`
	Level            string                      `gorm:"size:32;not null;uniqueIndex:idx_exercise_position" json:"level"`
	Position         int                         `gorm:"not null;uniqueIndex:idx_exercise_position" json:"position"`
	Title            string                      `gorm:"size:200;not null" json:"title"`
	Type             string                      `gorm:"size:32;not null;index" json:"type"`
	Category         string                      `gorm:"size:32;not null;index" json:"category"`
	Instructions     string                      `gorm:"type:text" json:"instructions"`
	Prompt           string                      `gorm:"type:text;not null" json:"prompt"`
	MinWords         int                         `gorm:"not null" json:"min_words"`
	MaxWords         int                         `gorm:"not null" json:"max_words"`
	TimeLimitMinutes int                         `gorm:"not null" json:"time_limit_minutes"`
	Keywords         datatypes.JSONSlice[string] `gorm:"type:json" json:"keywords"`
	IsActive         bool                        `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt        time.Time                   `json:"created_at"`
	UpdatedAt        time.Time                   `json:"updated_at"`
}

// NewExercise converts a catalogue entry into its stored form.
func NewExercise(e exercise.Exercise) Exercise {
	return Exercise{
		Level:            string(e.Level),
		Position:         e.Index,
		Title:            e.Title,
		Type:             e.Type,
		Category:         e.Category,
		Instructions:     e.Instructions,
		Prompt:           e.Prompt,
		MinWords:         e.MinWords,
		MaxWords:         e.MaxWords,
		TimeLimitMinutes: e.TimeLimitMinutes,
		Keywords:         datatypes.NewJSONSlice(e.Keywords),
		IsActive:         true,
	}
}

// Entry returns the catalogue view of the stored exercise.
func (e Exercise) Entry() exercise.Exercise {
	return exercise.Exercise{
		Level:            scoring.Level(e.Level),
		Index:            e.Position,
		Title:            e.Title,
		Type:             e.Type,
		Category:         e.Category,
		Instructions:     e.Instructions,
		Prompt:           e.Prompt,
		MinWords:         e.MinWords,
		MaxWords:         e.MaxWords,
		TimeLimitMinutes: e.TimeLimitMinutes,
		Keywords:         []string(e.Keywords),
	}
}
