package models

import (
	"time"

	"github.com/noah-isme/writerpro-api/internal/profile"
)

// Learner holds the skill profile and practice activity of an authenticated user.
// The primary key is the user id carried by the bearer token.
type Learner struct {
	ID                     uint       `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Level                  string     `gorm:"size:32;not null;default:'Beginner (A1-A2)'" json:"level"`
	Grammar                int        `gorm:"not null;default:0" json:"grammar"`
	Vocabulary             int        `gorm:"not null;default:0" json:"vocabulary"`
	Structure              int        `gorm:"not null;default:0" json:"structure"`
	Creativity             int        `gorm:"not null;default:0" json:"creativity"`
	Clarity                int        `gorm:"not null;default:0" json:"clarity"`
	OverallScore           int        `gorm:"not null;default:0" json:"overall_score"`
	ExercisesCompleted     int        `gorm:"not null;default:0" json:"exercises_completed"`
	TotalWordsWritten      int        `gorm:"not null;default:0" json:"total_words_written"`
	StreakDays             int        `gorm:"not null;default:0" json:"streak_days"`
	LastActiveAt           *time.Time `json:"last_active_at"`
	HasCompletedAssessment bool       `gorm:"not null;default:false" json:"has_completed_assessment"`
	AssessmentCompletedAt  *time.Time `json:"assessment_completed_at"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

// Skills returns the learner's skill profile.
func (l Learner) Skills() profile.Skills {
	return profile.Skills{
		Grammar:    l.Grammar,
		Vocabulary: l.Vocabulary,
		Structure:  l.Structure,
		Creativity: l.Creativity,
		Clarity:    l.Clarity,
		Overall:    l.OverallScore,
	}
}

// SetSkills stores a recalculated profile on the learner.
func (l *Learner) SetSkills(skills profile.Skills) {
	skills = profile.Recalculate(skills)
	l.Grammar = skills.Grammar
	l.Vocabulary = skills.Vocabulary
	l.Structure = skills.Structure
	l.Creativity = skills.Creativity
	l.Clarity = skills.Clarity
	l.OverallScore = skills.Overall
}

// Activity returns the learner's practice counters.
func (l Learner) Activity() profile.Activity {
	return profile.Activity{
		ExercisesCompleted: l.ExercisesCompleted,
		TotalWords:         l.TotalWordsWritten,
		StreakDays:         l.StreakDays,
		LastActiveAt:       l.LastActiveAt,
	}
}

// SetActivity stores updated practice counters on the learner.
func (l *Learner) SetActivity(activity profile.Activity) {
	l.ExercisesCompleted = activity.ExercisesCompleted
	l.TotalWordsWritten = activity.TotalWords
	l.StreakDays = activity.StreakDays
	l.LastActiveAt = activity.LastActiveAt
}
