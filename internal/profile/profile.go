package profile

import (
	"math"
	"time"

	"github.com/noah-isme/writerpro-api/internal/placement"
	"github.com/noah-isme/writerpro-api/internal/scoring"
)

const (
	historyWeight  = 0.8
	evidenceWeight = 0.2
)

// Skills is a learner's rolling skill profile. Every value lies in [0,100].
type Skills struct {
	Grammar    int `json:"grammar"`
	Vocabulary int `json:"vocabulary"`
	Structure  int `json:"structure"`
	Creativity int `json:"creativity"`
	Clarity    int `json:"clarity"`
	Overall    int `json:"overallScore"`
}

// Activity tracks practice volume and the daily streak.
type Activity struct {
	ExercisesCompleted int        `json:"exercisesCompleted"`
	TotalWords         int        `json:"totalWordsWritten"`
	StreakDays         int        `json:"streakDays"`
	LastActiveAt       *time.Time `json:"lastActiveAt,omitempty"`
}

// Update folds an analysis into the profile with an exponential moving
// average. Coherence drives structure and task response drives clarity;
// creativity is left untouched.
func Update(skills Skills, dims scoring.DimensionScores) Skills {
	skills.Grammar = blend(skills.Grammar, dims.Grammar)
	skills.Vocabulary = blend(skills.Vocabulary, dims.Vocabulary)
	skills.Structure = blend(skills.Structure, dims.Coherence)
	skills.Clarity = blend(skills.Clarity, dims.TaskResponse)
	return Recalculate(skills)
}

// SeedFromPlacement replaces the tested dimensions with the placement
// category percentages. Comprehension seeds clarity.
func SeedFromPlacement(skills Skills, breakdown placement.Breakdown) Skills {
	if score, ok := breakdown[placement.CategoryGrammar]; ok {
		skills.Grammar = bound(score.Percentage)
	}
	if score, ok := breakdown[placement.CategoryVocabulary]; ok {
		skills.Vocabulary = bound(score.Percentage)
	}
	if score, ok := breakdown[placement.CategoryStructure]; ok {
		skills.Structure = bound(score.Percentage)
	}
	if score, ok := breakdown[placement.CategoryComprehension]; ok {
		skills.Clarity = bound(score.Percentage)
	}
	return Recalculate(skills)
}

// Recalculate clamps every dimension and derives the overall score as the
// rounded mean of the five dimensions.
func Recalculate(skills Skills) Skills {
	skills.Grammar = bound(skills.Grammar)
	skills.Vocabulary = bound(skills.Vocabulary)
	skills.Structure = bound(skills.Structure)
	skills.Creativity = bound(skills.Creativity)
	skills.Clarity = bound(skills.Clarity)

	sum := skills.Grammar + skills.Vocabulary + skills.Structure + skills.Creativity + skills.Clarity
	skills.Overall = int(math.Round(float64(sum) / 5))
	return skills
}

// RecordSubmission counts a graded submission and advances the streak.
// Days are compared as UTC calendar dates.
func RecordSubmission(activity Activity, words int, now time.Time) Activity {
	if words < 0 {
		words = 0
	}
	activity.ExercisesCompleted++
	activity.TotalWords += words

	today := day(now)
	if activity.LastActiveAt == nil {
		activity.StreakDays = 1
	} else {
		last := day(*activity.LastActiveAt)
		switch {
		case today.Equal(last.AddDate(0, 0, 1)):
			activity.StreakDays++
		case today.After(last):
			activity.StreakDays = 1
		case today.Equal(last) && activity.StreakDays == 0:
			activity.StreakDays = 1
		}
	}

	if activity.LastActiveAt == nil || now.After(*activity.LastActiveAt) {
		stamp := now.UTC()
		activity.LastActiveAt = &stamp
	}
	return activity
}

func blend(current, incoming int) int {
	value := float64(bound(current))*historyWeight + float64(bound(incoming))*evidenceWeight
	return bound(int(math.Round(value)))
}

func bound(value int) int {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}

func day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
