package placement

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/noah-isme/writerpro-api/internal/scoring"
)

var (
	// ErrInvalidInput indicates an attempt with nothing that can be graded.
	ErrInvalidInput = errors.New("invalid placement input")
	// ErrInvalidBands indicates a level table that does not partition the score range.
	ErrInvalidBands = errors.New("invalid level bands")
)

// CEFR is a Common European Framework of Reference level.
type CEFR string

// CEFR levels in ascending order.
const (
	A1 CEFR = "A1"
	A2 CEFR = "A2"
	B1 CEFR = "B1"
	B2 CEFR = "B2"
	C1 CEFR = "C1"
	C2 CEFR = "C2"
)

// Question categories used by the placement test.
const (
	CategoryGrammar       = "grammar"
	CategoryVocabulary    = "vocabulary"
	CategoryStructure     = "structure"
	CategoryComprehension = "comprehension"
)

// Question types. Only multiple choice questions are graded automatically.
const (
	TypeMultipleChoice    = "multiple_choice"
	TypeFillBlank         = "fill_blank"
	TypeGrammarCorrection = "grammar_correction"
)

// Categories lists the breakdown categories in display order.
func Categories() []string {
	return []string{CategoryGrammar, CategoryVocabulary, CategoryStructure, CategoryComprehension}
}

// Option is a selectable answer.
type Option struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// Question is a single placement item including its answer.
type Question struct {
	ID          int      `json:"id"`
	Question    string   `json:"question"`
	Type        string   `json:"type"`
	Category    string   `json:"category"`
	Difficulty  CEFR     `json:"difficulty"`
	Options     []Option `json:"options"`
	Explanation string   `json:"explanation,omitempty"`
	Points      int      `json:"points"`
}

// Band maps an inclusive range of correct answers to a level.
type Band struct {
	Level CEFR `json:"level"`
	Min   int  `json:"min"`
	Max   int  `json:"max"`
}

// AnswerKey is what a placement attempt is graded against.
type AnswerKey struct {
	Questions []Question `json:"questions"`
	Bands     []Band     `json:"bands"`
}

// Response is one answer in an attempt. IsCorrect is set during grading.
type Response struct {
	QuestionID       int    `json:"questionId"`
	SelectedAnswer   string `json:"selectedAnswer"`
	IsCorrect        bool   `json:"isCorrect"`
	TimeSpentSeconds int    `json:"timeSpent"`
}

// CategoryScore is the per-category tally of an attempt.
type CategoryScore struct {
	Correct    int `json:"correct"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// Breakdown holds category scores keyed by category name.
type Breakdown map[string]CategoryScore

// Result is a graded placement attempt.
type Result struct {
	TotalQuestions  int           `json:"totalQuestions"`
	CorrectAnswers  int           `json:"correctAnswers"`
	TotalScore      int           `json:"totalScore"`
	Percentage      int           `json:"percentage"`
	Level           CEFR          `json:"level"`
	UserFacingLevel scoring.Level `json:"userFriendlyLevel"`
	SkillsBreakdown Breakdown     `json:"skillsBreakdown"`
	Responses       []Response    `json:"responses"`
}

var userFacing = map[CEFR]scoring.Level{
	A1: scoring.LevelBeginner,
	A2: scoring.LevelBeginner,
	B1: scoring.LevelIntermediate,
	B2: scoring.LevelUpperIntermediate,
	C1: scoring.LevelAdvanced,
	C2: scoring.LevelAdvanced,
}

// UserFacing maps a CEFR level onto the four writing levels.
func UserFacing(level CEFR) scoring.Level {
	if mapped, ok := userFacing[level]; ok {
		return mapped
	}
	return scoring.LevelBeginner
}

// Score grades responses against key. Responses for unknown questions are
// ignored and a repeated question id is graded once, first answer wins.
func Score(responses []Response, key AnswerKey) (Result, error) {
	if err := ValidateBands(key.Bands, len(key.Questions)); err != nil {
		return Result{}, err
	}

	questions := make(map[int]Question, len(key.Questions))
	for _, q := range key.Questions {
		questions[q.ID] = q
	}

	breakdown := make(Breakdown, len(Categories()))
	for _, category := range Categories() {
		breakdown[category] = CategoryScore{}
	}

	result := Result{Responses: make([]Response, 0, len(responses))}
	seen := make(map[int]struct{}, len(responses))

	for _, response := range responses {
		question, ok := questions[response.QuestionID]
		if !ok {
			continue
		}
		if _, dup := seen[response.QuestionID]; dup {
			continue
		}
		seen[response.QuestionID] = struct{}{}

		if response.TimeSpentSeconds < 0 {
			response.TimeSpentSeconds = 0
		}
		response.IsCorrect = isCorrect(question, response.SelectedAnswer)

		result.TotalQuestions++
		tally := breakdown[question.Category]
		tally.Total++
		if response.IsCorrect {
			result.CorrectAnswers++
			result.TotalScore += points(question)
			tally.Correct++
		}
		breakdown[question.Category] = tally
		result.Responses = append(result.Responses, response)
	}

	if result.TotalQuestions == 0 {
		return Result{}, fmt.Errorf("%w: no responses match the assessment", ErrInvalidInput)
	}

	for category, tally := range breakdown {
		tally.Percentage = percent(tally.Correct, tally.Total)
		breakdown[category] = tally
	}

	result.Percentage = percent(result.CorrectAnswers, result.TotalQuestions)
	result.Level = lookupLevel(key.Bands, result.CorrectAnswers)
	result.UserFacingLevel = UserFacing(result.Level)
	result.SkillsBreakdown = breakdown

	return result, nil
}

// ValidateBands checks that bands cover [0, maxScore] without gaps or overlaps.
func ValidateBands(bands []Band, maxScore int) error {
	if len(bands) == 0 {
		return fmt.Errorf("%w: no bands", ErrInvalidBands)
	}

	sorted := sortedBands(bands)
	next := 0
	for i := len(sorted) - 1; i >= 0; i-- {
		band := sorted[i]
		if band.Min > band.Max {
			return fmt.Errorf("%w: %s has min %d above max %d", ErrInvalidBands, band.Level, band.Min, band.Max)
		}
		if band.Min != next {
			return fmt.Errorf("%w: %s starts at %d, expected %d", ErrInvalidBands, band.Level, band.Min, next)
		}
		next = band.Max + 1
	}
	if next-1 != maxScore {
		return fmt.Errorf("%w: bands end at %d, expected %d", ErrInvalidBands, next-1, maxScore)
	}

	return nil
}

// DefaultBands is the level table for the 15-question test.
func DefaultBands() []Band {
	return []Band{
		{Level: A1, Min: 0, Max: 3},
		{Level: A2, Min: 4, Max: 6},
		{Level: B1, Min: 7, Max: 9},
		{Level: B2, Min: 10, Max: 12},
		{Level: C1, Min: 13, Max: 14},
		{Level: C2, Min: 15, Max: 15},
	}
}

// lookupLevel walks bands from the highest minimum down.
func lookupLevel(bands []Band, correct int) CEFR {
	sorted := sortedBands(bands)
	for _, band := range sorted {
		if band.Min <= correct {
			return band.Level
		}
	}
	return sorted[len(sorted)-1].Level
}

// sortedBands returns a copy ordered by descending minimum.
func sortedBands(bands []Band) []Band {
	sorted := append([]Band(nil), bands...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Min > sorted[j].Min
	})
	return sorted
}

func isCorrect(question Question, selected string) bool {
	if question.Type != TypeMultipleChoice {
		return false
	}
	selected = strings.TrimSpace(selected)
	if selected == "" {
		return false
	}
	for _, option := range question.Options {
		if strings.TrimSpace(option.Text) == selected {
			return option.IsCorrect
		}
	}
	return false
}

func points(question Question) int {
	if question.Points <= 0 {
		return 1
	}
	return question.Points
}

func percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
