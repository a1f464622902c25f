package exercise

import (
	"fmt"

	"github.com/noah-isme/writerpro-api/internal/scoring"
)

// Exercise is a writing task. Within a level, Index is the position the
// completion tracker refers to as the exercise index.
type Exercise struct {
	Level            scoring.Level `json:"level"`
	Index            int           `json:"exerciseIndex"`
	Title            string        `json:"title"`
	Type             string        `json:"type"`
	Category         string        `json:"category"`
	Instructions     string        `json:"instructions"`
	Prompt           string        `json:"prompt"`
	MinWords         int           `json:"minWords"`
	MaxWords         int           `json:"maxWords"`
	TimeLimitMinutes int           `json:"timeLimitMinutes"`
	Keywords         []string      `json:"keywords"`
}

// Exercise types.
const (
	TypeEssay         = "essay"
	TypeStory         = "story"
	TypeLetter        = "letter"
	TypeReport        = "report"
	TypeDescription   = "description"
	TypeArgumentative = "argumentative"
	TypeSummary       = "summary"
)

// Exercise categories.
const (
	CategoryWriting  = "writing"
	CategoryCreative = "creative"
	CategoryBusiness = "business"
	CategoryAcademic = "academic"
)

type task struct {
	title, kind, category, prompt string
	minWords, maxWords, minutes   int
	keywords                      []string
}

// DefaultCatalogue returns the built-in exercises for every level, indexed
// from zero within each level.
func DefaultCatalogue() []Exercise {
	tasks := map[scoring.Level][]task{
		scoring.LevelBeginner: {
			{"My Daily Routine", TypeDescription, CategoryWriting, "Describe what you do on a normal weekday, from morning to evening.", 50, 150, 15, []string{"morning", "usually", "then"}},
			{"A Letter to a Friend", TypeLetter, CategoryWriting, "Write a short letter to a friend inviting them to your birthday party.", 50, 150, 15, []string{"invite", "party", "date"}},
			{"My Favourite Place", TypeDescription, CategoryCreative, "Describe a place you like to visit and explain why you like it.", 50, 150, 15, []string{"because", "beautiful", "visit"}},
		},
		scoring.LevelIntermediate: {
			{"A Memorable Trip", TypeStory, CategoryCreative, "Tell the story of a trip that you remember well. What happened and how did you feel?", 100, 250, 25, []string{"journey", "suddenly", "finally"}},
			{"Complaint Email", TypeLetter, CategoryBusiness, "Write an email to a shop about a product that arrived damaged. Ask for a solution.", 100, 250, 25, []string{"refund", "order", "disappointed"}},
			{"Technology at School", TypeEssay, CategoryAcademic, "Should students be allowed to use phones in class? Give reasons for your opinion.", 120, 280, 30, []string{"advantage", "disadvantage", "opinion"}},
		},
		scoring.LevelUpperIntermediate: {
			{"Remote Work", TypeArgumentative, CategoryAcademic, "Discuss whether remote work benefits employees more than employers.", 200, 350, 35, []string{"productivity", "balance", "however"}},
			{"Survey Report", TypeReport, CategoryBusiness, "Write a report summarising the results of a staff satisfaction survey and recommend changes.", 200, 350, 35, []string{"findings", "recommend", "percentage"}},
			{"Article Summary", TypeSummary, CategoryAcademic, "Summarise an article you have read recently about the environment and evaluate its argument.", 180, 320, 30, []string{"author", "claims", "evidence"}},
		},
		scoring.LevelAdvanced: {
			{"Artificial Intelligence and Work", TypeArgumentative, CategoryAcademic, "To what extent will artificial intelligence reshape the labour market? Support your position with examples.", 250, 500, 40, []string{"automation", "consequently", "nevertheless"}},
			{"Policy Proposal", TypeReport, CategoryBusiness, "Propose a policy to reduce traffic congestion in a large city and assess its likely impact.", 250, 500, 40, []string{"implementation", "stakeholders", "impact"}},
			{"A Turning Point", TypeStory, CategoryCreative, "Write a narrative about a character facing a decision that changes their life.", 250, 500, 40, []string{"dilemma", "reflection", "resolution"}},
		},
	}

	var catalogue []Exercise
	for _, level := range scoring.Levels() {
		for i, t := range tasks[level] {
			catalogue = append(catalogue, Exercise{
				Level:            level,
				Index:            i,
				Title:            t.title,
				Type:             t.kind,
				Category:         t.category,
				Instructions:     instructionsFor(t.minWords, t.maxWords, t.minutes),
				Prompt:           t.prompt,
				MinWords:         t.minWords,
				MaxWords:         t.maxWords,
				TimeLimitMinutes: t.minutes,
				Keywords:         t.keywords,
			})
		}
	}
	return catalogue
}

func instructionsFor(minWords, maxWords, minutes int) string {
	return fmt.Sprintf("Write between %d and %d words. You have %d minutes.", minWords, maxWords, minutes)
}
