package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/noah-isme/writerpro-api/internal/scoring"
)

// Analysis is a graded writing submission.
type Analysis struct {
	ID                uint                                       `gorm:"primaryKey" json:"id"`
	LearnerID         uint                                       `gorm:"not null;index:idx_analyses_learner_created" json:"learner_id"`
	Question          string                                     `gorm:"type:text" json:"question"`
	Text              string                                     `gorm:"type:text;not null" json:"text"`
	Level             string                                     `gorm:"size:32;not null;index" json:"level"`
	WordCount         int                                        `gorm:"not null" json:"word_count"`
	TimeSpentSeconds  int                                        `gorm:"not null;default:0" json:"time_spent_seconds"`
	OverallScore      int                                        `gorm:"not null" json:"overall_score"`
	GrammarScore      int                                        `gorm:"not null" json:"grammar_score"`
	VocabularyScore   int                                        `gorm:"not null" json:"vocabulary_score"`
	CoherenceScore    int                                        `gorm:"not null" json:"coherence_score"`
	TaskResponseScore int                                        `gorm:"not null" json:"task_response_score"`
	IELTS             float64                                    `gorm:"column:ielts;not null" json:"ielts"`
	TOEFL             int                                        `gorm:"column:toefl;not null" json:"toefl"`
	PTE               int                                        `gorm:"column:pte;not null" json:"pte"`
	Source            string                                     `gorm:"size:32;not null" json:"source"`
	FallbackReason    string                                     `gorm:"size:32" json:"fallback_reason"`
	Result            datatypes.JSONType[scoring.AnalysisResult] `gorm:"type:json" json:"result"`
	CreatedAt         time.Time                                  `gorm:"index:idx_analyses_learner_created" json:"created_at"`
	UpdatedAt         time.Time                                  `json:"updated_at"`
}

// NewAnalysis builds the stored form of an evaluation.
func NewAnalysis(learnerID uint, sub scoring.Submission, evaluation scoring.Evaluation) Analysis {
	result := evaluation.Result
	dims := result.Dimensions()
	return Analysis{
		LearnerID:         learnerID,
		Question:          sub.Question,
		Text:              sub.Text,
		Level:             string(sub.Level),
		WordCount:         scoring.WordCount(sub.Text),
		TimeSpentSeconds:  sub.ElapsedSeconds,
		OverallScore:      result.OverallScore,
		GrammarScore:      dims.Grammar,
		VocabularyScore:   dims.Vocabulary,
		CoherenceScore:    dims.Coherence,
		TaskResponseScore: dims.TaskResponse,
		IELTS:             result.Scores.IELTS,
		TOEFL:             result.Scores.TOEFL,
		PTE:               result.Scores.PTE,
		Source:            evaluation.Source,
		FallbackReason:    evaluation.FallbackReason,
		Result:            datatypes.NewJSONType(result),
	}
}
