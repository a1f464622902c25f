package dto

import (
	"time"

	"github.com/noah-isme/writerpro-api/internal/models"
	"github.com/noah-isme/writerpro-api/internal/repository"
	"github.com/noah-isme/writerpro-api/internal/scoring"
)

// AnalyzeRequest is the payload for grading a writing submission.
type AnalyzeRequest struct {
	Text      string `json:"text" validate:"required,max=20000"`
	Question  string `json:"question" validate:"max=2000"`
	Level     string `json:"level" validate:"required,max=64"`
	TimeSpent int    `json:"timeSpent" validate:"gte=0"`
}

// AnalysisHistoryQuery describes query string filters for the history listing.
type AnalysisHistoryQuery struct {
	Page  int    `query:"page"`
	Limit int    `query:"limit"`
	Level string `query:"level"`
}

// AnalysisResponse is a stored analysis with its full grading payload.
type AnalysisResponse struct {
	ID uint `json:"id"`
	scoring.AnalysisResult
	Question       string    `json:"question"`
	Text           string    `json:"text"`
	Level          string    `json:"level"`
	WordCount      int       `json:"wordCount"`
	TimeSpent      int       `json:"timeSpent"`
	Source         string    `json:"source"`
	FallbackReason string    `json:"fallbackReason,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// NewAnalysisResponse maps a stored analysis to its API representation.
func NewAnalysisResponse(model models.Analysis) AnalysisResponse {
	return AnalysisResponse{
		ID:             model.ID,
		AnalysisResult: model.Result.Data(),
		Question:       model.Question,
		Text:           model.Text,
		Level:          model.Level,
		WordCount:      model.WordCount,
		TimeSpent:      model.TimeSpentSeconds,
		Source:         model.Source,
		FallbackReason: model.FallbackReason,
		CreatedAt:      model.CreatedAt,
	}
}

// AnalysisSummary is the history row for one analysis.
type AnalysisSummary struct {
	ID           uint                    `json:"id"`
	Question     string                  `json:"question"`
	Level        string                  `json:"level"`
	OverallScore int                     `json:"overallScore"`
	Scores       scoring.TestEquivalents `json:"scores"`
	Dimensions   scoring.DimensionScores `json:"dimensions"`
	WordCount    int                     `json:"wordCount"`
	TimeSpent    int                     `json:"timeSpent"`
	Source       string                  `json:"source"`
	CreatedAt    time.Time               `json:"createdAt"`
}

// NewAnalysisSummary maps a stored analysis to a history row.
func NewAnalysisSummary(model models.Analysis) AnalysisSummary {
	return AnalysisSummary{
		ID:           model.ID,
		Question:     model.Question,
		Level:        model.Level,
		OverallScore: model.OverallScore,
		Scores: scoring.TestEquivalents{
			IELTS:  model.IELTS,
			TOEFL:  model.TOEFL,
			PTE:    model.PTE,
			Custom: model.OverallScore,
		},
		Dimensions: scoring.DimensionScores{
			Grammar:      model.GrammarScore,
			Vocabulary:   model.VocabularyScore,
			Coherence:    model.CoherenceScore,
			TaskResponse: model.TaskResponseScore,
		},
		WordCount: model.WordCount,
		TimeSpent: model.TimeSpentSeconds,
		Source:    model.Source,
		CreatedAt: model.CreatedAt,
	}
}

// HistoryPagination describes the page of analyses returned.
type HistoryPagination struct {
	CurrentPage   int   `json:"currentPage"`
	TotalPages    int   `json:"totalPages"`
	TotalAnalyses int64 `json:"totalAnalyses"`
	Limit         int   `json:"limit"`
	HasNextPage   bool  `json:"hasNextPage"`
	HasPrevPage   bool  `json:"hasPrevPage"`
}

// AnalysisHistoryResponse is a page of analyses with summary statistics.
type AnalysisHistoryResponse struct {
	Analyses   []AnalysisSummary        `json:"analyses"`
	Pagination HistoryPagination        `json:"pagination"`
	Stats      repository.AnalysisStats `json:"stats"`
	LevelStats []repository.LevelStat   `json:"levelStats"`
}
