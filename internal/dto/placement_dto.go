package dto

import (
	"time"

	"github.com/noah-isme/writerpro-api/internal/models"
	"github.com/noah-isme/writerpro-api/internal/placement"
)

// PlacementAnswer is a single answer in a placement submission.
type PlacementAnswer struct {
	QuestionID     int    `json:"questionId" validate:"required,gt=0"`
	SelectedAnswer string `json:"selectedAnswer" validate:"max=500"`
	TimeSpent      int    `json:"timeSpent" validate:"gte=0"`
}

// PlacementTimeData carries client-side timing of the attempt.
type PlacementTimeData struct {
	StartedAt      *time.Time `json:"startedAt"`
	CompletedAt    *time.Time `json:"completedAt"`
	TotalTimeSpent int        `json:"totalTimeSpent" validate:"gte=0"`
}

// PlacementSubmitRequest is the payload for grading a placement attempt.
// A zero AssessmentID grades against the active assessment.
type PlacementSubmitRequest struct {
	AssessmentID uint              `json:"assessmentId"`
	Responses    []PlacementAnswer `json:"responses" validate:"required,min=1,max=200,dive"`
	TimeData     PlacementTimeData `json:"timeData"`
}

// AssessmentResponse is the public view of a placement test.
type AssessmentResponse struct {
	ID             uint                       `json:"id"`
	Title          string                     `json:"title"`
	Description    string                     `json:"description"`
	Version        string                     `json:"version"`
	TotalQuestions int                        `json:"totalQuestions"`
	Questions      []placement.PublicQuestion `json:"questions"`
}

// NewAssessmentResponse strips the answer key from a stored assessment.
func NewAssessmentResponse(model models.Assessment) AssessmentResponse {
	return AssessmentResponse{
		ID:             model.ID,
		Title:          model.Title,
		Description:    model.Description,
		Version:        model.Version,
		TotalQuestions: len(model.Questions),
		Questions:      placement.Sanitize(model.Questions),
	}
}

// PlacementAttemptResponse is a graded placement attempt.
type PlacementAttemptResponse struct {
	ID           uint `json:"id"`
	AssessmentID uint `json:"assessmentId"`
	placement.Result
	StartedAt      time.Time `json:"startedAt"`
	CompletedAt    time.Time `json:"completedAt"`
	TotalTimeSpent int       `json:"totalTimeSpent"`
	Status         string    `json:"status"`
	IsLatest       bool      `json:"isLatest"`
	CreatedAt      time.Time `json:"createdAt"`
}

// NewPlacementAttemptResponse maps a stored attempt to its API representation.
func NewPlacementAttemptResponse(model models.PlacementAttempt) PlacementAttemptResponse {
	return PlacementAttemptResponse{
		ID:           model.ID,
		AssessmentID: model.AssessmentID,
		Result: placement.Result{
			TotalQuestions:  model.TotalQuestions,
			CorrectAnswers:  model.CorrectAnswers,
			TotalScore:      model.TotalScore,
			Percentage:      model.Percentage,
			Level:           placement.CEFR(model.Level),
			UserFacingLevel: placement.UserFacing(placement.CEFR(model.Level)),
			SkillsBreakdown: model.SkillsBreakdown.Data(),
			Responses:       []placement.Response(model.Responses),
		},
		StartedAt:      model.StartedAt,
		CompletedAt:    model.CompletedAt,
		TotalTimeSpent: model.TotalTimeSpent,
		Status:         model.Status,
		IsLatest:       model.IsLatest,
		CreatedAt:      model.CreatedAt,
	}
}

// NewPlacementAttemptResponseSlice maps stored attempts to API representations.
func NewPlacementAttemptResponseSlice(attempts []models.PlacementAttempt) []PlacementAttemptResponse {
	result := make([]PlacementAttemptResponse, 0, len(attempts))
	for _, attempt := range attempts {
		result = append(result, NewPlacementAttemptResponse(attempt))
	}
	return result
}

// PlacementStatusResponse reports whether the learner has been placed.
type PlacementStatusResponse struct {
	HasCompletedAssessment bool                      `json:"hasCompletedAssessment"`
	CompletedAt            *time.Time                `json:"completedAt,omitempty"`
	Level                  string                    `json:"level"`
	LatestAttempt          *PlacementAttemptResponse `json:"latestAttempt,omitempty"`
}
