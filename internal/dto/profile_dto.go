package dto

import (
	"time"

	"github.com/noah-isme/writerpro-api/internal/models"
	"github.com/noah-isme/writerpro-api/internal/profile"
)

// ProfileResponse is the learner's skill profile and practice activity.
type ProfileResponse struct {
	UserID                 uint             `json:"userId"`
	Level                  string           `json:"level"`
	Skills                 profile.Skills   `json:"skills"`
	Activity               profile.Activity `json:"activity"`
	HasCompletedAssessment bool             `json:"hasCompletedAssessment"`
	AssessmentCompletedAt  *time.Time       `json:"assessmentCompletedAt,omitempty"`
}

// NewProfileResponse maps a learner to its API representation.
func NewProfileResponse(learner models.Learner) ProfileResponse {
	return ProfileResponse{
		UserID:                 learner.ID,
		Level:                  learner.Level,
		Skills:                 learner.Skills(),
		Activity:               learner.Activity(),
		HasCompletedAssessment: learner.HasCompletedAssessment,
		AssessmentCompletedAt:  learner.AssessmentCompletedAt,
	}
}
