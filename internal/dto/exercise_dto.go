package dto

import "github.com/noah-isme/writerpro-api/internal/exercise"

// ExerciseQuery describes query string filters for the exercise catalogue.
type ExerciseQuery struct {
	Level    string `query:"level"`
	Type     string `query:"type"`
	Category string `query:"category"`
}

// ExerciseResponse is a catalogued exercise with the learner's completion state.
type ExerciseResponse struct {
	exercise.Exercise
	Completed bool `json:"completed"`
}
