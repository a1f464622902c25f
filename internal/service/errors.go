package service

import "errors"

var (
	// ErrAnalysisNotFound indicates the analysis does not exist for the learner.
	ErrAnalysisNotFound = errors.New("analysis not found")
	// ErrAssessmentNotFound indicates the requested placement test does not exist.
	ErrAssessmentNotFound = errors.New("assessment not found")
	// ErrPlacementNotFound indicates the learner has no placement attempt yet.
	ErrPlacementNotFound = errors.New("placement attempt not found")
	// ErrExerciseNotFound indicates no active exercise sits at the requested position.
	ErrExerciseNotFound = errors.New("exercise not found")
	// ErrUnknownLevel indicates a level filter that names no supported level.
	ErrUnknownLevel = errors.New("unknown level")
)
