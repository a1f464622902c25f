package dto

// CompletionRequest links a completed exercise to the analysis that graded it.
type CompletionRequest struct {
	AnalysisID uint `json:"analysisId" validate:"required,gt=0"`
}

// CompletionResponse reports the outcome of marking an exercise completed.
type CompletionResponse struct {
	Level         string `json:"level"`
	ExerciseIndex int    `json:"exerciseIndex"`
	AnalysisID    uint   `json:"analysisId"`
	Status        string `json:"status"`
}

// CompletedListResponse lists the completed exercise indexes at a level.
type CompletedListResponse struct {
	Level              string `json:"level"`
	CompletedQuestions []int  `json:"completedQuestions"`
}

// CompletionStatusResponse reports whether a single exercise is completed.
type CompletionStatusResponse struct {
	Level         string `json:"level"`
	ExerciseIndex int    `json:"exerciseIndex"`
	IsCompleted   bool   `json:"isCompleted"`
}
