package scoring

import "math"

// AnalysisResult is the full grading payload returned for a submission.
type AnalysisResult struct {
	OverallScore    int             `json:"overallScore"`
	Scores          TestEquivalents `json:"scores"`
	Feedback        Feedback        `json:"feedback"`
	Recommendations []string        `json:"recommendations"`
}

// TestEquivalents maps the overall score onto standard exam scales.
type TestEquivalents struct {
	IELTS  float64 `json:"ielts"`
	TOEFL  int     `json:"toefl"`
	PTE    int     `json:"pte"`
	Custom int     `json:"custom"`
}

// Feedback groups the four graded dimensions.
type Feedback struct {
	Grammar      GrammarFeedback    `json:"grammar"`
	Vocabulary   VocabularyFeedback `json:"vocabulary"`
	Coherence    NarrativeFeedback  `json:"coherence"`
	TaskResponse NarrativeFeedback  `json:"taskResponse"`
}

// GrammarFeedback holds the grammar score and the detected errors.
type GrammarFeedback struct {
	Score     int            `json:"score"`
	Errors    []GrammarError `json:"errors"`
	Strengths []string       `json:"strengths"`
}

// GrammarError describes a single grammar mistake and its correction.
type GrammarError struct {
	Type        string `json:"type"`
	Original    string `json:"original"`
	Corrected   string `json:"corrected"`
	Explanation string `json:"explanation"`
}

// VocabularyFeedback holds the vocabulary score and word suggestions.
type VocabularyFeedback struct {
	Score       int                    `json:"score"`
	Suggestions []VocabularySuggestion `json:"suggestions"`
	Strengths   []string               `json:"strengths"`
}

// VocabularySuggestion proposes alternatives for a word in the submission.
type VocabularySuggestion struct {
	Word         string   `json:"word"`
	Alternatives []string `json:"alternatives"`
	Context      string   `json:"context"`
}

// NarrativeFeedback is used for coherence and task response.
type NarrativeFeedback struct {
	Score        int      `json:"score"`
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// DimensionScores is the flat view of the four graded dimensions.
type DimensionScores struct {
	Grammar      int `json:"grammar"`
	Vocabulary   int `json:"vocabulary"`
	Coherence    int `json:"coherence"`
	TaskResponse int `json:"taskResponse"`
}

// Dimensions returns the four dimension scores.
func (r AnalysisResult) Dimensions() DimensionScores {
	return DimensionScores{
		Grammar:      r.Feedback.Grammar.Score,
		Vocabulary:   r.Feedback.Vocabulary.Score,
		Coherence:    r.Feedback.Coherence.Score,
		TaskResponse: r.Feedback.TaskResponse.Score,
	}
}

// Equivalents scales an overall score in [0,100] onto IELTS, TOEFL and PTE.
func Equivalents(overall int) TestEquivalents {
	overall = clampInt(overall, 0, 100)
	ratio := float64(overall) / 100
	return TestEquivalents{
		IELTS:  math.Round(ratio*9*10) / 10,
		TOEFL:  int(math.Round(ratio * 120)),
		PTE:    int(math.Round(ratio * 90)),
		Custom: overall,
	}
}

const maxRecommendations = 5

// normalize clamps every score into range and re-derives the exam
// equivalents from the overall score.
func normalize(result AnalysisResult) AnalysisResult {
	result.OverallScore = clampInt(result.OverallScore, 0, 100)
	result.Scores = Equivalents(result.OverallScore)
	result.Feedback.Grammar.Score = clampInt(result.Feedback.Grammar.Score, 0, 100)
	result.Feedback.Vocabulary.Score = clampInt(result.Feedback.Vocabulary.Score, 0, 100)
	result.Feedback.Coherence.Score = clampInt(result.Feedback.Coherence.Score, 0, 100)
	result.Feedback.TaskResponse.Score = clampInt(result.Feedback.TaskResponse.Score, 0, 100)

	if len(result.Recommendations) > maxRecommendations {
		result.Recommendations = result.Recommendations[:maxRecommendations]
	}
	if result.Recommendations == nil {
		result.Recommendations = []string{}
	}
	if result.Feedback.Grammar.Errors == nil {
		result.Feedback.Grammar.Errors = []GrammarError{}
	}
	if result.Feedback.Vocabulary.Suggestions == nil {
		result.Feedback.Vocabulary.Suggestions = []VocabularySuggestion{}
	}
	result.Feedback.Grammar.Strengths = orEmpty(result.Feedback.Grammar.Strengths)
	result.Feedback.Vocabulary.Strengths = orEmpty(result.Feedback.Vocabulary.Strengths)
	result.Feedback.Coherence.Strengths = orEmpty(result.Feedback.Coherence.Strengths)
	result.Feedback.Coherence.Improvements = orEmpty(result.Feedback.Coherence.Improvements)
	result.Feedback.TaskResponse.Strengths = orEmpty(result.Feedback.TaskResponse.Strengths)
	result.Feedback.TaskResponse.Improvements = orEmpty(result.Feedback.TaskResponse.Improvements)

	return result
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func clampInt(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
