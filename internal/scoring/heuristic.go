package scoring

import (
	"math"
	"strings"
	"unicode/utf8"
)

const (
	baseGrammar      = 70
	baseVocabulary   = 65
	baseCoherence    = 75
	baseTaskResponse = 70

	complexSentenceBonus = 10
	variedVocabBonus     = 15
	longResponseBonus    = 10
	extendedBonus        = 5

	longResponseWords     = 150
	extendedResponseWords = 250
	developedWords        = 200
	shortResponseWords    = 150

	variedVocabularyRatio = 0.7
)

var complexMarkers = []string{",", ";", "because", "although"}

var grammarCatalogue = []GrammarError{
	{
		Type:        "Subject-Verb Agreement",
		Original:    "The people was walking",
		Corrected:   "The people were walking",
		Explanation: "Plural subject 'people' requires plural verb 'were'",
	},
	{
		Type:        "Article Usage",
		Original:    "I went to school yesterday",
		Corrected:   "I went to the school yesterday",
		Explanation: "Use definite article 'the' when referring to a specific school",
	},
}

var vocabularyCatalogue = []VocabularySuggestion{
	{
		Word:         "good",
		Alternatives: []string{"excellent", "outstanding", "remarkable"},
		Context:      "Consider using more sophisticated vocabulary",
	},
	{
		Word:         "very",
		Alternatives: []string{"extremely", "exceptionally", "tremendously"},
		Context:      "Avoid overusing basic intensifiers",
	},
}

var cannedRecommendations = []string{
	"Practice using more varied vocabulary",
	"Focus on complex sentence structures",
	"Use linking words to improve coherence",
	"Provide specific examples to support your points",
	"Expand your writing to meet length requirements",
}

const heuristicRecommendations = 4

// TextFeatures are the surface measurements the heuristic scorer relies on.
type TextFeatures struct {
	WordCount           int
	ComplexSentences    bool
	VocabularyRichness  float64
	VariedVocabulary    bool
	CatalogueSampleSize int
}

// Features measures text the way the heuristic scorer sees it.
func Features(text string) TextFeatures {
	tokens := strings.Fields(text)
	lowered := strings.ToLower(text)

	features := TextFeatures{WordCount: len(tokens), CatalogueSampleSize: 1}

	for _, marker := range complexMarkers {
		if strings.Contains(lowered, marker) {
			features.ComplexSentences = true
			break
		}
	}

	if len(tokens) > 0 {
		distinct := make(map[string]struct{}, len(tokens))
		for _, token := range tokens {
			distinct[strings.ToLower(token)] = struct{}{}
		}
		features.VocabularyRichness = float64(len(distinct)) / float64(len(tokens))
	}
	features.VariedVocabulary = features.VocabularyRichness > variedVocabularyRatio

	if utf8.RuneCountInString(strings.TrimSpace(text))%2 == 1 {
		features.CatalogueSampleSize = 2
	}

	return features
}

// Heuristic scores text from surface features alone. It performs no I/O and
// returns the same result for the same input.
func Heuristic(text string, level Level, elapsedSeconds int) AnalysisResult {
	features := Features(text)
	multiplier := level.multiplier()

	grammar := baseGrammar
	if features.ComplexSentences {
		grammar += complexSentenceBonus
	}
	vocabulary := baseVocabulary
	if features.VariedVocabulary {
		vocabulary += variedVocabBonus
	}
	taskResponse := baseTaskResponse
	if features.WordCount > longResponseWords {
		taskResponse += longResponseBonus
	}
	if features.WordCount > extendedResponseWords {
		taskResponse += extendedBonus
	}

	dims := DimensionScores{
		Grammar:      scaleScore(grammar, multiplier),
		Vocabulary:   scaleScore(vocabulary, multiplier),
		Coherence:    scaleScore(baseCoherence, multiplier),
		TaskResponse: scaleScore(taskResponse, multiplier),
	}

	overall := int(math.Round(float64(dims.Grammar+dims.Vocabulary+dims.Coherence+dims.TaskResponse) / 4))

	return AnalysisResult{
		OverallScore: overall,
		Scores:       Equivalents(overall),
		Feedback: Feedback{
			Grammar: GrammarFeedback{
				Score:     dims.Grammar,
				Errors:    append([]GrammarError(nil), grammarCatalogue[:features.CatalogueSampleSize]...),
				Strengths: grammarStrengths(features),
			},
			Vocabulary: VocabularyFeedback{
				Score:       dims.Vocabulary,
				Suggestions: copySuggestions(vocabularyCatalogue[:features.CatalogueSampleSize]),
				Strengths:   vocabularyStrengths(features),
			},
			Coherence: NarrativeFeedback{
				Score:        dims.Coherence,
				Feedback:     coherenceFeedback(features),
				Strengths:    []string{"Clear paragraph structure", "Logical flow"},
				Improvements: []string{"Add more transitional phrases", "Strengthen connections between ideas"},
			},
			TaskResponse: NarrativeFeedback{
				Score:        dims.TaskResponse,
				Feedback:     taskResponseFeedback(features),
				Strengths:    []string{"Relevant content", "Stays on topic"},
				Improvements: taskResponseImprovements(features),
			},
		},
		Recommendations: append([]string(nil), cannedRecommendations[:heuristicRecommendations]...),
	}
}

func scaleScore(base int, multiplier float64) int {
	scaled := int(math.Round(float64(base) * multiplier))
	return clampInt(scaled, 0, 100)
}

func grammarStrengths(f TextFeatures) []string {
	if f.ComplexSentences {
		return []string{"Good use of complex sentences", "Varied sentence structure"}
	}
	return []string{"Clear simple sentences", "Basic structure maintained"}
}

func vocabularyStrengths(f TextFeatures) []string {
	if f.VariedVocabulary {
		return []string{"Good vocabulary range", "Appropriate word choice"}
	}
	return []string{"Basic vocabulary used correctly", "Clear expression"}
}

func coherenceFeedback(f TextFeatures) string {
	if f.WordCount > developedWords {
		return "Good organization and flow. Consider using more linking words for better coherence."
	}
	return "Basic organization present. Try to expand ideas and use more connecting words."
}

func taskResponseFeedback(f TextFeatures) string {
	if f.WordCount > developedWords {
		return "Good response to the question with relevant content."
	}
	return "Addresses the question but could be more detailed and comprehensive."
}

func taskResponseImprovements(f TextFeatures) []string {
	if f.WordCount < shortResponseWords {
		return []string{"Provide more detailed examples", "Expand on main points"}
	}
	return []string{"Add more specific examples", "Strengthen conclusion"}
}

func copySuggestions(src []VocabularySuggestion) []VocabularySuggestion {
	out := make([]VocabularySuggestion, len(src))
	for i, s := range src {
		s.Alternatives = append([]string(nil), s.Alternatives...)
		out[i] = s
	}
	return out
}
