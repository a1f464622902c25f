package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/writerpro-api/internal/observability"
	"github.com/noah-isme/writerpro-api/pkg/ai"
)

// SourceHeuristic marks results produced without a scoring provider.
const SourceHeuristic = "heuristic"

type failureReason string

const (
	reasonNone               failureReason = "none"
	reasonNotConfigured      failureReason = "not_configured"
	reasonUnavailable        failureReason = "unavailable"
	reasonMalformedResponse  failureReason = "malformed_response"
	reasonIncompleteResponse failureReason = "incomplete_response"
)

// Evaluation is a finished analysis together with where it came from.
type Evaluation struct {
	Result         AnalysisResult
	Source         string
	FallbackReason string
}

// FellBack reports whether the heuristic scorer produced the result.
func (e Evaluation) FellBack() bool {
	return e.Source == SourceHeuristic
}

type providerOutcome interface {
	outcome()
}

type providerSuccess struct {
	raw    string
	result AnalysisResult
}

type providerFailure struct {
	reason failureReason
	err    error
}

func (providerSuccess) outcome() {}
func (providerFailure) outcome() {}

// Analyzer grades submissions with a scoring provider and falls back to the
// heuristic scorer whenever the provider cannot produce a usable result.
type Analyzer struct {
	provider ai.Provider
	logger   zerolog.Logger
	tracer   trace.Tracer
}

// NewAnalyzer constructs an analyzer. A nil provider means heuristic scoring only.
func NewAnalyzer(provider ai.Provider, logger zerolog.Logger) *Analyzer {
	return &Analyzer{
		provider: provider,
		logger:   logger.With().Str("component", "analyzer").Logger(),
		tracer:   otel.Tracer("github.com/noah-isme/writerpro-api/internal/scoring"),
	}
}

// Analyze grades a submission. Provider problems never surface as errors;
// only invalid input does.
func (a *Analyzer) Analyze(ctx context.Context, sub Submission) (Evaluation, error) {
	trimmed := strings.TrimSpace(sub.Text)
	if utf8.RuneCountInString(trimmed) < MinTextLength {
		return Evaluation{}, fmt.Errorf("%w: text must be at least %d characters", ErrInvalidInput, MinTextLength)
	}
	if sub.ElapsedSeconds < 0 {
		return Evaluation{}, fmt.Errorf("%w: elapsed time cannot be negative", ErrInvalidInput)
	}
	sub.Text = trimmed

	ctx, span := a.tracer.Start(ctx, "analysis.analyze")
	defer span.End()
	span.SetAttributes(
		attribute.String("analysis.level", string(sub.Level)),
		attribute.Int("analysis.word_count", WordCount(trimmed)),
	)

	prompt, err := BuildPrompt(sub)
	if err != nil {
		return Evaluation{}, err
	}

	var outcome providerOutcome
	if a.provider == nil {
		outcome = providerFailure{reason: reasonNotConfigured}
	} else {
		outcome = a.consult(ctx, prompt)
	}

	var evaluation Evaluation
	switch o := outcome.(type) {
	case providerSuccess:
		evaluation = Evaluation{Result: o.result, Source: a.provider.Name(), FallbackReason: string(reasonNone)}
		a.logger.Debug().
			Str("provider", evaluation.Source).
			Int("overall_score", o.result.OverallScore).
			Int("raw_length", len(o.raw)).
			Msg("provider analysis accepted")
	case providerFailure:
		evaluation = Evaluation{
			Result:         Heuristic(trimmed, sub.Level, sub.ElapsedSeconds),
			Source:         SourceHeuristic,
			FallbackReason: string(o.reason),
		}
		a.logFallback(o)
	}

	evaluation.Result = normalize(evaluation.Result)
	observability.AnalysisOutcomes().WithLabelValues(evaluation.Source, evaluation.FallbackReason).Inc()
	span.SetAttributes(
		attribute.String("analysis.source", evaluation.Source),
		attribute.String("analysis.fallback_reason", evaluation.FallbackReason),
		attribute.Int("analysis.overall_score", evaluation.Result.OverallScore),
	)

	return evaluation, nil
}

// consult makes the single provider call for a submission.
func (a *Analyzer) consult(ctx context.Context, prompt ai.Prompt) providerOutcome {
	raw, err := a.provider.Generate(ctx, prompt)
	if err != nil {
		return providerFailure{reason: reasonUnavailable, err: err}
	}

	payload, err := extractJSONObject(raw)
	if err != nil {
		return providerFailure{reason: reasonMalformedResponse, err: err}
	}
	if !json.Valid([]byte(payload)) {
		return providerFailure{reason: reasonMalformedResponse, err: errors.New("provider returned invalid json")}
	}
	if err := validatePayload(payload); err != nil {
		return providerFailure{reason: reasonIncompleteResponse, err: err}
	}

	result, err := decodePayload(payload)
	if err != nil {
		return providerFailure{reason: reasonMalformedResponse, err: err}
	}

	return providerSuccess{raw: raw, result: result}
}

func (a *Analyzer) logFallback(failure providerFailure) {
	event := a.logger.Warn()
	if failure.reason == reasonNotConfigured {
		event = a.logger.Debug()
	}
	if failure.err != nil {
		event = event.Err(failure.err)
	}
	event.Str("reason", string(failure.reason)).Msg("scoring provider unusable, using heuristic scorer")
}

type payloadNarrative struct {
	Score        float64  `json:"score"`
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

type providerPayload struct {
	OverallScore float64 `json:"overallScore"`
	Feedback     struct {
		Grammar struct {
			Score     float64        `json:"score"`
			Errors    []GrammarError `json:"errors"`
			Strengths []string       `json:"strengths"`
		} `json:"grammar"`
		Vocabulary struct {
			Score       float64                `json:"score"`
			Suggestions []VocabularySuggestion `json:"suggestions"`
			Strengths   []string               `json:"strengths"`
		} `json:"vocabulary"`
		Coherence    payloadNarrative `json:"coherence"`
		TaskResponse payloadNarrative `json:"taskResponse"`
	} `json:"feedback"`
	Recommendations []string `json:"recommendations"`
}

// decodePayload maps provider JSON onto the result type. Provider scores may
// carry fractions, so they are rounded here. Test equivalents are ignored and
// re-derived from the overall score during normalisation.
func decodePayload(payload string) (AnalysisResult, error) {
	var p providerPayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return AnalysisResult{}, fmt.Errorf("decode provider payload: %w", err)
	}

	return AnalysisResult{
		OverallScore: roundScore(p.OverallScore),
		Feedback: Feedback{
			Grammar: GrammarFeedback{
				Score:     roundScore(p.Feedback.Grammar.Score),
				Errors:    p.Feedback.Grammar.Errors,
				Strengths: p.Feedback.Grammar.Strengths,
			},
			Vocabulary: VocabularyFeedback{
				Score:       roundScore(p.Feedback.Vocabulary.Score),
				Suggestions: p.Feedback.Vocabulary.Suggestions,
				Strengths:   p.Feedback.Vocabulary.Strengths,
			},
			Coherence:    p.Feedback.Coherence.toNarrative(),
			TaskResponse: p.Feedback.TaskResponse.toNarrative(),
		},
		Recommendations: p.Recommendations,
	}, nil
}

func (n payloadNarrative) toNarrative() NarrativeFeedback {
	return NarrativeFeedback{
		Score:        roundScore(n.Score),
		Feedback:     n.Feedback,
		Strengths:    n.Strengths,
		Improvements: n.Improvements,
	}
}

func roundScore(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Round(math.Max(0, math.Min(100, v))))
}
