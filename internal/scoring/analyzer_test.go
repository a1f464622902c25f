package scoring

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/writerpro-api/pkg/ai"
)

type stubProvider struct {
	response string
	err      error
	calls    atomic.Int32
	prompts  []ai.Prompt
}

func (s *stubProvider) Generate(ctx context.Context, prompt ai.Prompt) (string, error) {
	s.calls.Add(1)
	s.prompts = append(s.prompts, prompt)
	return s.response, s.err
}

func (s *stubProvider) Name() string {
	return "stub"
}

const validProviderResponse = "Here is my assessment:\n```json\n" + `{
  "overallScore": 70,
  "scores": {"ielts": 9, "toefl": 1, "pte": 2, "custom": 3},
  "feedback": {
    "grammar": {"score": 72.4, "errors": [{"type": "Tense", "original": "It make", "corrected": "It makes", "explanation": "Third person singular"}], "strengths": ["Clear sentences"]},
    "vocabulary": {"score": 140, "suggestions": [], "strengths": []},
    "coherence": {"score": 65, "feedback": "Use more linking words {like however}.", "strengths": [], "improvements": []},
    "taskResponse": {"score": 68, "feedback": "On topic.", "strengths": ["Relevant"], "improvements": ["Add examples"]}
  },
  "recommendations": ["a", "b", "c", "d", "e", "f"]
}` + "\n```\nLet me know if you need more."

func newSubmission() Submission {
	return Submission{
		Text:           "  Technology is very good for education because it makes learning easier.  ",
		Question:       "Is technology good for education?",
		Level:          LevelIntermediate,
		ElapsedSeconds: 180,
	}
}

func TestAnalyzerUsesProviderResult(t *testing.T) {
	provider := &stubProvider{response: validProviderResponse}
	analyzer := NewAnalyzer(provider, zerolog.Nop())

	evaluation, err := analyzer.Analyze(context.Background(), newSubmission())
	require.NoError(t, err)
	require.Equal(t, int32(1), provider.calls.Load())
	require.Equal(t, "stub", evaluation.Source)
	require.False(t, evaluation.FellBack())

	result := evaluation.Result
	require.Equal(t, 70, result.OverallScore)
	require.Equal(t, Equivalents(70), result.Scores)
	require.Equal(t, 72, result.Feedback.Grammar.Score)
	require.Equal(t, 100, result.Feedback.Vocabulary.Score)
	require.Equal(t, "Use more linking words {like however}.", result.Feedback.Coherence.Feedback)
	require.Len(t, result.Feedback.Grammar.Errors, 1)
	require.Len(t, result.Recommendations, maxRecommendations)

	require.Len(t, provider.prompts, 1)
	require.True(t, provider.prompts[0].JSON)
	require.Contains(t, provider.prompts[0].User, "Is technology good for education?")
}

func TestAnalyzerFallsBackWithoutProvider(t *testing.T) {
	analyzer := NewAnalyzer(nil, zerolog.Nop())
	sub := newSubmission()

	evaluation, err := analyzer.Analyze(context.Background(), sub)
	require.NoError(t, err)
	require.True(t, evaluation.FellBack())
	require.Equal(t, "not_configured", evaluation.FallbackReason)
	require.Equal(t, Heuristic("Technology is very good for education because it makes learning easier.", sub.Level, sub.ElapsedSeconds), evaluation.Result)
}

func TestAnalyzerFallsBackOnProviderFailures(t *testing.T) {
	cases := []struct {
		name     string
		provider *stubProvider
		reason   string
	}{
		{name: "unavailable", provider: &stubProvider{err: errors.New("quota exceeded")}, reason: "unavailable"},
		{name: "timeout", provider: &stubProvider{err: context.DeadlineExceeded}, reason: "unavailable"},
		{name: "no json", provider: &stubProvider{response: "I cannot grade this."}, reason: "malformed_response"},
		{name: "truncated", provider: &stubProvider{response: `{"overallScore": 70, "scores": {"ielts": 9`}, reason: "malformed_response"},
		{name: "invalid syntax", provider: &stubProvider{response: `{"overallScore": 70,}`}, reason: "malformed_response"},
		{name: "missing scores", provider: &stubProvider{response: `{"overallScore": 70, "feedback": {}}`}, reason: "incomplete_response"},
		{name: "missing dimension score", provider: &stubProvider{response: `{"overallScore": 70, "scores": {}, "feedback": {"grammar": {"score": 1}, "vocabulary": {"score": 1}, "coherence": {}, "taskResponse": {"score": 1}}}`}, reason: "incomplete_response"},
		{name: "wrong type", provider: &stubProvider{response: `{"overallScore": "high", "scores": {}, "feedback": {}}`}, reason: "incomplete_response"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			analyzer := NewAnalyzer(tc.provider, zerolog.Nop())
			sub := newSubmission()

			evaluation, err := analyzer.Analyze(context.Background(), sub)
			require.NoError(t, err)
			require.Equal(t, int32(1), tc.provider.calls.Load())
			require.Equal(t, SourceHeuristic, evaluation.Source)
			require.Equal(t, tc.reason, evaluation.FallbackReason)
			require.Equal(t, 69, evaluation.Result.OverallScore)
			require.Len(t, evaluation.Result.Recommendations, 4)
		})
	}
}

func TestAnalyzerRejectsShortText(t *testing.T) {
	provider := &stubProvider{response: validProviderResponse}
	analyzer := NewAnalyzer(provider, zerolog.Nop())

	_, err := analyzer.Analyze(context.Background(), Submission{Text: "   too short   ", Level: LevelBeginner})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.Zero(t, provider.calls.Load())

	_, err = analyzer.Analyze(context.Background(), Submission{Text: "long enough text here", ElapsedSeconds: -1})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.Zero(t, provider.calls.Load())
}

func TestExtractJSONObject(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{name: "plain", raw: `{"a":1}`, want: `{"a":1}`},
		{name: "surrounded", raw: "result:\n{\"a\":{\"b\":2}} trailing {\"c\":3}", want: `{"a":{"b":2}}`},
		{name: "braces in strings", raw: `x {"a":"}{","b":"{"} y`, want: `{"a":"}{","b":"{"}`},
		{name: "escaped quote", raw: `{"a":"say \"}\" now"}`, want: `{"a":"say \"}\" now"}`},
		{name: "stray closing brace first", raw: `} {"a":1}`, want: `{"a":1}`},
		{name: "quoted brace in prose", raw: `Sure! "quoted {" {"a":{"b":"x"}}`, want: `{"a":{"b":"x"}}`},
		{name: "bare brace in prose", raw: "Scores use {0-100}. {\"a\":1}", want: `{"a":1}`},
		{name: "first balanced when none parse", raw: `{"a":1,} {"b":}`, want: `{"a":1,}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := extractJSONObject(tc.raw)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}

	_, err := extractJSONObject(`no object {"a": 1`)
	require.ErrorIs(t, err, errNoJSONObject)
}

func TestAnalyzerFindsObjectAfterProseBraces(t *testing.T) {
	provider := &stubProvider{response: `Sure! I kept the "rubric {" in mind. ` + validProviderResponse}
	analyzer := NewAnalyzer(provider, zerolog.Nop())

	evaluation, err := analyzer.Analyze(context.Background(), newSubmission())
	require.NoError(t, err)
	require.False(t, evaluation.FellBack())
	require.Equal(t, 70, evaluation.Result.OverallScore)
}

func TestValidatePayloadChecksRequiredFields(t *testing.T) {
	require.NoError(t, validatePayload(`{"overallScore": 70.5, "scores": {}, "feedback": {"grammar": {"score": 1}, "vocabulary": {"score": 2}, "coherence": {"score": 3}, "taskResponse": {"score": 4}}}`))
	require.Error(t, validatePayload(`{"overallScore": 70, "scores": {}}`))
	require.Error(t, validatePayload(`{"overallScore": 70,`))
}
