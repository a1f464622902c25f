package scoring

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/noah-isme/writerpro-api/pkg/ai"
)

const examinerSystemPrompt = "You are an expert English language teacher and IELTS/TOEFL examiner analyzing a student's writing. " +
	"Respond with a single JSON object and nothing else."

const analysisTemplate = `STUDENT INFORMATION:
- Question: "{question}"
- Student Level: {level}
- Time Spent: {minutes} minutes
- Word Count: {words} words

TEXT TO ANALYZE:
"{text}"

ANALYSIS REQUIREMENTS:
Provide a comprehensive analysis in the following EXACT JSON format (no additional text, only valid JSON):

{
  "overallScore": number (0-100),
  "scores": {
    "ielts": number (0-9, with one decimal place),
    "toefl": number (0-120, whole number),
    "pte": number (0-90, whole number),
    "custom": number (0-100, whole number)
  },
  "feedback": {
    "grammar": {
      "score": number (0-100),
      "errors": [
        {
          "type": "string (specific error category)",
          "original": "string (exact text from student's writing)",
          "corrected": "string (corrected version)",
          "explanation": "string (clear explanation of the error)"
        }
      ],
      "strengths": ["string (list of grammar strengths)"]
    },
    "vocabulary": {
      "score": number (0-100),
      "suggestions": [
        {
          "word": "string (word from student's text)",
          "alternatives": ["string (list of better alternatives)"],
          "context": "string (explanation of why to change)"
        }
      ],
      "strengths": ["string (list of vocabulary strengths)"]
    },
    "coherence": {
      "score": number (0-100),
      "feedback": "string (detailed feedback on coherence and cohesion)",
      "strengths": ["string"],
      "improvements": ["string"]
    },
    "taskResponse": {
      "score": number (0-100),
      "feedback": "string (detailed feedback on task achievement)",
      "strengths": ["string"],
      "improvements": ["string"]
    }
  },
  "recommendations": ["string (list of 4-5 actionable recommendations)"]
}

SCORING GUIDELINES:
- Grammar (25%): accuracy, sentence structure, verb tenses, articles, prepositions
- Vocabulary (25%): range, appropriateness, collocations, academic words
- Coherence (25%): organization, linking words, paragraph structure, logical flow
- Task Response (25%): relevance, completeness, argument development, examples

LEVEL-SPECIFIC EXPECTATIONS:
- Beginner (A1-A2): basic sentences, simple vocabulary, clear meaning
- Intermediate (B1): some complex sentences, varied vocabulary, good organization
- Upper-Intermediate (B2): complex sentences, academic vocabulary, strong coherence
- Advanced (C1-C2): sophisticated language, nuanced expression, excellent organization

IMPORTANT:
1. Be specific and actionable in feedback.
2. Quote exact text from the student's writing.
3. Score realistically for the student's level.
4. Keep every score consistent with the overall score.
5. Return ONLY valid JSON.
6. Judge how well the student addressed the specific question.
7. Take the time spent and the word count into account.`

// BuildPrompt renders the analysis request sent to the scoring provider.
func BuildPrompt(sub Submission) (ai.Prompt, error) {
	text := strings.TrimSpace(sub.Text)
	if text == "" {
		return ai.Prompt{}, fmt.Errorf("%w: text is empty", ErrInvalidInput)
	}

	replacer := strings.NewReplacer(
		"{question}", strings.TrimSpace(sub.Question),
		"{level}", string(sub.Level),
		"{minutes}", strconv.Itoa(elapsedMinutes(sub.ElapsedSeconds)),
		"{words}", strconv.Itoa(WordCount(text)),
		"{text}", text,
	)

	return ai.Prompt{
		System:      examinerSystemPrompt,
		User:        replacer.Replace(analysisTemplate),
		Temperature: 0.2,
		JSON:        true,
	}, nil
}
