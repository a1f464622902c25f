package scoring

import (
	"errors"
	"math"
	"strings"
)

// ErrInvalidInput indicates the caller supplied a submission that cannot be graded.
var ErrInvalidInput = errors.New("invalid input")

// MinTextLength is the minimum number of characters, after trimming, a submission needs.
const MinTextLength = 10

// Submission is a learner's piece of writing awaiting analysis.
type Submission struct {
	Text           string
	Question       string
	Level          Level
	ElapsedSeconds int
}

// WordCount returns the number of whitespace-delimited tokens in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

func elapsedMinutes(seconds int) int {
	if seconds <= 0 {
		return 0
	}
	return int(math.Round(float64(seconds) / 60))
}
