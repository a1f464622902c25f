package completion

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/writerpro-api/internal/observability"
	"github.com/noah-isme/writerpro-api/internal/scoring"
)

// ErrInvalidInput indicates a malformed completion request.
var ErrInvalidInput = errors.New("invalid completion input")

// Outcome is the result of marking an exercise as completed.
type Outcome string

const (
	// Completed means this call created the completion record.
	Completed Outcome = "completed"
	// AlreadyCompleted means a record for the exercise already existed.
	AlreadyCompleted Outcome = "already_completed"
)

// Record is durable proof that a learner finished an exercise.
type Record struct {
	UserID        uint
	Level         scoring.Level
	ExerciseIndex int
	AnalysisRef   uint
	CompletedAt   time.Time
}

// Store persists completion records under a uniqueness guarantee on
// (UserID, Level, ExerciseIndex). Insert must be atomic with respect to
// concurrent inserts of the same triple and report false when it already exists.
type Store interface {
	Insert(ctx context.Context, record Record) (bool, error)
	ListIndexes(ctx context.Context, userID uint, level scoring.Level) ([]int, error)
	Exists(ctx context.Context, userID uint, level scoring.Level, exerciseIndex int) (bool, error)
}

// Tracker records exercise completions exactly once.
type Tracker struct {
	store  Store
	now    func() time.Time
	logger zerolog.Logger
}

// NewTracker constructs a tracker over store.
func NewTracker(store Store, logger zerolog.Logger) *Tracker {
	return &Tracker{
		store:  store,
		now:    time.Now,
		logger: logger.With().Str("component", "completion_tracker").Logger(),
	}
}

// MarkCompleted records the exercise for the learner. A duplicate is reported
// as AlreadyCompleted, not as an error.
func (t *Tracker) MarkCompleted(ctx context.Context, userID uint, level string, exerciseIndex int, analysisRef uint) (Outcome, error) {
	parsed, err := validate(userID, level, exerciseIndex)
	if err != nil {
		return "", err
	}
	if analysisRef == 0 {
		return "", fmt.Errorf("%w: analysis reference is required", ErrInvalidInput)
	}

	inserted, err := t.store.Insert(ctx, Record{
		UserID:        userID,
		Level:         parsed,
		ExerciseIndex: exerciseIndex,
		AnalysisRef:   analysisRef,
		CompletedAt:   t.now().UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("record completion: %w", err)
	}

	outcome := Completed
	if !inserted {
		outcome = AlreadyCompleted
	}
	observability.Completions().WithLabelValues(string(outcome)).Inc()

	t.logger.Debug().
		Uint("user_id", userID).
		Str("level", string(parsed)).
		Int("exercise_index", exerciseIndex).
		Str("outcome", string(outcome)).
		Msg("completion recorded")

	return outcome, nil
}

// ListCompleted returns the completed exercise indexes in ascending order.
func (t *Tracker) ListCompleted(ctx context.Context, userID uint, level string) ([]int, error) {
	parsed, err := validate(userID, level, 0)
	if err != nil {
		return nil, err
	}

	indexes, err := t.store.ListIndexes(ctx, userID, parsed)
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}

	unique := make([]int, 0, len(indexes))
	seen := make(map[int]struct{}, len(indexes))
	for _, idx := range indexes {
		if _, ok := seen[idx]; ok {
			continue
		}
		seen[idx] = struct{}{}
		unique = append(unique, idx)
	}
	sort.Ints(unique)

	return unique, nil
}

// IsCompleted reports whether the learner finished the exercise.
func (t *Tracker) IsCompleted(ctx context.Context, userID uint, level string, exerciseIndex int) (bool, error) {
	parsed, err := validate(userID, level, exerciseIndex)
	if err != nil {
		return false, err
	}

	done, err := t.store.Exists(ctx, userID, parsed, exerciseIndex)
	if err != nil {
		return false, fmt.Errorf("check completion: %w", err)
	}
	return done, nil
}

func validate(userID uint, level string, exerciseIndex int) (scoring.Level, error) {
	if userID == 0 {
		return "", fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	parsed, ok := scoring.ParseLevel(level)
	if !ok {
		return "", fmt.Errorf("%w: unknown level %q", ErrInvalidInput, level)
	}
	if exerciseIndex < 0 {
		return "", fmt.Errorf("%w: exercise index must not be negative", ErrInvalidInput)
	}
	return parsed, nil
}
