package completion

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/writerpro-api/internal/scoring"
)

type memoryStore struct {
	mu      sync.Mutex
	records map[string]Record
	err     error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{records: make(map[string]Record)}
}

func key(userID uint, level scoring.Level, idx int) string {
	return fmt.Sprintf("%d|%s|%d", userID, level, idx)
}

func (m *memoryStore) Insert(ctx context.Context, record Record) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	k := key(record.UserID, record.Level, record.ExerciseIndex)
	if _, ok := m.records[k]; ok {
		return false, nil
	}
	m.records[k] = record
	return true, nil
}

func (m *memoryStore) ListIndexes(ctx context.Context, userID uint, level scoring.Level) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []int
	for _, r := range m.records {
		if r.UserID == userID && r.Level == level {
			out = append(out, r.ExerciseIndex)
		}
	}
	return out, nil
}

func (m *memoryStore) Exists(ctx context.Context, userID uint, level scoring.Level, idx int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.records[key(userID, level, idx)]
	return ok, nil
}

func TestMarkCompletedIsIdempotent(t *testing.T) {
	store := newMemoryStore()
	tracker := NewTracker(store, zerolog.Nop())
	ctx := context.Background()

	outcome, err := tracker.MarkCompleted(ctx, 7, "Beginner (A1-A2)", 0, 11)
	require.NoError(t, err)
	require.Equal(t, Completed, outcome)

	outcome, err = tracker.MarkCompleted(ctx, 7, "beginner", 0, 12)
	require.NoError(t, err)
	require.Equal(t, AlreadyCompleted, outcome)

	require.Len(t, store.records, 1)
	require.Equal(t, uint(11), store.records[key(7, scoring.LevelBeginner, 0)].AnalysisRef)
}

func TestMarkCompletedConcurrentDuplicates(t *testing.T) {
	store := newMemoryStore()
	tracker := NewTracker(store, zerolog.Nop())

	const callers = 16
	outcomes := make([]Outcome, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcomes[i], errs[i] = tracker.MarkCompleted(context.Background(), 123, string(scoring.LevelBeginner), 0, uint(i+1))
		}(i)
	}
	wg.Wait()

	completed := 0
	for i, outcome := range outcomes {
		require.NoError(t, errs[i])
		if outcome == Completed {
			completed++
		}
	}
	require.Equal(t, 1, completed)
	require.Len(t, store.records, 1)
}

func TestMarkCompletedValidatesInput(t *testing.T) {
	tracker := NewTracker(newMemoryStore(), zerolog.Nop())
	ctx := context.Background()

	cases := []struct {
		name  string
		user  uint
		level string
		index int
		ref   uint
	}{
		{name: "missing user", user: 0, level: "Intermediate (B1)", index: 0, ref: 1},
		{name: "unknown level", user: 1, level: "Expert", index: 0, ref: 1},
		{name: "negative index", user: 1, level: "Intermediate (B1)", index: -1, ref: 1},
		{name: "missing analysis", user: 1, level: "Intermediate (B1)", index: 0, ref: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tracker.MarkCompleted(ctx, tc.user, tc.level, tc.index, tc.ref)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestListAndIsCompleted(t *testing.T) {
	tracker := NewTracker(newMemoryStore(), zerolog.Nop())
	ctx := context.Background()

	for _, idx := range []int{4, 0, 2} {
		_, err := tracker.MarkCompleted(ctx, 9, "Advanced (C1-C2)", idx, 1)
		require.NoError(t, err)
	}
	_, err := tracker.MarkCompleted(ctx, 9, "Intermediate (B1)", 1, 1)
	require.NoError(t, err)

	indexes, err := tracker.ListCompleted(ctx, 9, "advanced")
	require.NoError(t, err)
	require.Equal(t, []int{0, 2, 4}, indexes)

	done, err := tracker.IsCompleted(ctx, 9, "Advanced (C1-C2)", 2)
	require.NoError(t, err)
	require.True(t, done)

	done, err = tracker.IsCompleted(ctx, 9, "Advanced (C1-C2)", 1)
	require.NoError(t, err)
	require.False(t, done)

	empty, err := tracker.ListCompleted(ctx, 10, "Advanced (C1-C2)")
	require.NoError(t, err)
	require.Empty(t, empty)

	_, err = tracker.ListCompleted(ctx, 9, "unknown")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestTrackerPropagatesStoreErrors(t *testing.T) {
	store := newMemoryStore()
	store.err = errors.New("connection reset")
	tracker := NewTracker(store, zerolog.Nop())

	_, err := tracker.MarkCompleted(context.Background(), 1, "Intermediate (B1)", 0, 1)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, store.err)
}
