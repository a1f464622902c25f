package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/writerpro-api/internal/completion"
	"github.com/noah-isme/writerpro-api/internal/scoring"
)

// markCompletedScript claims the record key and indexes the exercise in one
// atomic step. It returns 1 when the record was created.
var markCompletedScript = redis.NewScript(`
if redis.call('SETNX', KEYS[1], ARGV[1]) == 1 then
  redis.call('ZADD', KEYS[2], ARGV[2], ARGV[2])
  return 1
end
return 0
`)

// CompletionRedisStore keeps completion records in Redis.
type CompletionRedisStore struct {
	client *redis.Client
	prefix string
}

var _ completion.Store = (*CompletionRedisStore)(nil)

// NewCompletionRedisStore constructs a Redis completion store.
func NewCompletionRedisStore(client *redis.Client) *CompletionRedisStore {
	return &CompletionRedisStore{client: client, prefix: "writerpro:completion"}
}

type redisCompletionRecord struct {
	UserID        uint   `json:"user_id"`
	Level         string `json:"level"`
	ExerciseIndex int    `json:"exercise_index"`
	AnalysisRef   uint   `json:"analysis_id"`
	CompletedAt   string `json:"completed_at"`
}

// Insert records the completion unless the triple already exists.
func (s *CompletionRedisStore) Insert(ctx context.Context, record completion.Record) (bool, error) {
	payload, err := json.Marshal(redisCompletionRecord{
		UserID:        record.UserID,
		Level:         string(record.Level),
		ExerciseIndex: record.ExerciseIndex,
		AnalysisRef:   record.AnalysisRef,
		CompletedAt:   record.CompletedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return false, err
	}

	keys := []string{
		s.recordKey(record.UserID, record.Level, record.ExerciseIndex),
		s.indexKey(record.UserID, record.Level),
	}
	created, err := markCompletedScript.Run(ctx, s.client, keys, payload, record.ExerciseIndex).Int()
	if err != nil {
		return false, err
	}
	return created == 1, nil
}

// ListIndexes returns the completed indexes for a level in ascending order.
func (s *CompletionRedisStore) ListIndexes(ctx context.Context, userID uint, level scoring.Level) ([]int, error) {
	members, err := s.client.ZRangeByScore(ctx, s.indexKey(userID, level), &redis.ZRangeBy{Min: "-inf", Max: "+inf"}).Result()
	if err != nil {
		return nil, err
	}

	indexes := make([]int, 0, len(members))
	for _, member := range members {
		idx, err := strconv.Atoi(member)
		if err != nil {
			return nil, fmt.Errorf("corrupt completion index %q: %w", member, err)
		}
		indexes = append(indexes, idx)
	}
	return indexes, nil
}

// Exists reports whether the triple has a record.
func (s *CompletionRedisStore) Exists(ctx context.Context, userID uint, level scoring.Level, exerciseIndex int) (bool, error) {
	n, err := s.client.Exists(ctx, s.recordKey(userID, level, exerciseIndex)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *CompletionRedisStore) recordKey(userID uint, level scoring.Level, exerciseIndex int) string {
	return fmt.Sprintf("%s:%d:%s:%d", s.prefix, userID, levelSlug(level), exerciseIndex)
}

func (s *CompletionRedisStore) indexKey(userID uint, level scoring.Level) string {
	return fmt.Sprintf("%s:index:%d:%s", s.prefix, userID, levelSlug(level))
}

func levelSlug(level scoring.Level) string {
	return strings.ToLower(level.Name())
}
