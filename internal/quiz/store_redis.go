package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each user's quiz under quiz:<userID> with the TTL on
// the key itself, so expiry needs no janitor. SET overwrites any prior
// quiz and GETDEL makes the submit-side read-and-destroy atomic.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func quizKey(userID string) string { return "quiz:" + userID }

func (s *RedisStore) Replace(ctx context.Context, q Quiz) error {
	b, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("marshal quiz: %w", err)
	}
	if err := s.rdb.Set(ctx, quizKey(q.UserID), b, s.ttl).Err(); err != nil {
		return fmt.Errorf("replace quiz: %w", err)
	}
	return nil
}

func (s *RedisStore) Take(ctx context.Context, userID string) (Quiz, error) {
	b, err := s.rdb.GetDel(ctx, quizKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Quiz{}, ErrNoActiveQuiz
	}
	if err != nil {
		return Quiz{}, fmt.Errorf("take quiz: %w", err)
	}
	var q Quiz
	if err := json.Unmarshal(b, &q); err != nil {
		return Quiz{}, fmt.Errorf("decode stored quiz: %w", err)
	}
	return q, nil
}
