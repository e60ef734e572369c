package middleware

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// entry is what the store keeps per idempotency key.
type entry struct {
	InProgress  bool      `json:"in_progress"`
	Code        int       `json:"code"`
	Body        []byte    `json:"body"`
	BodySHA256  string    `json:"body_sha256"`
	RequestID   string    `json:"request_id"`
	RequestAtMS int64     `json:"request_at_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

func (e entry) replayable() bool { return !e.InProgress && e.Code != 0 && len(e.Body) > 0 }

type redisStore struct{ rdb *redis.Client }

// reserve writes e under key only if the key is free.
func (s redisStore) reserve(ctx context.Context, key string, e entry, ttl time.Duration) (bool, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return false, err
	}
	return s.rdb.SetNX(ctx, key, payload, ttl).Result()
}

func (s redisStore) load(ctx context.Context, key string) (entry, error) {
	var e entry
	v, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return e, err
	}
	err = json.Unmarshal(v, &e)
	return e, err
}

func (s redisStore) save(ctx context.Context, key string, e entry, ttl time.Duration) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, payload, ttl).Err()
}

// release drops a provisional lock so a failed request can be retried.
func (s redisStore) release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
