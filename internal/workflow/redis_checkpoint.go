package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const checkpointKeyPrefix = "conversation:"

// RedisCheckpoints persists checkpoints in Redis so threads survive process
// restarts and can be resumed by another instance.
type RedisCheckpoints struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCheckpoints wraps a Redis client as a checkpoint store. A zero TTL
// keeps threads until Redis evicts them.
func NewRedisCheckpoints(client *redis.Client, ttl time.Duration) *RedisCheckpoints {
	return &RedisCheckpoints{client: client, ttl: ttl}
}

func (r *RedisCheckpoints) Put(ctx context.Context, threadID string, cp Checkpoint) error {
	payload, err := json.Marshal(cp)
	if err != nil {
		return fmt.Errorf("workflow: encode checkpoint: %w", err)
	}
	if err := r.client.Set(ctx, checkpointKeyPrefix+threadID, payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("workflow: store checkpoint: %w", err)
	}
	return nil
}

func (r *RedisCheckpoints) Get(ctx context.Context, threadID string) (Checkpoint, error) {
	payload, err := r.client.Get(ctx, checkpointKeyPrefix+threadID).Bytes()
	if errors.Is(err, redis.Nil) {
		return Checkpoint{}, ErrThreadNotFound
	}
	if err != nil {
		return Checkpoint{}, fmt.Errorf("workflow: load checkpoint: %w", err)
	}
	var cp Checkpoint
	if err := json.Unmarshal(payload, &cp); err != nil {
		return Checkpoint{}, fmt.Errorf("workflow: decode checkpoint: %w", err)
	}
	return cp, nil
}
