package cache

import (
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/zatekoja/mobydock/internal/domain/providers"
	redisclient "github.com/zatekoja/mobydock/internal/infrastructure/clients/redis"
	apperrors "github.com/zatekoja/mobydock/pkg/errors"
)

// DefaultFeedCountKey is the Redis key holding the feed count
const DefaultFeedCountKey = "feed_count"

// RedisCounterAdapter implements the FeedCounter interface using Redis INCR/GET
type RedisCounterAdapter struct {
	client *redisclient.Client
	key    string
}

// NewRedisCounterAdapter creates a new Redis counter adapter.
// An empty key falls back to DefaultFeedCountKey.
func NewRedisCounterAdapter(client *redisclient.Client, key string) providers.FeedCounter {
	if key == "" {
		key = DefaultFeedCountKey
	}
	return &RedisCounterAdapter{
		client: client,
		key:    key,
	}
}

// Increment atomically increments the counter and returns the new value
func (a *RedisCounterAdapter) Increment(ctx context.Context) (int64, error) {
	value, err := a.client.Client().Incr(ctx, a.key).Result()
	if err != nil {
		return 0, apperrors.NewExternalError("failed to increment feed count", err)
	}
	return value, nil
}

// Current reads the counter without changing it
func (a *RedisCounterAdapter) Current(ctx context.Context) (int64, error) {
	raw, err := a.client.Client().Get(ctx, a.key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, apperrors.NewExternalError("failed to read feed count", err)
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperrors.NewInternalError("feed count is not an integer", err)
	}
	return value, nil
}
