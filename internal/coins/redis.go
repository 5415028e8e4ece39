package coins

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const coinsKeyPrefix = "coins:"

// RedisConfig holds configuration for the Redis coin store.
type RedisConfig struct {
	RedisClient *redis.Client
}

type redisStore struct {
	client *redis.Client
}

// NewRedis creates a Redis-backed coin store.
func NewRedis(cfg *RedisConfig) (Store, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &redisStore{client: cfg.RedisClient}, nil
}

func coinsKey(player string) string { return coinsKeyPrefix + player }

func (s *redisStore) Balance(ctx context.Context, player string) (int, error) {
	n, err := s.client.Get(ctx, coinsKey(player)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to load balance: %w", err)
	}
	return n, nil
}

func (s *redisStore) Add(ctx context.Context, player string, delta int) (int, error) {
	n, err := s.client.IncrBy(ctx, coinsKey(player), int64(delta)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to adjust balance: %w", err)
	}
	if n < 0 {
		if err := s.client.Set(ctx, coinsKey(player), 0, 0).Err(); err != nil {
			return 0, fmt.Errorf("failed to clamp balance: %w", err)
		}
		return 0, nil
	}
	return int(n), nil
}

func (s *redisStore) Close() error { return s.client.Close() }
