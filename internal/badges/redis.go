package badges

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	badgeSetKeyPrefix  = "badges:"
	winStreakKeyPrefix = "win_streak:"
)

// RedisConfig holds configuration for the Redis badge store.
type RedisConfig struct {
	RedisClient *redis.Client
}

// redisStore implements Store on Redis: a set per player for earned
// badges, a counter per player for the win streak.
type redisStore struct {
	client *redis.Client
}

// NewRedis creates a Redis-backed badge store.
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

func badgeSetKey(player string) string  { return badgeSetKeyPrefix + player }
func winStreakKey(player string) string { return winStreakKeyPrefix + player }

func (s *redisStore) Earned(ctx context.Context, player string) ([]Badge, error) {
	members, err := s.client.SMembers(ctx, badgeSetKey(player)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load badges: %w", err)
	}
	out := make([]Badge, 0, len(members))
	for _, m := range members {
		out = append(out, Badge(m))
	}
	return out, nil
}

func (s *redisStore) Award(ctx context.Context, player string, b Badge) (bool, error) {
	added, err := s.client.SAdd(ctx, badgeSetKey(player), string(b)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to award badge: %w", err)
	}
	return added > 0, nil
}

func (s *redisStore) WinStreak(ctx context.Context, player string) (int, error) {
	n, err := s.client.Get(ctx, winStreakKey(player)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to load win streak: %w", err)
	}
	return n, nil
}

func (s *redisStore) BumpWinStreak(ctx context.Context, player string) (int, error) {
	n, err := s.client.Incr(ctx, winStreakKey(player)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to bump win streak: %w", err)
	}
	return int(n), nil
}

func (s *redisStore) ResetWinStreak(ctx context.Context, player string) error {
	if err := s.client.Del(ctx, winStreakKey(player)).Err(); err != nil {
		return fmt.Errorf("failed to reset win streak: %w", err)
	}
	return nil
}

func (s *redisStore) Close() error { return s.client.Close() }
