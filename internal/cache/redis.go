package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// RedisStore is the networked backend. Single-flight collapses duplicate
// recompute within one process; replicas may still compute the same cold
// key once each, which is accepted bounded duplicate work.
type RedisStore struct {
	client *redis.Client
	group  singleflight.Group
}

// NewRedisStore connects to redisURL (redis:// URL or plain host:port)
// and pings the server before returning.
func NewRedisStore(ctx context.Context, redisURL string) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute func(ctx context.Context) ([]byte, error)) ([]byte, error) {
	payload, err := s.client.Get(ctx, key).Bytes()
	if err == nil {
		return payload, nil
	}
	if !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}

	result, err, _ := s.group.Do(key, func() (interface{}, error) {
		payload, err := s.client.Get(ctx, key).Bytes()
		if err == nil {
			return payload, nil
		}

		payload, err = compute(ctx)
		if err != nil {
			return nil, err
		}

		if err := s.client.Set(ctx, key, payload, ttl).Err(); err != nil {
			return nil, fmt.Errorf("redis set %s: %w", key, err)
		}

		return payload, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]byte), nil
}

func (s *RedisStore) InvalidatePrefix(ctx context.Context, prefix string) (int, error) {
	keys, err := s.client.Keys(ctx, prefix+"*").Result()
	if err != nil {
		return 0, fmt.Errorf("redis keys %s*: %w", prefix, err)
	}
	if len(keys) == 0 {
		return 0, nil
	}

	removed, err := s.client.Del(ctx, keys...).Result()
	if err != nil {
		return 0, fmt.Errorf("redis del: %w", err)
	}
	return int(removed), nil
}

func (s *RedisStore) InvalidateAll(ctx context.Context) error {
	return s.client.FlushDB(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
