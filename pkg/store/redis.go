package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures the Redis connection.
type RedisOptions struct {
	// URL is the Redis connection string (e.g., "redis://localhost:6379/0").
	URL string

	// Prefix is prepended to every key. Defaults to "ontodag:".
	Prefix string

	// ConnectTimeout bounds each connection attempt. Defaults to 5s.
	ConnectTimeout time.Duration
}

// RedisStore keeps snapshots as Redis strings, letting Redis expire them.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to Redis and pings it, retrying transient failures
// a few times before giving up.
func NewRedisStore(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}
	if opts.Prefix == "" {
		opts.Prefix = "ontodag:"
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	redisOpts.DialTimeout = opts.ConnectTimeout
	client := redis.NewClient(redisOpts)

	err = RetryWithBackoff(ctx, 3, 500*time.Millisecond, func() error {
		pingCtx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout)
		defer cancel()
		return Retryable(client.Ping(pingCtx).Err())
	})
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &RedisStore{client: client, prefix: opts.Prefix}, nil
}

// Get reads the prefixed key. redis.Nil is a miss.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, true, nil
}

// Set writes the prefixed key; a zero ttl keeps it forever.
func (s *RedisStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.prefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete removes the prefixed key.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// Close closes the Redis connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
