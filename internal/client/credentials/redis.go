package credentials

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/forumkeeper/internal/client/models"
	"github.com/dmitrijs2005/forumkeeper/internal/common"
	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces credential keys in a shared Redis.
const DefaultRedisPrefix = "forumkeeper:"

// RedisStore keeps credentials in Redis so several client processes on a
// host can share one session.
type RedisStore struct {
	client     *redis.Client
	prefix     string
	refreshTTL time.Duration
}

// RedisOptions configures NewRedisStore. A zero RefreshTTL keeps the
// refresh token until it is cleared.
type RedisOptions struct {
	Addr       string
	Password   string
	DB         int
	Prefix     string
	RefreshTTL time.Duration
}

func NewRedisStore(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix, refreshTTL: opts.RefreshTTL}, nil
}

func (s *RedisStore) key(k string) string {
	return s.prefix + k
}

func (s *RedisStore) ttl(k string) time.Duration {
	if k == common.RefreshTokenKey {
		return s.refreshTTL
	}
	return 0
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, s.ttl(key)).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// SavePair writes both tokens in a MULTI/EXEC block.
func (s *RedisStore) SavePair(ctx context.Context, pair models.TokenPair) error {
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, s.key(common.AccessTokenKey), pair.AccessToken, 0)
		p.Set(ctx, s.key(common.RefreshTokenKey), pair.RefreshToken, s.refreshTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save token pair: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
