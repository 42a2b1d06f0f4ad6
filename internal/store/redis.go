package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Belphemur/ShowFinder/internal/config"
)

const (
	// defaultKeyPrefix namespaces all session keys in Redis to avoid collisions.
	defaultKeyPrefix = "showfinder:session:"

	// lenTimeout bounds the SCAN issued by Len, which runs at metrics scrape time.
	lenTimeout = 2 * time.Second
)

func init() {
	Register("redis", newRedisStore)
}

// redisStore keeps one Redis string key per entry. TTL is enforced by Redis
// key expiry and refreshed on every read with GETEX (Redis 6.2+ / Valkey).
// Capacity is bounded by the server's maxmemory policy, not by Size.
type redisStore struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func newRedisStore(cfg ProviderConfig) (Store, error) {
	if cfg.RedisAddress == "" {
		return nil, errors.New("store: redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &redisStore{
		client: client,
		ttl:    cfg.TTL,
		prefix: prefix,
	}, nil
}

func (r *redisStore) key(key string) string {
	return r.prefix + key
}

func (r *redisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.client.GetEx(ctx, r.key(key), r.ttl).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get %q: %w", key, err)
	}
	return val, true, nil
}

func (r *redisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.key(key), value, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (r *redisStore) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("redis delete %q: %w", key, err)
	}
	return nil
}

// Len counts keys under the store prefix with SCAN. Errors are logged and reported as 0.
func (r *redisStore) Len() int {
	ctx, cancel := context.WithTimeout(context.Background(), lenTimeout)
	defer cancel()

	n := 0
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		n++
	}
	if err := iter.Err(); err != nil {
		logger := config.GetLogger()
		logger.Error().Err(err).Msg("redis store Len failed")
		return 0
	}
	return n
}

func (r *redisStore) Close() error {
	return r.client.Close()
}
