package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// RedisCache implements RateStore on Redis. Rates are stored as decimal
// strings under prefix+key.
type RedisCache struct {
	client redis.UniversalClient
	prefix string
	logger *slog.Logger
}

var _ RateStore = (*RedisCache)(nil)

// NewRedisCache creates a RedisCache on an existing client.
func NewRedisCache(client redis.UniversalClient, prefix string, logger *slog.Logger) *RedisCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisCache{client: client, prefix: prefix, logger: logger}
}

// NewRedisCacheFromURL parses a redis:// url and creates a RedisCache on a
// new client.
func NewRedisCacheFromURL(url, prefix string, logger *slog.Logger) (*RedisCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return NewRedisCache(redis.NewClient(opt), prefix, logger), nil
}

func (r *RedisCache) key(key string) string {
	return r.prefix + key
}

func (r *RedisCache) Get(ctx context.Context, key string) (decimal.Decimal, bool, error) {
	val, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		r.logger.Debug("Redis cache miss", "key", key)
		return decimal.Zero, false, nil
	}
	if err != nil {
		r.logger.Error("Redis cache get error", "key", key, "error", err)
		return decimal.Zero, false, err
	}
	rate, err := decimal.NewFromString(val)
	if err != nil {
		r.logger.Error("Redis cache parse error", "key", key, "value", val, "error", err)
		return decimal.Zero, false, err
	}
	r.logger.Debug("Redis cache hit", "key", key, "rate", val)
	return rate, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, rate decimal.Decimal, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.key(key), rate.String(), ttl).Err(); err != nil {
		r.logger.Error("Redis cache set error", "key", key, "error", err)
		return err
	}
	r.logger.Debug("Redis cache set", "key", key, "rate", rate.String(), "ttl", ttl)
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		r.logger.Error("Redis cache delete error", "key", key, "error", err)
		return err
	}
	return nil
}

// Close releases the underlying client.
func (r *RedisCache) Close() error {
	return r.client.Close()
}
