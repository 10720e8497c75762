package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"devlog-post-service/internal/custom_errors"
	ports "devlog-post-service/internal/domain/ports/output"
	"devlog-post-service/internal/infrastructure/config"

	"github.com/redis/go-redis/v9"
)

const keyNamespace = "devlog:"

type Client struct {
	client  redis.UniversalClient
	log     ports.Logger
	metrics ports.MetricsProvider
}

func NewClient(cfg config.Redis, log ports.Logger, metrics ports.MetricsProvider) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Address, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Error("Failed to connect to Redis", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Info("Successfully connected to Redis",
		slog.String("address", cfg.Address),
		slog.Int("port", cfg.Port),
		slog.Int("db", cfg.DB))

	return NewClientFromRedis(rdb, log, metrics), nil
}

// NewClientFromRedis wraps an already configured go-redis client.
func NewClientFromRedis(rdb redis.UniversalClient, log ports.Logger, metrics ports.MetricsProvider) *Client {
	return &Client{client: rdb, log: log, metrics: metrics}
}

func (c *Client) Get(ctx context.Context, key string, dest any) error {
	start := time.Now()
	defer func() { c.metrics.RecordCacheOperationDuration("get", time.Since(start)) }()

	key = keyNamespace + key
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			c.log.Debug("Cache miss", slog.String("key", key))
			return custom_errors.ErrCacheMiss
		}
		c.log.Error("Failed to get from cache",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to get from cache: %w", err)
	}

	if err := json.Unmarshal(val, dest); err != nil {
		c.log.Error("Failed to unmarshal cache value",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to unmarshal cache value: %w", err)
	}

	c.log.Debug("Cache hit", slog.String("key", key))
	return nil
}

func (c *Client) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	start := time.Now()
	defer func() { c.metrics.RecordCacheOperationDuration("set", time.Since(start)) }()

	key = keyNamespace + key
	data, err := json.Marshal(value)
	if err != nil {
		c.log.Error("Failed to marshal value for cache",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		c.log.Error("Failed to set cache",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to set cache: %w", err)
	}

	c.log.Debug("Successfully set cache",
		slog.String("key", key),
		slog.Duration("ttl", ttl))
	return nil
}

func (c *Client) Delete(ctx context.Context, key string) error {
	start := time.Now()
	defer func() { c.metrics.RecordCacheOperationDuration("delete", time.Since(start)) }()

	key = keyNamespace + key
	result, err := c.client.Del(ctx, key).Result()
	if err != nil {
		c.log.Error("Failed to delete from cache",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete from cache: %w", err)
	}

	if result == 0 {
		c.log.Debug("Key not found for deletion", slog.String("key", key))
	} else {
		c.log.Debug("Successfully deleted from cache", slog.String("key", key))
	}
	return nil
}

// Version reads the counter stored at versionKey; a missing counter is 0.
func (c *Client) Version(ctx context.Context, versionKey string) (int64, error) {
	start := time.Now()
	defer func() { c.metrics.RecordCacheOperationDuration("version", time.Since(start)) }()

	versionKey = keyNamespace + versionKey
	version, err := c.client.Get(ctx, versionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		c.log.Error("Failed to read cache version",
			slog.String("key", versionKey),
			slog.String("error", err.Error()))
		return 0, fmt.Errorf("failed to read cache version: %w", err)
	}
	return version, nil
}

// Invalidate deletes key and advances the counter at versionKey in one
// MULTI/EXEC round trip.
func (c *Client) Invalidate(ctx context.Context, key, versionKey string, ttl time.Duration) error {
	start := time.Now()
	defer func() { c.metrics.RecordCacheOperationDuration("delete", time.Since(start)) }()

	key = keyNamespace + key
	versionKey = keyNamespace + versionKey
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey)
		if ttl > 0 {
			pipe.Expire(ctx, versionKey, ttl)
		}
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		c.log.Error("Failed to invalidate cache",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}

	c.log.Debug("Successfully invalidated cache", slog.String("key", key))
	return nil
}

// SetIfVersion stores value only while the counter at versionKey still equals
// version. The counter is WATCHed, so an Invalidate racing with the write
// aborts it.
func (c *Client) SetIfVersion(ctx context.Context, key, versionKey string, version int64, value any, ttl time.Duration) error {
	start := time.Now()
	defer func() { c.metrics.RecordCacheOperationDuration("set", time.Since(start)) }()

	key = keyNamespace + key
	versionKey = keyNamespace + versionKey
	data, err := json.Marshal(value)
	if err != nil {
		c.log.Error("Failed to marshal value for cache",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, versionKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return custom_errors.ErrCacheInvalidated
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, ttl)
			return nil
		})
		return err
	}, versionKey)

	switch {
	case err == nil:
	case errors.Is(err, custom_errors.ErrCacheInvalidated), errors.Is(err, redis.TxFailedErr):
		c.log.Debug("Cache entry invalidated during load", slog.String("key", key), slog.Int64("version", version))
		return custom_errors.ErrCacheInvalidated
	default:
		c.log.Error("Failed to set cache",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to set cache: %w", err)
	}

	c.log.Debug("Successfully set cache",
		slog.String("key", key),
		slog.Duration("ttl", ttl))
	return nil
}

func (c *Client) Close() error {
	if err := c.client.Close(); err != nil {
		c.log.Error("Failed to close Redis connection", slog.String("error", err.Error()))
		return fmt.Errorf("failed to close Redis connection: %w", err)
	}

	c.log.Info("Redis connection closed")
	return nil
}

func (c *Client) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		c.log.Error("Redis ping failed", slog.String("error", err.Error()))
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}
