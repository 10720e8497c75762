package user_client

import (
	"context"
	"errors"
	"log/slog"

	"devlog-post-service/internal/custom_errors"
	model "devlog-post-service/internal/domain/models"
	ports "devlog-post-service/internal/domain/ports/output"
	"devlog-post-service/internal/domain/ports/output/cache"
	user_port "devlog-post-service/internal/domain/ports/output/user"
)

// CachedClient serves profiles from the user cache and falls back to the
// wrapped client on a miss.
type CachedClient struct {
	client  user_port.Client
	cache   cache.UserCache
	log     ports.Logger
	metrics ports.MetricsProvider
}

func NewCachedClient(client user_port.Client, userCache cache.UserCache, log ports.Logger, metrics ports.MetricsProvider) *CachedClient {
	return &CachedClient{client: client, cache: userCache, log: log, metrics: metrics}
}

func (c *CachedClient) GetUser(ctx context.Context, id int64) (*model.User, error) {
	user, err := c.cache.GetUser(ctx, id)
	if err == nil {
		c.metrics.IncrementCacheHits()
		return user, nil
	}
	c.metrics.IncrementCacheMisses()
	if !errors.Is(err, custom_errors.ErrCacheMiss) {
		c.log.Warn("User cache lookup failed", slog.Int64("user_id", id), slog.String("error", err.Error()))
	}

	user, err = c.client.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := c.cache.SetUser(ctx, user); err != nil {
		c.log.Warn("Failed to cache user", slog.Int64("user_id", id), slog.String("error", err.Error()))
	}
	return user, nil
}
