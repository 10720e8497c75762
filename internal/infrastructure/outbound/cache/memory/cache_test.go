package memory_test

import (
	"context"
	"testing"
	"time"

	"devlog-post-service/internal/custom_errors"
	model "devlog-post-service/internal/domain/models"
	"devlog-post-service/internal/infrastructure/logger"
	"devlog-post-service/internal/infrastructure/outbound/cache/memory"
	"devlog-post-service/internal/infrastructure/outbound/metrics/prometheus"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostCache(t *testing.T) {
	ctx := context.Background()
	cache := memory.NewPostCache(10, time.Minute, logger.New("test"), prometheus.NewPrometheusMetricsProvider())

	_, err := cache.GetPost(ctx, 1)
	assert.ErrorIs(t, err, custom_errors.ErrCacheMiss)

	post := &model.Post{ID: 1, AuthorID: 2, Title: "Cached", Content: "c", Tags: []string{"go"}}
	detailed := model.NewPostDetailed(post, &model.User{ID: 2, Username: "ann"})
	version, err := cache.PostVersion(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, cache.SetPost(ctx, detailed, version))

	post.Tags[0] = "mutated"
	detailed.Author.Username = "mutated"

	got, err := cache.GetPost(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Cached", got.Post.Title)
	assert.Equal(t, []string{"go"}, got.Post.Tags)
	assert.Equal(t, "ann", got.Author.Username)

	require.NoError(t, cache.DeletePost(ctx, 1))
	_, err = cache.GetPost(ctx, 1)
	assert.ErrorIs(t, err, custom_errors.ErrCacheMiss)

	assert.Error(t, cache.SetPost(ctx, nil, 0))
}

func TestPostCache_InvalidationGuard(t *testing.T) {
	ctx := context.Background()
	newCache := func() *memory.PostCache {
		return memory.NewPostCache(10, time.Minute, logger.New("test"), prometheus.NewPrometheusMetricsProvider())
	}
	post := func(id int64) *model.PostDetailed {
		return model.NewPostDetailed(&model.Post{ID: id, Title: "snapshot"}, nil)
	}

	t.Run("Fill loaded before a delete is refused", func(t *testing.T) {
		cache := newCache()
		version, err := cache.PostVersion(ctx, 1)
		require.NoError(t, err)

		require.NoError(t, cache.DeletePost(ctx, 1))

		assert.ErrorIs(t, cache.SetPost(ctx, post(1), version), custom_errors.ErrCacheInvalidated)
		_, err = cache.GetPost(ctx, 1)
		assert.ErrorIs(t, err, custom_errors.ErrCacheMiss)
	})

	t.Run("Fill loaded after the delete is stored", func(t *testing.T) {
		cache := newCache()
		require.NoError(t, cache.DeletePost(ctx, 1))

		version, err := cache.PostVersion(ctx, 1)
		require.NoError(t, err)
		require.NoError(t, cache.SetPost(ctx, post(1), version))

		_, err = cache.GetPost(ctx, 1)
		assert.NoError(t, err)
	})

	t.Run("Delete of another post does not block the fill", func(t *testing.T) {
		cache := newCache()
		version, err := cache.PostVersion(ctx, 1)
		require.NoError(t, err)

		require.NoError(t, cache.DeletePost(ctx, 2))

		assert.NoError(t, cache.SetPost(ctx, post(1), version))
	})

	t.Run("Dropped markers refuse older fills", func(t *testing.T) {
		cache := memory.NewPostCache(1, time.Minute, logger.New("test"), prometheus.NewPrometheusMetricsProvider())
		version, err := cache.PostVersion(ctx, 1)
		require.NoError(t, err)

		require.NoError(t, cache.DeletePost(ctx, 1))
		require.NoError(t, cache.DeletePost(ctx, 2))

		assert.ErrorIs(t, cache.SetPost(ctx, post(1), version), custom_errors.ErrCacheInvalidated)
	})
}

func TestPostCache_Expires(t *testing.T) {
	ctx := context.Background()
	cache := memory.NewPostCache(10, 10*time.Millisecond, logger.New("test"), prometheus.NewPrometheusMetricsProvider())

	require.NoError(t, cache.SetPost(ctx, model.NewPostDetailed(&model.Post{ID: 1}, nil), 0))

	assert.Eventually(t, func() bool {
		_, err := cache.GetPost(ctx, 1)
		return err != nil
	}, time.Second, 5*time.Millisecond)
}

func TestUserCache(t *testing.T) {
	ctx := context.Background()
	cache := memory.NewUserCache(10, time.Minute, logger.New("test"))

	_, err := cache.GetUser(ctx, 7)
	assert.ErrorIs(t, err, custom_errors.ErrCacheMiss)

	require.NoError(t, cache.SetUser(ctx, &model.User{ID: 7, Username: "bob"}))

	got, err := cache.GetUser(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Username)

	require.NoError(t, cache.DeleteUser(ctx, 7))
	_, err = cache.GetUser(ctx, 7)
	assert.ErrorIs(t, err, custom_errors.ErrCacheMiss)
}
