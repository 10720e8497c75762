// Package memory implements the post and user caches in process memory with
// size-bounded, expiring LRU maps.
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"devlog-post-service/internal/custom_errors"
	model "devlog-post-service/internal/domain/models"
	ports "devlog-post-service/internal/domain/ports/output"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// PostCache stamps every invalidation with a process-wide generation. The
// generation of the latest invalidation is kept per post for as long as the
// entries themselves live; once such a marker is dropped, droppedUpTo makes
// SetPost reject every load that started before it.
type PostCache struct {
	mu          sync.Mutex
	lru         *expirable.LRU[int64, *model.PostDetailed]
	markers     *expirable.LRU[int64, int64]
	generation  int64
	droppedUpTo atomic.Int64
	log         ports.Logger
	metrics     ports.MetricsProvider
}

func NewPostCache(size int, ttl time.Duration, log ports.Logger, metrics ports.MetricsProvider) *PostCache {
	p := &PostCache{
		lru:     expirable.NewLRU[int64, *model.PostDetailed](size, nil, ttl),
		log:     log,
		metrics: metrics,
	}
	p.markers = expirable.NewLRU[int64, int64](size, p.markerDropped, ttl)
	return p
}

func (p *PostCache) GetPost(ctx context.Context, postID int64) (*model.PostDetailed, error) {
	start := time.Now()
	defer func() { p.metrics.RecordCacheOperationDuration("get", time.Since(start)) }()

	post, ok := p.lru.Get(postID)
	if !ok {
		p.log.Debug("Post cache miss", slog.Int64("post_id", postID))
		return nil, custom_errors.ErrCacheMiss
	}
	return cloneDetailed(post), nil
}

func (p *PostCache) PostVersion(ctx context.Context, postID int64) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.generation, nil
}

func (p *PostCache) SetPost(ctx context.Context, post *model.PostDetailed, version int64) error {
	start := time.Now()
	defer func() { p.metrics.RecordCacheOperationDuration("set", time.Since(start)) }()

	if post == nil || post.Post == nil {
		return fmt.Errorf("post cannot be nil")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if marker, ok := p.markers.Peek(post.Post.ID); (ok && marker > version) || p.droppedUpTo.Load() > version {
		p.log.Debug("Skipping stale post cache fill", slog.Int64("post_id", post.Post.ID), slog.Int64("version", version))
		return custom_errors.ErrCacheInvalidated
	}
	p.lru.Add(post.Post.ID, cloneDetailed(post))
	return nil
}

func (p *PostCache) DeletePost(ctx context.Context, postID int64) error {
	start := time.Now()
	defer func() { p.metrics.RecordCacheOperationDuration("delete", time.Since(start)) }()

	p.mu.Lock()
	defer p.mu.Unlock()

	p.generation++
	p.markers.Add(postID, p.generation)
	p.lru.Remove(postID)
	return nil
}

func (p *PostCache) markerDropped(_ int64, generation int64) {
	for {
		current := p.droppedUpTo.Load()
		if generation <= current || p.droppedUpTo.CompareAndSwap(current, generation) {
			return
		}
	}
}

type UserCache struct {
	lru *expirable.LRU[int64, model.User]
	log ports.Logger
}

func NewUserCache(size int, ttl time.Duration, log ports.Logger) *UserCache {
	return &UserCache{
		lru: expirable.NewLRU[int64, model.User](size, nil, ttl),
		log: log,
	}
}

func (u *UserCache) GetUser(ctx context.Context, userID int64) (*model.User, error) {
	user, ok := u.lru.Get(userID)
	if !ok {
		u.log.Debug("User cache miss", slog.Int64("user_id", userID))
		return nil, custom_errors.ErrCacheMiss
	}
	return &user, nil
}

func (u *UserCache) SetUser(ctx context.Context, user *model.User) error {
	if user == nil {
		return fmt.Errorf("user cannot be nil")
	}
	u.lru.Add(user.ID, *user)
	return nil
}

func (u *UserCache) DeleteUser(ctx context.Context, userID int64) error {
	u.lru.Remove(userID)
	return nil
}

func cloneDetailed(d *model.PostDetailed) *model.PostDetailed {
	c := *d
	c.Post = d.Post.Clone()
	if d.Author != nil {
		author := *d.Author
		c.Author = &author
	}
	return &c
}
