package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"devlog-post-service/internal/custom_errors"
	model "devlog-post-service/internal/domain/models"
	ports "devlog-post-service/internal/domain/ports/output"
)

const (
	postCacheKeyPrefix   = "post:"
	postVersionKeyPrefix = "post_version:"
)

type PostCache struct {
	client *Client
	log    ports.Logger
	ttl    time.Duration
}

func NewPostCache(client *Client, log ports.Logger, ttl time.Duration) *PostCache {
	return &PostCache{
		client: client,
		log:    log,
		ttl:    ttl,
	}
}

func (p *PostCache) GetPost(ctx context.Context, postID int64) (*model.PostDetailed, error) {
	var post model.PostDetailed
	err := p.client.Get(ctx, postKey(postID), &post)
	if err != nil {
		if errors.Is(err, custom_errors.ErrCacheMiss) {
			p.log.Debug("Post cache miss", slog.Int64("post_id", postID))
			return nil, custom_errors.ErrCacheMiss
		}
		p.log.Error("Failed to get post from cache",
			slog.Int64("post_id", postID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get post from cache: %w", err)
	}

	p.log.Debug("Post cache hit", slog.Int64("post_id", postID))
	return &post, nil
}

func (p *PostCache) PostVersion(ctx context.Context, postID int64) (int64, error) {
	version, err := p.client.Version(ctx, postVersionKey(postID))
	if err != nil {
		return 0, fmt.Errorf("failed to read post cache version: %w", err)
	}
	return version, nil
}

func (p *PostCache) SetPost(ctx context.Context, post *model.PostDetailed, version int64) error {
	if post == nil || post.Post == nil {
		return fmt.Errorf("post cannot be nil")
	}

	err := p.client.SetIfVersion(ctx, postKey(post.Post.ID), postVersionKey(post.Post.ID), version, post, p.ttl)
	if err != nil {
		if errors.Is(err, custom_errors.ErrCacheInvalidated) {
			return err
		}
		p.log.Error("Failed to set post cache",
			slog.Int64("post_id", post.Post.ID),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to set post cache: %w", err)
	}

	p.log.Debug("Post cached successfully",
		slog.Int64("post_id", post.Post.ID),
		slog.Duration("ttl", p.ttl))
	return nil
}

// DeletePost drops the entry and bumps its version so loads already in
// flight cannot write it back. The version expires one post TTL after the
// last invalidation.
func (p *PostCache) DeletePost(ctx context.Context, postID int64) error {
	if err := p.client.Invalidate(ctx, postKey(postID), postVersionKey(postID), p.ttl); err != nil {
		p.log.Error("Failed to delete post from cache",
			slog.Int64("post_id", postID),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete post from cache: %w", err)
	}

	p.log.Debug("Post deleted from cache", slog.Int64("post_id", postID))
	return nil
}

func postKey(postID int64) string {
	return postCacheKeyPrefix + strconv.FormatInt(postID, 10)
}

func postVersionKey(postID int64) string {
	return postVersionKeyPrefix + strconv.FormatInt(postID, 10)
}
