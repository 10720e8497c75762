package post_service

import (
	"context"
	"errors"
	"log/slog"

	"devlog-post-service/internal/custom_errors"
	model "devlog-post-service/internal/domain/models"
	post_service "devlog-post-service/internal/domain/ports/input/post"
	output "devlog-post-service/internal/domain/ports/output"
	"devlog-post-service/internal/domain/ports/output/cache"
)

// PostServiceCacheDecorator serves single-post reads from the post cache and
// evicts the cached entry after every successful write to that post. A read
// only fills the cache when no eviction happened while it was loading. Lists
// are never cached.
type PostServiceCacheDecorator struct {
	service   post_service.Service
	postCache cache.PostCache
	log       output.Logger
	metrics   output.MetricsProvider
}

func NewPostServiceCacheDecorator(
	service post_service.Service,
	postCache cache.PostCache,
	log output.Logger,
	metrics output.MetricsProvider,
) post_service.Service {
	return &PostServiceCacheDecorator{
		service:   service,
		postCache: postCache,
		log:       log,
		metrics:   metrics,
	}
}

func (d *PostServiceCacheDecorator) CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.PostDetailed, error) {
	return d.service.CreatePost(ctx, post)
}

func (d *PostServiceCacheDecorator) GetPostByID(ctx context.Context, id int64) (*model.PostDetailed, error) {
	cachedPost, err := d.postCache.GetPost(ctx, id)
	if err == nil {
		d.log.Debug("Post found in cache", slog.Int64("post_id", id))
		d.metrics.IncrementCacheHits()
		return cachedPost, nil
	}

	if !errors.Is(err, custom_errors.ErrCacheMiss) {
		d.log.Warn("Failed to get post from cache",
			slog.Int64("post_id", id),
			slog.String("error", err.Error()))
	}
	d.metrics.IncrementCacheMisses()

	version, versionErr := d.postCache.PostVersion(ctx, id)
	if versionErr != nil {
		d.log.Warn("Failed to read post cache version",
			slog.Int64("post_id", id),
			slog.String("error", versionErr.Error()))
	}

	post, err := d.service.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if versionErr != nil {
		return post, nil
	}

	if err := d.postCache.SetPost(ctx, post, version); err != nil {
		if errors.Is(err, custom_errors.ErrCacheInvalidated) {
			d.log.Debug("Post changed while loading, not caching", slog.Int64("post_id", id))
		} else {
			d.log.Warn("Failed to cache post",
				slog.Int64("post_id", id),
				slog.String("error", err.Error()))
		}
	}
	return post, nil
}

func (d *PostServiceCacheDecorator) ListPosts(ctx context.Context, filters *model.PostFilters) ([]*model.PostDetailed, int, error) {
	return d.service.ListPosts(ctx, filters)
}

func (d *PostServiceCacheDecorator) ListPopularPosts(ctx context.Context, limit int) ([]*model.PostDetailed, error) {
	return d.service.ListPopularPosts(ctx, limit)
}

func (d *PostServiceCacheDecorator) ListDrafts(ctx context.Context, authorID int64) ([]*model.PostDetailed, error) {
	return d.service.ListDrafts(ctx, authorID)
}

func (d *PostServiceCacheDecorator) UpdatePost(ctx context.Context, userID int64, id int64, post *model.UpdatePostDTO) (*model.PostDetailed, error) {
	result, err := d.service.UpdatePost(ctx, userID, id, post)
	if err != nil {
		return nil, err
	}
	d.evict(ctx, id, "update")
	return result, nil
}

func (d *PostServiceCacheDecorator) DeletePost(ctx context.Context, userID int64, id int64) error {
	if err := d.service.DeletePost(ctx, userID, id); err != nil {
		return err
	}
	d.evict(ctx, id, "delete")
	return nil
}

func (d *PostServiceCacheDecorator) Vote(ctx context.Context, userID int64, id int64, direction model.VoteDirection) (model.VoteOutcome, error) {
	outcome, err := d.service.Vote(ctx, userID, id, direction)
	if err != nil {
		return "", err
	}
	d.evict(ctx, id, "vote")
	return outcome, nil
}

func (d *PostServiceCacheDecorator) AttachComment(ctx context.Context, postID int64, commentID int64) error {
	if err := d.service.AttachComment(ctx, postID, commentID); err != nil {
		return err
	}
	d.evict(ctx, postID, "attach comment")
	return nil
}

func (d *PostServiceCacheDecorator) DetachComment(ctx context.Context, postID int64, commentID int64) error {
	if err := d.service.DetachComment(ctx, postID, commentID); err != nil {
		return err
	}
	d.evict(ctx, postID, "detach comment")
	return nil
}

func (d *PostServiceCacheDecorator) evict(ctx context.Context, postID int64, after string) {
	if err := d.postCache.DeletePost(ctx, postID); err != nil {
		d.log.Warn("Failed to invalidate post cache after "+after,
			slog.Int64("post_id", postID),
			slog.String("error", err.Error()))
	}
}
