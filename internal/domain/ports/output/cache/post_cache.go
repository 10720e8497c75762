package cache

import (
	"context"

	model "devlog-post-service/internal/domain/models"
)

// PostCache holds detailed posts keyed by id. Every DeletePost advances the
// entry's version, and SetPost refuses to store a post that was loaded before
// the latest invalidation, returning custom_errors.ErrCacheInvalidated.
//
//go:generate mockery --name PostCache --dir . --output ../../../../../mocks/cache --outpkg mocks --filename PostCache.go
type PostCache interface {
	GetPost(ctx context.Context, postID int64) (*model.PostDetailed, error)
	// PostVersion must be read before the post passed to SetPost is loaded.
	PostVersion(ctx context.Context, postID int64) (int64, error)
	SetPost(ctx context.Context, post *model.PostDetailed, version int64) error
	DeletePost(ctx context.Context, postID int64) error
}
