package post_service

import (
	"context"

	model "devlog-post-service/internal/domain/models"
)

//go:generate mockery --name Service --dir . --output ../../../../../mocks/post --outpkg mocks --filename PostService.go
type Service interface {
	CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.PostDetailed, error)
	GetPostByID(ctx context.Context, id int64) (*model.PostDetailed, error)
	ListPosts(ctx context.Context, filters *model.PostFilters) ([]*model.PostDetailed, int, error)
	ListPopularPosts(ctx context.Context, limit int) ([]*model.PostDetailed, error)
	ListDrafts(ctx context.Context, authorID int64) ([]*model.PostDetailed, error)
	UpdatePost(ctx context.Context, userID int64, id int64, post *model.UpdatePostDTO) (*model.PostDetailed, error)
	DeletePost(ctx context.Context, userID int64, id int64) error
	Vote(ctx context.Context, userID int64, id int64, direction model.VoteDirection) (model.VoteOutcome, error)
	AttachComment(ctx context.Context, postID int64, commentID int64) error
	DetachComment(ctx context.Context, postID int64, commentID int64) error
}
