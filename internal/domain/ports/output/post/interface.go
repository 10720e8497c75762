package post_repository

import (
	"context"

	model "devlog-post-service/internal/domain/models"
)

//go:generate mockery --name Repository --dir . --output ../../../../../mocks/post --outpkg mocks --filename PostRepository.go
type Repository interface {
	Create(ctx context.Context, post *model.Post) (*model.Post, error)
	GetByID(ctx context.Context, id int64) (*model.Post, error)
	Update(ctx context.Context, id int64, update *model.UpdatePostDTO) (*model.Post, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filters model.PostFilters) ([]*model.Post, int, error)
	ListPopular(ctx context.Context, limit int) ([]*model.Post, error)
	ListDrafts(ctx context.Context, authorID int64) ([]*model.Post, error)
	ApplyVote(ctx context.Context, postID, userID int64, direction model.VoteDirection) (model.VoteOutcome, error)
}
