package comment_repository

import "context"

//go:generate mockery --name Repository --dir . --output ../../../../../mocks/comment --outpkg mocks --filename CommentRepository.go
type Repository interface {
	Attach(ctx context.Context, postID, commentID int64) error
	Detach(ctx context.Context, postID, commentID int64) error
}
