package memory

import (
	"context"

	ports "devlog-post-service/internal/domain/ports/output"
	comment_repository "devlog-post-service/internal/domain/ports/output/comment"
	post_repository "devlog-post-service/internal/domain/ports/output/post"
	comment_memory "devlog-post-service/internal/infrastructure/outbound/repository/comment/memory"
	post_memory "devlog-post-service/internal/infrastructure/outbound/repository/post/memory"
)

// UnitOfWork hands out the shared in-memory repositories. Every repository
// call is atomic on its own; Commit and Rollback have nothing to do.
type UnitOfWork struct {
	posts    *post_memory.PostRepository
	comments *comment_memory.CommentRepository
}

func NewUnitOfWork(posts *post_memory.PostRepository, comments *comment_memory.CommentRepository) ports.UnitOfWork {
	return &UnitOfWork{posts: posts, comments: comments}
}

func (u *UnitOfWork) Begin(ctx context.Context) (ports.Transaction, error) {
	return &Transaction{posts: u.posts, comments: u.comments}, nil
}

type Transaction struct {
	posts    *post_memory.PostRepository
	comments *comment_memory.CommentRepository
}

func (t *Transaction) PostRepository() post_repository.Repository {
	return t.posts
}

func (t *Transaction) CommentRepository() comment_repository.Repository {
	return t.comments
}

func (t *Transaction) Commit(ctx context.Context) error {
	return nil
}

func (t *Transaction) Rollback(ctx context.Context) error {
	return nil
}
