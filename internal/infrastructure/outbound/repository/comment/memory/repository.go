package memory

import (
	"context"
	"log/slog"

	ports "devlog-post-service/internal/domain/ports/output"
	post_memory "devlog-post-service/internal/infrastructure/outbound/repository/post/memory"
)

// CommentRepository stores comment references next to the posts they belong
// to, so deleting a post drops its references as well.
type CommentRepository struct {
	log   ports.Logger
	posts *post_memory.PostRepository
}

func NewCommentRepository(posts *post_memory.PostRepository, log ports.Logger) *CommentRepository {
	return &CommentRepository{posts: posts, log: log}
}

func (c *CommentRepository) Attach(ctx context.Context, postID, commentID int64) error {
	if err := c.posts.AttachComment(postID, commentID); err != nil {
		return err
	}
	c.log.Debug("Comment attached (memory impl)", slog.Int64("post_id", postID), slog.Int64("comment_id", commentID))
	return nil
}

func (c *CommentRepository) Detach(ctx context.Context, postID, commentID int64) error {
	if err := c.posts.DetachComment(postID, commentID); err != nil {
		c.log.Debug("Comment reference not found", slog.Int64("post_id", postID), slog.Int64("comment_id", commentID))
		return err
	}
	return nil
}
