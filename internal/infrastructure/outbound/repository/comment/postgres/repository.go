package comment_repository_postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"devlog-post-service/internal/custom_errors"
	ports "devlog-post-service/internal/domain/ports/output"
	"devlog-post-service/internal/infrastructure/outbound/repository/postgres/db"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

const foreignKeyViolation = "23503"

type CommentRepository struct {
	log     ports.Logger
	db      db.PgDB
	metrics ports.MetricsProvider
}

func NewCommentRepository(db db.PgDB, log ports.Logger, metrics ports.MetricsProvider) *CommentRepository {
	return &CommentRepository{db: db, log: log, metrics: metrics}
}

// Attach appends the comment at the end of the post's references. Attaching
// an already referenced comment is a no-op.
func (c *CommentRepository) Attach(ctx context.Context, postID, commentID int64) error {
	start := time.Now()
	args := pgx.NamedArgs{
		"post_id":    postID,
		"comment_id": commentID,
		"created_at": pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}

	_, err := c.db.Exec(ctx, `
		INSERT INTO post_comments (post_id, comment_id, position, created_at)
		SELECT @post_id, @comment_id, COALESCE(MAX(position), 0) + 1, @created_at
		FROM post_comments WHERE post_id = @post_id
		ON CONFLICT (post_id, comment_id) DO NOTHING`, args)
	if err != nil {
		c.observe("comment_attach", start, false)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			c.log.Warn("Post not found during comment attach", slog.Int64("post_id", postID))
			return custom_errors.ErrPostNotFound
		}
		c.log.Error("Comment attach failed", slog.String("error", err.Error()), slog.Int64("post_id", postID), slog.Int64("comment_id", commentID))
		return custom_errors.ErrDatabaseQuery
	}

	c.observe("comment_attach", start, true)
	c.log.Debug("Comment attached", slog.Int64("post_id", postID), slog.Int64("comment_id", commentID))
	return nil
}

func (c *CommentRepository) Detach(ctx context.Context, postID, commentID int64) error {
	start := time.Now()
	result, err := c.db.Exec(ctx, `DELETE FROM post_comments WHERE post_id = @post_id AND comment_id = @comment_id`,
		pgx.NamedArgs{"post_id": postID, "comment_id": commentID})
	if err != nil {
		c.observe("comment_detach", start, false)
		c.log.Error("Comment detach failed", slog.String("error", err.Error()), slog.Int64("post_id", postID), slog.Int64("comment_id", commentID))
		return custom_errors.ErrDatabaseQuery
	}
	if result.RowsAffected() == 0 {
		c.observe("comment_detach", start, false)
		c.log.Debug("Comment reference not found", slog.Int64("post_id", postID), slog.Int64("comment_id", commentID))
		return custom_errors.ErrCommentNotFound
	}

	c.observe("comment_detach", start, true)
	return nil
}

func (c *CommentRepository) observe(queryType string, start time.Time, success bool) {
	c.metrics.IncrementDatabaseQueries(queryType, success)
	c.metrics.RecordDatabaseQueryDuration(queryType, time.Since(start))
}
