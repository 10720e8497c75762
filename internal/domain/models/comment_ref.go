package model

import "github.com/jackc/pgx/v5/pgtype"

// CommentRef links a comment owned by the comment service to a post.
type CommentRef struct {
	PostID    int64              `json:"post_id"`
	CommentID int64              `json:"comment_id"`
	Position  int32              `json:"position"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}
