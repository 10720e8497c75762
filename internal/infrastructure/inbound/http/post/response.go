package post_http

import (
	"time"

	model "devlog-post-service/internal/domain/models"
)

type AuthorResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

type PostResponse struct {
	ID           int64           `json:"id"`
	AuthorID     int64           `json:"author_id"`
	Title        string          `json:"title"`
	Content      string          `json:"content"`
	Tips         string          `json:"tips"`
	Learnings    string          `json:"learnings"`
	CodeSnippet  string          `json:"code_snippet"`
	Image        string          `json:"image"`
	Tags         []string        `json:"tags"`
	IsDraft      bool            `json:"is_draft"`
	Upvotes      []int64         `json:"upvotes"`
	Downvotes    []int64         `json:"downvotes"`
	Score        int             `json:"score"`
	Comments     []int64         `json:"comments"`
	CommentCount int             `json:"comment_count"`
	Author       *AuthorResponse `json:"author"`
	CreatedAt    *time.Time      `json:"created_at,omitempty"`
	LastSavedAt  *time.Time      `json:"last_saved_at,omitempty"`
}

type PostListResponse struct {
	Posts []*PostResponse `json:"posts"`
	Total *int            `json:"total,omitempty"`
}

type VoteResponse struct {
	Outcome model.VoteOutcome `json:"outcome"`
	Message string            `json:"message"`
}

func toPostResponse(d *model.PostDetailed) *PostResponse {
	p := d.Post
	resp := &PostResponse{
		ID:           p.ID,
		AuthorID:     p.AuthorID,
		Title:        p.Title,
		Content:      p.Content,
		Tips:         p.Tips,
		Learnings:    p.Learnings,
		CodeSnippet:  p.CodeSnippet,
		Image:        p.Image,
		Tags:         nonNil(p.Tags),
		IsDraft:      p.IsDraft,
		Upvotes:      nonNil(p.Upvotes),
		Downvotes:    nonNil(p.Downvotes),
		Score:        d.Score,
		Comments:     nonNil(p.CommentIDs),
		CommentCount: d.CommentCount,
		Author:       &AuthorResponse{ID: p.AuthorID},
	}
	if d.Author != nil {
		resp.Author = &AuthorResponse{
			ID:        d.Author.ID,
			Username:  d.Author.Username,
			AvatarURL: d.Author.AvatarURL,
		}
	}
	if p.CreatedAt.Valid {
		t := p.CreatedAt.Time
		resp.CreatedAt = &t
	}
	if p.LastSavedAt.Valid {
		t := p.LastSavedAt.Time
		resp.LastSavedAt = &t
	}
	return resp
}

func toPostListResponse(posts []*model.PostDetailed) []*PostResponse {
	out := make([]*PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}
	return out
}

func voteMessage(direction model.VoteDirection, outcome model.VoteOutcome) string {
	switch {
	case direction == model.VoteUp && outcome == model.VoteApplied:
		return "Upvoted"
	case direction == model.VoteUp:
		return "Upvote removed"
	case outcome == model.VoteApplied:
		return "Downvoted"
	default:
		return "Downvote removed"
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
