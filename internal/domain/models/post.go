package model

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

type Post struct {
	ID          int64    `json:"id"`
	AuthorID    int64    `json:"author_id"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Tips        string   `json:"tips"`
	Learnings   string   `json:"learnings"`
	CodeSnippet string   `json:"code_snippet"`
	Image       string   `json:"image"`
	Tags        []string `json:"tags"`
	IsDraft     bool     `json:"is_draft"`
	Ledger
	CommentIDs  []int64            `json:"comments"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
	LastSavedAt pgtype.Timestamptz `json:"last_saved_at"`
}

// ApplyUpdate overwrites every field present in the update and stamps LastSavedAt.
func (p *Post) ApplyUpdate(update *UpdatePostDTO, now time.Time) {
	if update.Title != nil {
		p.Title = *update.Title
	}
	if update.Content != nil {
		p.Content = *update.Content
	}
	if update.Tips != nil {
		p.Tips = *update.Tips
	}
	if update.Learnings != nil {
		p.Learnings = *update.Learnings
	}
	if update.CodeSnippet != nil {
		p.CodeSnippet = *update.CodeSnippet
	}
	if update.Image != nil {
		p.Image = *update.Image
	}
	if update.Tags != nil {
		p.Tags = append([]string{}, (*update.Tags)...)
	}
	if update.IsDraft != nil {
		p.IsDraft = *update.IsDraft
	}
	p.LastSavedAt = pgtype.Timestamptz{Time: now, Valid: true}
}

func (p *Post) Clone() *Post {
	c := *p
	c.Tags = append([]string{}, p.Tags...)
	c.Ledger = p.Ledger.Clone()
	c.CommentIDs = append([]int64{}, p.CommentIDs...)
	return &c
}
