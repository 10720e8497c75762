package model

type CreatePostDTO struct {
	AuthorID    int64    `json:"author_id"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Tips        string   `json:"tips,omitempty"`
	Learnings   string   `json:"learnings,omitempty"`
	CodeSnippet string   `json:"code_snippet,omitempty"`
	Image       string   `json:"image,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	IsDraft     *bool    `json:"is_draft,omitempty"`
}
