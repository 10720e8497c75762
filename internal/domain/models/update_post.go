package model

// UpdatePostDTO is a partial update: a nil field was not supplied, a non-nil
// field overwrites the stored value even when it points to "" or false.
type UpdatePostDTO struct {
	Title       *string   `json:"title,omitempty"`
	Content     *string   `json:"content,omitempty"`
	Tips        *string   `json:"tips,omitempty"`
	Learnings   *string   `json:"learnings,omitempty"`
	CodeSnippet *string   `json:"code_snippet,omitempty"`
	Image       *string   `json:"image,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	IsDraft     *bool     `json:"is_draft,omitempty"`
}
