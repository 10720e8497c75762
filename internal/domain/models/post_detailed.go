package model

type PostDetailed struct {
	Post         *Post `json:"post,omitempty"`
	Author       *User `json:"author,omitempty"`
	Score        int   `json:"score"`
	CommentCount int   `json:"comment_count"`
}

func NewPostDetailed(post *Post, author *User) *PostDetailed {
	return &PostDetailed{
		Post:         post,
		Author:       author,
		Score:        post.Score(),
		CommentCount: len(post.CommentIDs),
	}
}
