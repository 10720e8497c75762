package model

// User is the public profile of an author as resolved by the user service.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}
