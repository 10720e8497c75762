package post_service

import (
	"fmt"
	"strings"

	"devlog-post-service/internal/custom_errors"
	model "devlog-post-service/internal/domain/models"
)

func validateCreate(dto *model.CreatePostDTO) error {
	if dto == nil {
		return fmt.Errorf("%w: empty request", custom_errors.ErrPostValidation)
	}
	if isBlank(dto.Title) || isBlank(dto.Content) {
		return fmt.Errorf("%w: title and content are required", custom_errors.ErrPostValidation)
	}
	return nil
}

func validateUpdate(dto *model.UpdatePostDTO) error {
	if dto == nil {
		return fmt.Errorf("%w: empty request", custom_errors.ErrPostValidation)
	}
	if dto.Title != nil && isBlank(*dto.Title) {
		return fmt.Errorf("%w: title cannot be empty", custom_errors.ErrPostValidation)
	}
	if dto.Content != nil && isBlank(*dto.Content) {
		return fmt.Errorf("%w: content cannot be empty", custom_errors.ErrPostValidation)
	}
	return nil
}

// authorize allows only the author of a post to change it.
func authorize(post *model.Post, userID int64) error {
	if post.AuthorID != userID {
		return custom_errors.ErrForbidden
	}
	return nil
}

// normalizeTags trims tags, drops empty ones and keeps the first occurrence
// of duplicates. The result is never nil.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
