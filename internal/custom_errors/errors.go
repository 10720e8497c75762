package custom_errors

import "errors"

// Post errors
var (
	ErrPostNotFound   = errors.New("post not found")
	ErrPostValidation = errors.New("post validation failed")
	ErrForbidden      = errors.New("user is not the author of the post")
)

// Vote errors
var (
	ErrInvalidVoteDirection = errors.New("vote direction must be up or down")
	ErrVoteApplyFailed      = errors.New("failed to apply vote")
)

// Comment reference errors
var (
	ErrCommentNotFound = errors.New("comment reference not found")
)

// User errors
var (
	ErrUserNotFound = errors.New("user not found")
)

// Infrastructure errors
var (
	ErrDatabaseQuery        = errors.New("database query failed")
	ErrCacheMiss            = errors.New("cache miss")
	ErrCacheInvalidated     = errors.New("cache entry invalidated during load")
	ErrExternalServiceError = errors.New("external service error")
)
