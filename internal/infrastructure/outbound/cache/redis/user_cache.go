package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"devlog-post-service/internal/custom_errors"
	model "devlog-post-service/internal/domain/models"
	ports "devlog-post-service/internal/domain/ports/output"
)

const userCacheKeyPrefix = "user:"

type UserCache struct {
	client *Client
	log    ports.Logger
	ttl    time.Duration
}

func NewUserCache(client *Client, log ports.Logger, ttl time.Duration) *UserCache {
	return &UserCache{
		client: client,
		log:    log,
		ttl:    ttl,
	}
}

func (u *UserCache) GetUser(ctx context.Context, userID int64) (*model.User, error) {
	var user model.User
	err := u.client.Get(ctx, userKey(userID), &user)
	if err != nil {
		if errors.Is(err, custom_errors.ErrCacheMiss) {
			u.log.Debug("User cache miss", slog.Int64("user_id", userID))
			return nil, custom_errors.ErrCacheMiss
		}
		u.log.Error("Failed to get user from cache",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get user from cache: %w", err)
	}

	return &user, nil
}

func (u *UserCache) SetUser(ctx context.Context, user *model.User) error {
	if user == nil {
		return fmt.Errorf("user cannot be nil")
	}

	if err := u.client.Set(ctx, userKey(user.ID), user, u.ttl); err != nil {
		u.log.Error("Failed to set user cache",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to set user cache: %w", err)
	}
	return nil
}

func (u *UserCache) DeleteUser(ctx context.Context, userID int64) error {
	if err := u.client.Delete(ctx, userKey(userID)); err != nil {
		u.log.Error("Failed to delete user from cache",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete user from cache: %w", err)
	}
	return nil
}

func userKey(userID int64) string {
	return userCacheKeyPrefix + strconv.FormatInt(userID, 10)
}
