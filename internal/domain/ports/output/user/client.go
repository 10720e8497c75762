package user_client

import (
	"context"

	model "devlog-post-service/internal/domain/models"
)

//go:generate mockery --name Client --dir . --output ../../../../../mocks/user --outpkg mocks --filename UserClient.go
type Client interface {
	GetUser(ctx context.Context, id int64) (*model.User, error)
}
