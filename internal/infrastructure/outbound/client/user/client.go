package user_client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"devlog-post-service/internal/custom_errors"
	model "devlog-post-service/internal/domain/models"
	ports "devlog-post-service/internal/domain/ports/output"
	"devlog-post-service/internal/infrastructure/config"

	"github.com/hashicorp/go-retryablehttp"
)

// HTTPClient resolves user profiles from the user service over HTTP.
type HTTPClient struct {
	baseURL string
	client  *retryablehttp.Client
	log     ports.Logger
	metrics ports.MetricsProvider
}

type userResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

func NewHTTPClient(cfg config.UserService, log ports.Logger, metrics ports.MetricsProvider) *HTTPClient {
	client := retryablehttp.NewClient()
	client.RetryMax = cfg.RetryMax
	client.RetryWaitMin = 100 * time.Millisecond
	client.RetryWaitMax = time.Second
	client.HTTPClient.Timeout = cfg.Timeout
	client.Logger = log

	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  client,
		log:     log,
		metrics: metrics,
	}
}

func (c *HTTPClient) GetUser(ctx context.Context, id int64) (*model.User, error) {
	url := c.baseURL + "/users/" + strconv.FormatInt(id, 10)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.metrics.IncrementUserServiceRequests(false)
		return nil, fmt.Errorf("%w: build request: %v", custom_errors.ErrExternalServiceError, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.IncrementUserServiceRequests(false)
		c.log.Warn("User service request failed", slog.Int64("user_id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrExternalServiceError
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		c.metrics.IncrementUserServiceRequests(true)
		c.log.Debug("User not found in user service", slog.Int64("user_id", id))
		return nil, custom_errors.ErrUserNotFound
	case resp.StatusCode != http.StatusOK:
		c.metrics.IncrementUserServiceRequests(false)
		_, _ = io.Copy(io.Discard, resp.Body)
		c.log.Warn("Unexpected user service status", slog.Int64("user_id", id), slog.Int("status", resp.StatusCode))
		return nil, custom_errors.ErrExternalServiceError
	}

	var body userResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.metrics.IncrementUserServiceRequests(false)
		c.log.Warn("Failed to decode user service response", slog.Int64("user_id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrExternalServiceError
	}

	c.metrics.IncrementUserServiceRequests(true)
	return &model.User{ID: body.ID, Username: body.Username, AvatarURL: body.AvatarURL}, nil
}
