package delivery_http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"devlog-post-service/internal/custom_errors"
	model "devlog-post-service/internal/domain/models"
	delivery_http "devlog-post-service/internal/infrastructure/inbound/http"
	"devlog-post-service/internal/infrastructure/inbound/http/middleware"
	"devlog-post-service/internal/infrastructure/inbound/http/response"
	"devlog-post-service/internal/infrastructure/logger"
	"devlog-post-service/internal/infrastructure/outbound/metrics/prometheus"
	post_service_mock "devlog-post-service/mocks/post"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestAPI(t *testing.T) (http.Handler, *post_service_mock.Service) {
	svc := post_service_mock.NewService(t)
	log := logger.New("test")
	router := delivery_http.NewRouter(svc, middleware.NewJWTAuth(testSecret, log), log, prometheus.NewPrometheusMetricsProvider())
	return router, svc
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func tokenFor(t *testing.T, userID int64) string {
	return signToken(t, jwt.MapClaims{
		"id":  userID,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
}

func do(t *testing.T, h http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.ErrorBody {
	t.Helper()
	var body response.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func samplePost() *model.PostDetailed {
	post := &model.Post{
		ID:          7,
		AuthorID:    1,
		Title:       "Context cancellation",
		Content:     "Always pass ctx",
		Tags:        []string{"go"},
		CreatedAt:   pgtype.Timestamptz{Time: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), Valid: true},
		LastSavedAt: pgtype.Timestamptz{Time: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), Valid: true},
	}
	return model.NewPostDetailed(post, &model.User{ID: 1, Username: "ann", AvatarURL: "https://cdn/ann.png"})
}

func TestRouter_Health(t *testing.T) {
	h, _ := newTestAPI(t)

	rec := do(t, h, http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouter_HealthReportsFailingDependency(t *testing.T) {
	svc := post_service_mock.NewService(t)
	log := logger.New("test")
	h := delivery_http.NewRouter(svc, middleware.NewJWTAuth(testSecret, log), log, prometheus.NewPrometheusMetricsProvider(),
		delivery_http.HealthCheck{Name: "postgres", Check: func(ctx context.Context) error { return nil }},
		delivery_http.HealthCheck{Name: "redis", Check: func(ctx context.Context) error { return errors.New("connection refused") }},
	)

	rec := do(t, h, http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"unavailable","dependency":"redis"}`, rec.Body.String())
}

func TestRouter_Auth(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not a bearer token", header: "Basic dXNlcjpwYXNz"},
		{name: "garbage token", header: "Bearer not.a.token"},
		{name: "wrong secret", header: "Bearer " + func() string {
			tok, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": 1}).SignedString([]byte("other"))
			return tok
		}()},
		{name: "unsigned token", header: "Bearer " + func() string {
			tok, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"id": 1}).SignedString(jwt.UnsafeAllowNoneSignatureType)
			return tok
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestAPI(t)
			req := httptest.NewRequest(http.MethodGet, "/api/posts/drafts", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, response.KindUnauthorized, decodeError(t, rec).Error)
		})
	}

	t.Run("expired token", func(t *testing.T) {
		h, _ := newTestAPI(t)
		token := signToken(t, jwt.MapClaims{"id": 1, "exp": time.Now().Add(-time.Minute).Unix()})

		rec := do(t, h, http.MethodGet, "/api/posts/drafts", "", token)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token without user id", func(t *testing.T) {
		h, _ := newTestAPI(t)
		token := signToken(t, jwt.MapClaims{"sub": "someone"})

		rec := do(t, h, http.MethodGet, "/api/posts/drafts", "", token)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRouter_CreatePost(t *testing.T) {
	t.Run("Success uses the token's user as author", func(t *testing.T) {
		h, svc := newTestAPI(t)
		svc.On("CreatePost", mock.Anything, mock.MatchedBy(func(dto *model.CreatePostDTO) bool {
			return dto.AuthorID == 1 && dto.Title == "Context cancellation" && dto.IsDraft != nil && !*dto.IsDraft
		})).Return(samplePost(), nil)

		rec := do(t, h, http.MethodPost, "/api/posts",
			`{"title":"Context cancellation","content":"Always pass ctx","tags":["go"],"is_draft":false}`, tokenFor(t, 1))

		require.Equal(t, http.StatusCreated, rec.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, float64(7), body["id"])
		assert.Equal(t, []any{}, body["upvotes"])
		assert.Equal(t, []any{}, body["downvotes"])
		assert.Equal(t, []any{}, body["comments"])
		assert.Equal(t, float64(0), body["score"])
		assert.Equal(t, map[string]any{"id": float64(1), "username": "ann", "avatar_url": "https://cdn/ann.png"}, body["author"])
	})

	t.Run("Author id in body is rejected", func(t *testing.T) {
		h, _ := newTestAPI(t)

		rec := do(t, h, http.MethodPost, "/api/posts", `{"title":"A","content":"B","author_id":99}`, tokenFor(t, 1))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, response.KindValidation, decodeError(t, rec).Error)
	})

	t.Run("Missing title", func(t *testing.T) {
		h, _ := newTestAPI(t)

		rec := do(t, h, http.MethodPost, "/api/posts", `{"content":"B"}`, tokenFor(t, 1))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeError(t, rec).Message, "Title")
	})

	t.Run("Empty body", func(t *testing.T) {
		h, _ := newTestAPI(t)

		rec := do(t, h, http.MethodPost, "/api/posts", "", tokenFor(t, 1))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Service validation error", func(t *testing.T) {
		h, svc := newTestAPI(t)
		svc.On("CreatePost", mock.Anything, mock.Anything).
			Return(nil, custom_errors.ErrPostValidation)

		rec := do(t, h, http.MethodPost, "/api/posts", `{"title":" ","content":"B"}`, tokenFor(t, 1))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Internal errors are not leaked", func(t *testing.T) {
		h, svc := newTestAPI(t)
		svc.On("CreatePost", mock.Anything, mock.Anything).
			Return(nil, errors.New("pq: duplicate key value violates unique constraint"))

		rec := do(t, h, http.MethodPost, "/api/posts", `{"title":"A","content":"B"}`, tokenFor(t, 1))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, response.KindInternal, body.Error)
		assert.NotContains(t, body.Message, "pq")
	})
}

func TestRouter_GetPost(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		h, svc := newTestAPI(t)
		svc.On("GetPostByID", mock.Anything, int64(7)).Return(samplePost(), nil)

		rec := do(t, h, http.MethodGet, "/api/posts/7", "", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Context cancellation", body["title"])
		assert.Equal(t, "2024-05-01T10:00:00Z", body["created_at"])
	})

	t.Run("Not found", func(t *testing.T) {
		h, svc := newTestAPI(t)
		svc.On("GetPostByID", mock.Anything, int64(7)).Return(nil, custom_errors.ErrPostNotFound)

		rec := do(t, h, http.MethodGet, "/api/posts/7", "", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, response.KindNotFound, decodeError(t, rec).Error)
	})

	t.Run("Invalid id", func(t *testing.T) {
		h, _ := newTestAPI(t)

		rec := do(t, h, http.MethodGet, "/api/posts/abc", "", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRouter_ListPosts(t *testing.T) {
	t.Run("Query parameters become filters", func(t *testing.T) {
		h, svc := newTestAPI(t)
		svc.On("ListPosts", mock.Anything, mock.MatchedBy(func(f *model.PostFilters) bool {
			return f.Search != nil && *f.Search == "ctx" &&
				f.Tag != nil && *f.Tag == "go" &&
				f.Limit != nil && *f.Limit == 5 &&
				f.Offset != nil && *f.Offset == 10
		})).Return([]*model.PostDetailed{samplePost()}, 11, nil)

		rec := do(t, h, http.MethodGet, "/api/posts?search=ctx&tag=go&limit=5&offset=10", "", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			Posts []map[string]any `json:"posts"`
			Total int              `json:"total"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 11, body.Total)
		assert.Len(t, body.Posts, 1)
	})

	t.Run("No filters", func(t *testing.T) {
		h, svc := newTestAPI(t)
		svc.On("ListPosts", mock.Anything, &model.PostFilters{}).Return([]*model.PostDetailed{}, 0, nil)

		rec := do(t, h, http.MethodGet, "/api/posts", "", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"posts":[],"total":0}`, rec.Body.String())
	})

	for _, query := range []string{"limit=ten", "offset=-1", "limit=0"} {
		t.Run("Bad query "+query, func(t *testing.T) {
			h, _ := newTestAPI(t)

			rec := do(t, h, http.MethodGet, "/api/posts?"+query, "", "")

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRouter_ListPopularAndDrafts(t *testing.T) {
	t.Run("Popular default limit", func(t *testing.T) {
		h, svc := newTestAPI(t)
		svc.On("ListPopularPosts", mock.Anything, 0).Return([]*model.PostDetailed{samplePost()}, nil)

		rec := do(t, h, http.MethodGet, "/api/posts/popular", "", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), `"total"`)
	})

	t.Run("Popular explicit limit", func(t *testing.T) {
		h, svc := newTestAPI(t)
		svc.On("ListPopularPosts", mock.Anything, 3).Return([]*model.PostDetailed{}, nil)

		rec := do(t, h, http.MethodGet, "/api/posts/popular?limit=3", "", "")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Drafts belong to the caller", func(t *testing.T) {
		h, svc := newTestAPI(t)
		svc.On("ListDrafts", mock.Anything, int64(4)).Return([]*model.PostDetailed{}, nil)

		rec := do(t, h, http.MethodGet, "/api/posts/drafts", "", tokenFor(t, 4))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"posts":[]}`, rec.Body.String())
	})
}

func TestRouter_UpdatePost(t *testing.T) {
	t.Run("Only supplied fields are set", func(t *testing.T) {
		h, svc := newTestAPI(t)
		svc.On("UpdatePost", mock.Anything, int64(1), int64(7), mock.MatchedBy(func(dto *model.UpdatePostDTO) bool {
			return dto.Title == nil && dto.Content == nil &&
				dto.Tips != nil && *dto.Tips == "" &&
				dto.IsDraft != nil && *dto.IsDraft &&
				dto.Tags != nil && len(*dto.Tags) == 0
		})).Return(samplePost(), nil)

		rec := do(t, h, http.MethodPut, "/api/posts/7", `{"tips":"","is_draft":true,"tags":[]}`, tokenFor(t, 1))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Non-author", func(t *testing.T) {
		h, svc := newTestAPI(t)
		svc.On("UpdatePost", mock.Anything, int64(2), int64(7), mock.Anything).
			Return(nil, custom_errors.ErrForbidden)

		rec := do(t, h, http.MethodPut, "/api/posts/7", `{"title":"mine now"}`, tokenFor(t, 2))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, response.KindForbidden, decodeError(t, rec).Error)
	})

	t.Run("Unknown field", func(t *testing.T) {
		h, _ := newTestAPI(t)

		rec := do(t, h, http.MethodPut, "/api/posts/7", `{"upvotes":[1,2,3]}`, tokenFor(t, 1))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Requires auth", func(t *testing.T) {
		h, _ := newTestAPI(t)

		rec := do(t, h, http.MethodPut, "/api/posts/7", `{"title":"x"}`, "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRouter_DeletePost(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		h, svc := newTestAPI(t)
		svc.On("DeletePost", mock.Anything, int64(1), int64(7)).Return(nil)

		rec := do(t, h, http.MethodDelete, "/api/posts/7", "", tokenFor(t, 1))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"Post removed"}`, rec.Body.String())
	})

	t.Run("Not found", func(t *testing.T) {
		h, svc := newTestAPI(t)
		svc.On("DeletePost", mock.Anything, int64(1), int64(7)).Return(custom_errors.ErrPostNotFound)

		rec := do(t, h, http.MethodDelete, "/api/posts/7", "", tokenFor(t, 1))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRouter_Vote(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		direction model.VoteDirection
		outcome   model.VoteOutcome
		want      string
	}{
		{name: "upvote applied", path: "/api/posts/7/upvote", direction: model.VoteUp, outcome: model.VoteApplied, want: `{"outcome":"applied","message":"Upvoted"}`},
		{name: "upvote removed", path: "/api/posts/7/upvote", direction: model.VoteUp, outcome: model.VoteRemoved, want: `{"outcome":"removed","message":"Upvote removed"}`},
		{name: "downvote applied", path: "/api/posts/7/downvote", direction: model.VoteDown, outcome: model.VoteApplied, want: `{"outcome":"applied","message":"Downvoted"}`},
		{name: "downvote removed", path: "/api/posts/7/downvote", direction: model.VoteDown, outcome: model.VoteRemoved, want: `{"outcome":"removed","message":"Downvote removed"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, svc := newTestAPI(t)
			svc.On("Vote", mock.Anything, int64(3), int64(7), tt.direction).Return(tt.outcome, nil)

			rec := do(t, h, http.MethodPut, tt.path, "", tokenFor(t, 3))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, tt.want, rec.Body.String())
		})
	}

	t.Run("Unknown post", func(t *testing.T) {
		h, svc := newTestAPI(t)
		svc.On("Vote", mock.Anything, int64(3), int64(7), model.VoteUp).
			Return(model.VoteOutcome(""), custom_errors.ErrPostNotFound)

		rec := do(t, h, http.MethodPut, "/api/posts/7/upvote", "", tokenFor(t, 3))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRouter_Comments(t *testing.T) {
	t.Run("Attach", func(t *testing.T) {
		h, svc := newTestAPI(t)
		svc.On("AttachComment", mock.Anything, int64(7), int64(42)).Return(nil)

		rec := do(t, h, http.MethodPost, "/api/posts/7/comments", `{"comment_id":42}`, tokenFor(t, 1))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("Attach without comment id", func(t *testing.T) {
		h, _ := newTestAPI(t)

		rec := do(t, h, http.MethodPost, "/api/posts/7/comments", `{}`, tokenFor(t, 1))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Detach unknown reference", func(t *testing.T) {
		h, svc := newTestAPI(t)
		svc.On("DetachComment", mock.Anything, int64(7), int64(42)).Return(custom_errors.ErrCommentNotFound)

		rec := do(t, h, http.MethodDelete, "/api/posts/7/comments/42", "", tokenFor(t, 1))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
