package post_http

import (
	"context"
	"log/slog"
	"net/http"

	model "devlog-post-service/internal/domain/models"
	ports "devlog-post-service/internal/domain/ports/output"
	"devlog-post-service/internal/infrastructure/inbound/http/response"

	"github.com/go-playground/validator/v10"
)

type PostLister interface {
	ListPosts(ctx context.Context, filters *model.PostFilters) ([]*model.PostDetailed, int, error)
	ListPopularPosts(ctx context.Context, limit int) ([]*model.PostDetailed, error)
	ListDrafts(ctx context.Context, authorID int64) ([]*model.PostDetailed, error)
}

type ListPostsHandler struct {
	postService PostLister
	validate    *validator.Validate
	log         ports.Logger
}

func NewListPostsHandler(postService PostLister, validate *validator.Validate, log ports.Logger) *ListPostsHandler {
	return &ListPostsHandler{
		postService: postService,
		validate:    validate,
		log:         log,
	}
}

type ListPostsRequest struct {
	Search *string `validate:"omitempty,max=200"`
	Tag    *string `validate:"omitempty,max=50"`
	Limit  *int    `validate:"omitnil,gte=1"`
	Offset *int    `validate:"omitnil,gte=0"`
}

type ListPopularRequest struct {
	Limit *int `validate:"omitnil,gte=1"`
}

func (h *ListPostsHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	req := ListPostsRequest{
		Search: queryString(r, "search"),
		Tag:    queryString(r, "tag"),
		Limit:  limit,
		Offset: offset,
	}
	if err := h.validate.Struct(&req); err != nil {
		h.log.Debug("ListPosts validation failed", slog.String("error", err.Error()))
		response.BadRequest(w, validationMessage(err))
		return
	}

	posts, total, err := h.postService.ListPosts(r.Context(), &model.PostFilters{
		Search: req.Search,
		Tag:    req.Tag,
		Limit:  req.Limit,
		Offset: req.Offset,
	})
	if err != nil {
		writeServiceError(w, h.log, "ListPosts", err)
		return
	}

	h.log.Debug("Posts listed", slog.Int("count", len(posts)), slog.Int("total", total))
	response.WriteJSON(w, http.StatusOK, PostListResponse{Posts: toPostListResponse(posts), Total: &total})
}

func (h *ListPostsHandler) ListPopular(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	req := ListPopularRequest{Limit: limit}
	if err := h.validate.Struct(&req); err != nil {
		response.BadRequest(w, validationMessage(err))
		return
	}

	var n int
	if req.Limit != nil {
		n = *req.Limit
	}
	posts, err := h.postService.ListPopularPosts(r.Context(), n)
	if err != nil {
		writeServiceError(w, h.log, "ListPopular", err)
		return
	}

	response.WriteJSON(w, http.StatusOK, PostListResponse{Posts: toPostListResponse(posts)})
}

func (h *ListPostsHandler) ListDrafts(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	posts, err := h.postService.ListDrafts(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.log, "ListDrafts", err)
		return
	}

	h.log.Debug("Drafts listed", slog.Int64("author_id", userID), slog.Int("count", len(posts)))
	response.WriteJSON(w, http.StatusOK, PostListResponse{Posts: toPostListResponse(posts)})
}
