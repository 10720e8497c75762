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

type PostUpdater interface {
	UpdatePost(ctx context.Context, userID int64, id int64, post *model.UpdatePostDTO) (*model.PostDetailed, error)
}

type UpdatePostHandler struct {
	postService PostUpdater
	validate    *validator.Validate
	log         ports.Logger
}

func NewUpdatePostHandler(postService PostUpdater, validate *validator.Validate, log ports.Logger) *UpdatePostHandler {
	return &UpdatePostHandler{
		postService: postService,
		validate:    validate,
		log:         log,
	}
}

// UpdatePostRequest is partial: an absent key leaves the field untouched, an
// explicit "" or false overwrites it.
type UpdatePostRequest struct {
	Title       *string   `json:"title" validate:"omitempty,max=255"`
	Content     *string   `json:"content"`
	Tips        *string   `json:"tips"`
	Learnings   *string   `json:"learnings"`
	CodeSnippet *string   `json:"code_snippet"`
	Image       *string   `json:"image" validate:"omitempty,max=2048"`
	Tags        *[]string `json:"tags" validate:"omitempty,max=20,dive,max=50"`
	IsDraft     *bool     `json:"is_draft"`
}

func (h *UpdatePostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	postID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	var req UpdatePostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.log.Debug("UpdatePost body rejected", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		h.log.Debug("UpdatePost validation failed", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		response.BadRequest(w, validationMessage(err))
		return
	}

	updated, err := h.postService.UpdatePost(r.Context(), userID, postID, &model.UpdatePostDTO{
		Title:       req.Title,
		Content:     req.Content,
		Tips:        req.Tips,
		Learnings:   req.Learnings,
		CodeSnippet: req.CodeSnippet,
		Image:       req.Image,
		Tags:        req.Tags,
		IsDraft:     req.IsDraft,
	})
	if err != nil {
		writeServiceError(w, h.log, "UpdatePost", err)
		return
	}

	h.log.Debug("Post updated", slog.Int64("post_id", postID), slog.Int64("user_id", userID))
	response.WriteJSON(w, http.StatusOK, toPostResponse(updated))
}
