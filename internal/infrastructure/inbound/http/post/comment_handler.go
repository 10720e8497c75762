package post_http

import (
	"context"
	"log/slog"
	"net/http"

	ports "devlog-post-service/internal/domain/ports/output"
	"devlog-post-service/internal/infrastructure/inbound/http/response"

	"github.com/go-playground/validator/v10"
)

type CommentLinker interface {
	AttachComment(ctx context.Context, postID int64, commentID int64) error
	DetachComment(ctx context.Context, postID int64, commentID int64) error
}

type CommentHandler struct {
	postService CommentLinker
	validate    *validator.Validate
	log         ports.Logger
}

func NewCommentHandler(postService CommentLinker, validate *validator.Validate, log ports.Logger) *CommentHandler {
	return &CommentHandler{
		postService: postService,
		validate:    validate,
		log:         log,
	}
}

type AttachCommentRequest struct {
	CommentID int64 `json:"comment_id" validate:"required,gt=0"`
}

func (h *CommentHandler) AttachComment(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	var req AttachCommentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		response.BadRequest(w, validationMessage(err))
		return
	}

	if err := h.postService.AttachComment(r.Context(), postID, req.CommentID); err != nil {
		writeServiceError(w, h.log, "AttachComment", err)
		return
	}

	h.log.Debug("Comment attached", slog.Int64("post_id", postID), slog.Int64("comment_id", req.CommentID))
	w.WriteHeader(http.StatusNoContent)
}

func (h *CommentHandler) DetachComment(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	commentID, err := pathID(r, "commentID")
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.postService.DetachComment(r.Context(), postID, commentID); err != nil {
		writeServiceError(w, h.log, "DetachComment", err)
		return
	}

	h.log.Debug("Comment detached", slog.Int64("post_id", postID), slog.Int64("comment_id", commentID))
	w.WriteHeader(http.StatusNoContent)
}
