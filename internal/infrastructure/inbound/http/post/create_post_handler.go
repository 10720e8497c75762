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

type PostCreator interface {
	CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.PostDetailed, error)
}

type CreatePostHandler struct {
	postService PostCreator
	validate    *validator.Validate
	log         ports.Logger
}

func NewCreatePostHandler(postService PostCreator, validate *validator.Validate, log ports.Logger) *CreatePostHandler {
	return &CreatePostHandler{
		postService: postService,
		validate:    validate,
		log:         log,
	}
}

type CreatePostRequest struct {
	Title       string   `json:"title" validate:"required,max=255"`
	Content     string   `json:"content" validate:"required"`
	Tips        string   `json:"tips"`
	Learnings   string   `json:"learnings"`
	CodeSnippet string   `json:"code_snippet"`
	Image       string   `json:"image" validate:"omitempty,max=2048"`
	Tags        []string `json:"tags" validate:"max=20,dive,max=50"`
	IsDraft     *bool    `json:"is_draft"`
}

func (h *CreatePostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req CreatePostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.log.Debug("CreatePost body rejected", slog.Int64("user_id", userID), slog.String("error", err.Error()))
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		h.log.Debug("CreatePost validation failed", slog.Int64("user_id", userID), slog.String("error", err.Error()))
		response.BadRequest(w, validationMessage(err))
		return
	}

	created, err := h.postService.CreatePost(r.Context(), &model.CreatePostDTO{
		AuthorID:    userID,
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
		writeServiceError(w, h.log, "CreatePost", err)
		return
	}

	h.log.Debug("Post created", slog.Int64("post_id", created.Post.ID), slog.Int64("author_id", userID))
	response.WriteJSON(w, http.StatusCreated, toPostResponse(created))
}
