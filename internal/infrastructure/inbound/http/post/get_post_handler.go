package post_http

import (
	"context"
	"log/slog"
	"net/http"

	model "devlog-post-service/internal/domain/models"
	ports "devlog-post-service/internal/domain/ports/output"
	"devlog-post-service/internal/infrastructure/inbound/http/response"
)

type PostGetter interface {
	GetPostByID(ctx context.Context, id int64) (*model.PostDetailed, error)
}

type GetPostHandler struct {
	postService PostGetter
	log         ports.Logger
}

func NewGetPostHandler(postService PostGetter, log ports.Logger) *GetPostHandler {
	return &GetPostHandler{
		postService: postService,
		log:         log,
	}
}

func (h *GetPostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	post, err := h.postService.GetPostByID(r.Context(), postID)
	if err != nil {
		writeServiceError(w, h.log, "GetPost", err)
		return
	}

	h.log.Debug("Post retrieved", slog.Int64("post_id", postID))
	response.WriteJSON(w, http.StatusOK, toPostResponse(post))
}
