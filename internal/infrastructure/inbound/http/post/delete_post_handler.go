package post_http

import (
	"context"
	"log/slog"
	"net/http"

	ports "devlog-post-service/internal/domain/ports/output"
	"devlog-post-service/internal/infrastructure/inbound/http/response"
)

type PostDeleter interface {
	DeletePost(ctx context.Context, userID int64, id int64) error
}

type DeletePostHandler struct {
	postService PostDeleter
	log         ports.Logger
}

func NewDeletePostHandler(postService PostDeleter, log ports.Logger) *DeletePostHandler {
	return &DeletePostHandler{
		postService: postService,
		log:         log,
	}
}

func (h *DeletePostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	postID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.postService.DeletePost(r.Context(), userID, postID); err != nil {
		writeServiceError(w, h.log, "DeletePost", err)
		return
	}

	h.log.Debug("Post deleted", slog.Int64("post_id", postID), slog.Int64("user_id", userID))
	response.WriteJSON(w, http.StatusOK, response.MessageBody{Message: "Post removed"})
}
