package post_http

import (
	"context"
	"log/slog"
	"net/http"

	model "devlog-post-service/internal/domain/models"
	ports "devlog-post-service/internal/domain/ports/output"
	"devlog-post-service/internal/infrastructure/inbound/http/response"
)

type PostVoter interface {
	Vote(ctx context.Context, userID int64, id int64, direction model.VoteDirection) (model.VoteOutcome, error)
}

type VoteHandler struct {
	postService PostVoter
	log         ports.Logger
}

func NewVoteHandler(postService PostVoter, log ports.Logger) *VoteHandler {
	return &VoteHandler{
		postService: postService,
		log:         log,
	}
}

// Vote returns a handler that toggles the caller's vote in the given direction.
func (h *VoteHandler) Vote(direction model.VoteDirection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}
		postID, err := pathID(r, "id")
		if err != nil {
			response.BadRequest(w, err.Error())
			return
		}

		outcome, err := h.postService.Vote(r.Context(), userID, postID, direction)
		if err != nil {
			writeServiceError(w, h.log, "Vote", err)
			return
		}

		h.log.Debug("Vote toggled",
			slog.Int64("post_id", postID),
			slog.Int64("user_id", userID),
			slog.String("direction", string(direction)),
			slog.String("outcome", string(outcome)))
		response.WriteJSON(w, http.StatusOK, VoteResponse{Outcome: outcome, Message: voteMessage(direction, outcome)})
	}
}
