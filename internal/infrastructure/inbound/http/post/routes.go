package post_http

import (
	"net/http"

	model "devlog-post-service/internal/domain/models"
	post_service "devlog-post-service/internal/domain/ports/input/post"
	ports "devlog-post-service/internal/domain/ports/output"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// RegisterRoutes mounts the post API on r. requireAuth guards every route
// that acts on behalf of a user.
func RegisterRoutes(r chi.Router, service post_service.Service, validate *validator.Validate, requireAuth func(http.Handler) http.Handler, log ports.Logger) {
	create := NewCreatePostHandler(service, validate, log)
	get := NewGetPostHandler(service, log)
	list := NewListPostsHandler(service, validate, log)
	update := NewUpdatePostHandler(service, validate, log)
	del := NewDeletePostHandler(service, log)
	vote := NewVoteHandler(service, log)
	comments := NewCommentHandler(service, validate, log)

	r.Route("/api/posts", func(r chi.Router) {
		r.Get("/", list.ListPosts)
		r.Get("/popular", list.ListPopular)
		r.Get("/{id}", get.GetPost)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Post("/", create.CreatePost)
			r.Get("/drafts", list.ListDrafts)
			r.Put("/{id}", update.UpdatePost)
			r.Delete("/{id}", del.DeletePost)
			r.Put("/{id}/upvote", vote.Vote(model.VoteUp))
			r.Put("/{id}/downvote", vote.Vote(model.VoteDown))
			r.Post("/{id}/comments", comments.AttachComment)
			r.Delete("/{id}/comments/{commentID}", comments.DetachComment)
		})
	})
}
