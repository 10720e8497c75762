package post_service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"devlog-post-service/internal/custom_errors"
	model "devlog-post-service/internal/domain/models"
	ports "devlog-post-service/internal/domain/ports/output"
	post_repository "devlog-post-service/internal/domain/ports/output/post"
	user_client "devlog-post-service/internal/domain/ports/output/user"
	"devlog-post-service/internal/domain/ranking"
)

type Options struct {
	DefaultDraft     bool
	PopularLimit     int
	MaxPopularLimit  int
	DefaultListLimit int
	MaxListLimit     int
}

func DefaultOptions() Options {
	return Options{
		DefaultDraft:     false,
		PopularLimit:     ranking.DefaultPopularLimit,
		MaxPopularLimit:  50,
		DefaultListLimit: 20,
		MaxListLimit:     100,
	}
}

type PostService struct {
	postRepo   post_repository.Repository
	uow        ports.UnitOfWork
	userClient user_client.Client
	log        ports.Logger
	metrics    ports.MetricsProvider
	opts       Options
}

func NewPostService(
	postRepo post_repository.Repository,
	uow ports.UnitOfWork,
	userClient user_client.Client,
	log ports.Logger,
	metrics ports.MetricsProvider,
	opts Options,
) *PostService {
	return &PostService{
		postRepo:   postRepo,
		uow:        uow,
		userClient: userClient,
		log:        log,
		metrics:    metrics,
		opts:       opts,
	}
}

func (s *PostService) CreatePost(ctx context.Context, dto *model.CreatePostDTO) (result *model.PostDetailed, err error) {
	defer func() { s.metrics.IncrementPostOperations("create", err == nil) }()

	if err := validateCreate(dto); err != nil {
		s.log.Debug("Invalid create post request", slog.String("error", err.Error()))
		return nil, err
	}

	isDraft := s.opts.DefaultDraft
	if dto.IsDraft != nil {
		isDraft = *dto.IsDraft
	}

	newPost := &model.Post{
		AuthorID:    dto.AuthorID,
		Title:       dto.Title,
		Content:     dto.Content,
		Tips:        dto.Tips,
		Learnings:   dto.Learnings,
		CodeSnippet: dto.CodeSnippet,
		Image:       dto.Image,
		Tags:        normalizeTags(dto.Tags),
		IsDraft:     isDraft,
	}

	var createdPost *model.Post
	err = s.inTx(ctx, func(tx ports.Transaction) error {
		var createErr error
		createdPost, createErr = tx.PostRepository().Create(ctx, newPost)
		return createErr
	})
	if err != nil {
		s.log.Error("Failed to create post", slog.Int64("author_id", dto.AuthorID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	s.log.Info("Post created", slog.Int64("post_id", createdPost.ID), slog.Int64("author_id", createdPost.AuthorID), slog.Bool("is_draft", createdPost.IsDraft))
	return model.NewPostDetailed(createdPost, s.resolveAuthor(ctx, createdPost.AuthorID)), nil
}

func (s *PostService) GetPostByID(ctx context.Context, id int64) (*model.PostDetailed, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post not found", slog.Int64("id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to get post by id", slog.String("error", err.Error()), slog.Int64("id", id))
		return nil, custom_errors.ErrDatabaseQuery
	}

	return model.NewPostDetailed(post, s.resolveAuthor(ctx, post.AuthorID)), nil
}

func (s *PostService) ListPosts(ctx context.Context, filters *model.PostFilters) ([]*model.PostDetailed, int, error) {
	window := s.listWindow(filters)

	posts, total, err := s.postRepo.List(ctx, window)
	if err != nil {
		s.log.Error("Failed to list posts", slog.String("error", err.Error()))
		return nil, 0, custom_errors.ErrDatabaseQuery
	}

	return s.detailAll(ctx, posts), total, nil
}

func (s *PostService) ListPopularPosts(ctx context.Context, limit int) ([]*model.PostDetailed, error) {
	if limit <= 0 {
		limit = s.opts.PopularLimit
	}
	if s.opts.MaxPopularLimit > 0 && limit > s.opts.MaxPopularLimit {
		limit = s.opts.MaxPopularLimit
	}

	posts, err := s.postRepo.ListPopular(ctx, limit)
	if err != nil {
		s.log.Error("Failed to list popular posts", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	return s.detailAll(ctx, posts), nil
}

func (s *PostService) ListDrafts(ctx context.Context, authorID int64) ([]*model.PostDetailed, error) {
	posts, err := s.postRepo.ListDrafts(ctx, authorID)
	if err != nil {
		s.log.Error("Failed to list drafts", slog.Int64("author_id", authorID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	return s.detailAll(ctx, posts), nil
}

func (s *PostService) UpdatePost(ctx context.Context, userID int64, id int64, dto *model.UpdatePostDTO) (result *model.PostDetailed, err error) {
	defer func() { s.metrics.IncrementPostOperations("update", err == nil) }()

	var updatedPost *model.Post
	err = s.inTx(ctx, func(tx ports.Transaction) error {
		postRepo := tx.PostRepository()

		existingPost, err := postRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := authorize(existingPost, userID); err != nil {
			s.log.Debug("User is not author of post", slog.Int64("user_id", userID), slog.Int64("author_id", existingPost.AuthorID))
			return err
		}
		if err := validateUpdate(dto); err != nil {
			return err
		}

		update := *dto
		if update.Tags != nil {
			tags := normalizeTags(*update.Tags)
			update.Tags = &tags
		}

		updatedPost, err = postRepo.Update(ctx, id, &update)
		return err
	})
	if err != nil {
		return nil, s.translate("update post", id, err)
	}

	s.log.Info("Post updated", slog.Int64("post_id", id), slog.Int64("user_id", userID), slog.Bool("is_draft", updatedPost.IsDraft))
	return model.NewPostDetailed(updatedPost, s.resolveAuthor(ctx, updatedPost.AuthorID)), nil
}

func (s *PostService) DeletePost(ctx context.Context, userID int64, id int64) (err error) {
	defer func() { s.metrics.IncrementPostOperations("delete", err == nil) }()

	err = s.inTx(ctx, func(tx ports.Transaction) error {
		postRepo := tx.PostRepository()

		existingPost, err := postRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := authorize(existingPost, userID); err != nil {
			s.log.Debug("User is not author of post", slog.Int64("user_id", userID), slog.Int64("author_id", existingPost.AuthorID))
			return err
		}
		return postRepo.Delete(ctx, id)
	})
	if err != nil {
		return s.translate("delete post", id, err)
	}

	s.log.Info("Post deleted", slog.Int64("post_id", id), slog.Int64("user_id", userID))
	return nil
}

// Vote toggles the user's vote on the post: a vote in the other direction is
// cleared, a repeated vote in the same direction is withdrawn.
func (s *PostService) Vote(ctx context.Context, userID int64, id int64, direction model.VoteDirection) (model.VoteOutcome, error) {
	if err := direction.IsValid(); err != nil {
		return "", err
	}

	var outcome model.VoteOutcome
	err := s.inTx(ctx, func(tx ports.Transaction) error {
		var voteErr error
		outcome, voteErr = tx.PostRepository().ApplyVote(ctx, id, userID, direction)
		return voteErr
	})
	if err != nil {
		s.metrics.IncrementVoteOperations(string(direction), "failed")
		return "", s.translate("vote", id, err)
	}

	s.metrics.IncrementVoteOperations(string(direction), string(outcome))
	s.log.Debug("Vote recorded", slog.Int64("post_id", id), slog.Int64("user_id", userID),
		slog.String("direction", string(direction)), slog.String("outcome", string(outcome)))
	return outcome, nil
}

func (s *PostService) AttachComment(ctx context.Context, postID int64, commentID int64) (err error) {
	defer func() { s.metrics.IncrementCommentOperations("attach", err == nil) }()

	if commentID <= 0 {
		return fmt.Errorf("%w: comment id must be positive", custom_errors.ErrPostValidation)
	}

	err = s.inTx(ctx, func(tx ports.Transaction) error {
		return tx.CommentRepository().Attach(ctx, postID, commentID)
	})
	if err != nil {
		return s.translate("attach comment", postID, err)
	}
	return nil
}

func (s *PostService) DetachComment(ctx context.Context, postID int64, commentID int64) (err error) {
	defer func() { s.metrics.IncrementCommentOperations("detach", err == nil) }()

	err = s.inTx(ctx, func(tx ports.Transaction) error {
		return tx.CommentRepository().Detach(ctx, postID, commentID)
	})
	if err != nil {
		return s.translate("detach comment", postID, err)
	}
	return nil
}

// inTx runs fn in a unit of work. The transaction is committed when fn
// succeeds and rolled back otherwise.
func (s *PostService) inTx(ctx context.Context, fn func(tx ports.Transaction) error) error {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}

	var txCommitted bool
	defer func() {
		if txCommitted {
			return
		}
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			if strings.Contains(rollbackErr.Error(), "tx is closed") {
				s.log.Debug("Transaction already closed during rollback", slog.String("error", rollbackErr.Error()))
				return
			}
			s.log.Error("Failed to rollback transaction", slog.String("error", rollbackErr.Error()))
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit transaction", slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	txCommitted = true
	return nil
}

// translate keeps domain errors callers can act on and hides everything else
// behind ErrDatabaseQuery.
func (s *PostService) translate(op string, postID int64, err error) error {
	switch {
	case errors.Is(err, custom_errors.ErrPostNotFound),
		errors.Is(err, custom_errors.ErrCommentNotFound):
		s.log.Debug("Not found", slog.String("op", op), slog.Int64("post_id", postID), slog.String("error", err.Error()))
		return err
	case errors.Is(err, custom_errors.ErrForbidden),
		errors.Is(err, custom_errors.ErrPostValidation),
		errors.Is(err, custom_errors.ErrInvalidVoteDirection):
		return err
	default:
		s.log.Error("Operation failed", slog.String("op", op), slog.Int64("post_id", postID), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
}

func (s *PostService) listWindow(filters *model.PostFilters) model.PostFilters {
	var window model.PostFilters
	if filters != nil {
		window = *filters
	}

	if window.Search != nil {
		search := strings.TrimSpace(*window.Search)
		window.Search = nil
		if search != "" {
			window.Search = &search
		}
	}
	if window.Tag != nil {
		tag := strings.TrimSpace(*window.Tag)
		window.Tag = nil
		if tag != "" {
			window.Tag = &tag
		}
	}

	limit := s.opts.DefaultListLimit
	if window.Limit != nil && *window.Limit > 0 {
		limit = *window.Limit
	}
	if s.opts.MaxListLimit > 0 && limit > s.opts.MaxListLimit {
		limit = s.opts.MaxListLimit
	}
	offset := 0
	if window.Offset != nil && *window.Offset > 0 {
		offset = *window.Offset
	}
	window.Limit = &limit
	window.Offset = &offset
	return window
}

// resolveAuthor looks up the author profile. A failed lookup never fails the
// read: the author is reported by id only.
func (s *PostService) resolveAuthor(ctx context.Context, authorID int64) *model.User {
	author, err := s.userClient.GetUser(ctx, authorID)
	if err != nil {
		if errors.Is(err, custom_errors.ErrUserNotFound) {
			s.log.Debug("Author not found", slog.Int64("author_id", authorID))
		} else {
			s.log.Warn("Failed to get author", slog.Int64("author_id", authorID), slog.String("error", err.Error()))
		}
		return &model.User{ID: authorID}
	}
	return author
}

func (s *PostService) detailAll(ctx context.Context, posts []*model.Post) []*model.PostDetailed {
	authors := make(map[int64]*model.User)
	result := make([]*model.PostDetailed, 0, len(posts))
	for _, post := range posts {
		author, ok := authors[post.AuthorID]
		if !ok {
			author = s.resolveAuthor(ctx, post.AuthorID)
			authors[post.AuthorID] = author
		}
		result = append(result, model.NewPostDetailed(post, author))
	}
	return result
}
