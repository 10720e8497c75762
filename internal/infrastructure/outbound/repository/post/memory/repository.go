package memory

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"devlog-post-service/internal/custom_errors"
	model "devlog-post-service/internal/domain/models"
	ports "devlog-post-service/internal/domain/ports/output"
	"devlog-post-service/internal/domain/ranking"

	"github.com/jackc/pgx/v5/pgtype"
)

// PostRepository keeps posts, their votes and their comment references in
// process memory. Returned posts are copies.
type PostRepository struct {
	log      ports.Logger
	mu       sync.RWMutex
	posts    map[int64]*model.Post
	comments map[int64][]*model.CommentRef
	nextID   int64
	now      func() time.Time
}

func NewPostRepository(log ports.Logger) *PostRepository {
	return NewPostRepositoryWithClock(log, time.Now)
}

func NewPostRepositoryWithClock(log ports.Logger, now func() time.Time) *PostRepository {
	return &PostRepository{
		log:      log,
		posts:    make(map[int64]*model.Post),
		comments: make(map[int64][]*model.CommentRef),
		nextID:   1,
		now:      now,
	}
}

func (p *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	p.log.Debug("Creating new post (memory impl)", slog.Int64("author_id", post.AuthorID), slog.String("title", post.Title))

	p.mu.Lock()
	defer p.mu.Unlock()

	now := pgtype.Timestamptz{Time: p.now(), Valid: true}

	newPost := &model.Post{
		ID:          p.nextID,
		AuthorID:    post.AuthorID,
		Title:       post.Title,
		Content:     post.Content,
		Tips:        post.Tips,
		Learnings:   post.Learnings,
		CodeSnippet: post.CodeSnippet,
		Image:       post.Image,
		Tags:        append([]string{}, post.Tags...),
		IsDraft:     post.IsDraft,
		Ledger:      model.Ledger{Upvotes: []int64{}, Downvotes: []int64{}},
		CommentIDs:  []int64{},
		CreatedAt:   now,
		LastSavedAt: now,
	}
	p.nextID++

	p.posts[newPost.ID] = newPost

	p.log.Debug("Successfully created post (memory impl)", slog.Int64("id", newPost.ID), slog.Int64("author_id", newPost.AuthorID))
	return newPost.Clone(), nil
}

func (p *PostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	post, exists := p.posts[id]
	if !exists {
		p.log.Debug("Post not found by id", slog.Int64("id", id))
		return nil, custom_errors.ErrPostNotFound
	}

	return post.Clone(), nil
}

func (p *PostRepository) Update(ctx context.Context, id int64, update *model.UpdatePostDTO) (*model.Post, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	post, exists := p.posts[id]
	if !exists {
		p.log.Debug("Post not found by id during Update", slog.Int64("id", id))
		return nil, custom_errors.ErrPostNotFound
	}

	post.ApplyUpdate(update, p.now())

	p.log.Debug("Successfully updated post (memory impl)", slog.Int64("id", id))
	return post.Clone(), nil
}

func (p *PostRepository) Delete(ctx context.Context, id int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.posts[id]; !exists {
		return custom_errors.ErrPostNotFound
	}

	delete(p.posts, id)
	delete(p.comments, id)
	return nil
}

func (p *PostRepository) List(ctx context.Context, filters model.PostFilters) ([]*model.Post, int, error) {
	p.log.Debug("Listing posts with filters (memory impl)",
		slog.Any("search", filters.Search),
		slog.Any("tag", filters.Tag),
		slog.Any("limit", filters.Limit),
		slog.Any("offset", filters.Offset))

	p.mu.RLock()
	defer p.mu.RUnlock()

	var search string
	if filters.Search != nil {
		search = strings.ToLower(*filters.Search)
	}

	filteredPosts := make([]*model.Post, 0)
	for _, post := range p.posts {
		if post.IsDraft {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(post.Title), search) &&
			!strings.Contains(strings.ToLower(post.Content), search) {
			continue
		}
		if filters.Tag != nil && *filters.Tag != "" && !hasTag(post.Tags, *filters.Tag) {
			continue
		}
		filteredPosts = append(filteredPosts, post.Clone())
	}

	sort.Slice(filteredPosts, func(i, j int) bool {
		a, b := filteredPosts[i], filteredPosts[j]
		if !a.CreatedAt.Time.Equal(b.CreatedAt.Time) {
			return a.CreatedAt.Time.After(b.CreatedAt.Time)
		}
		return a.ID > b.ID
	})

	total := len(filteredPosts)
	p.log.Debug("Total matching posts before pagination", slog.Int("total", total))

	if filters.Offset != nil {
		offset := *filters.Offset
		if offset >= len(filteredPosts) {
			return []*model.Post{}, total, nil
		}
		filteredPosts = filteredPosts[offset:]
	}

	if filters.Limit != nil {
		limit := *filters.Limit
		if limit < len(filteredPosts) {
			filteredPosts = filteredPosts[:limit]
		}
	}

	p.log.Debug("Returning filtered posts", slog.Int("count", len(filteredPosts)), slog.Int("total", total))
	return filteredPosts, total, nil
}

func (p *PostRepository) ListPopular(ctx context.Context, limit int) ([]*model.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	posts := make([]*model.Post, 0, len(p.posts))
	for _, post := range p.posts {
		posts = append(posts, post.Clone())
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].ID < posts[j].ID
	})

	return ranking.RankPopular(posts, limit), nil
}

func (p *PostRepository) ListDrafts(ctx context.Context, authorID int64) ([]*model.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	drafts := make([]*model.Post, 0)
	for _, post := range p.posts {
		if post.AuthorID == authorID && post.IsDraft {
			drafts = append(drafts, post.Clone())
		}
	}

	sort.Slice(drafts, func(i, j int) bool {
		a, b := drafts[i], drafts[j]
		if !a.LastSavedAt.Time.Equal(b.LastSavedAt.Time) {
			return a.LastSavedAt.Time.After(b.LastSavedAt.Time)
		}
		return a.ID > b.ID
	})

	return drafts, nil
}

func (p *PostRepository) ApplyVote(ctx context.Context, postID, userID int64, direction model.VoteDirection) (model.VoteOutcome, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	post, exists := p.posts[postID]
	if !exists {
		p.log.Debug("Post not found during vote", slog.Int64("post_id", postID))
		return "", custom_errors.ErrPostNotFound
	}

	outcome := post.Apply(userID, direction)
	p.log.Debug("Vote applied (memory impl)", slog.Int64("post_id", postID), slog.Int64("user_id", userID), slog.String("outcome", string(outcome)))
	return outcome, nil
}

// AttachComment appends a comment reference to an existing post.
func (p *PostRepository) AttachComment(postID, commentID int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	post, exists := p.posts[postID]
	if !exists {
		p.log.Warn("Post not found during comment attach", slog.Int64("post_id", postID))
		return custom_errors.ErrPostNotFound
	}

	refs := p.comments[postID]
	for _, ref := range refs {
		if ref.CommentID == commentID {
			return nil
		}
	}

	var position int32 = 1
	if len(refs) > 0 {
		position = refs[len(refs)-1].Position + 1
	}
	p.comments[postID] = append(refs, &model.CommentRef{
		PostID:    postID,
		CommentID: commentID,
		Position:  position,
		CreatedAt: pgtype.Timestamptz{Time: p.now(), Valid: true},
	})
	post.CommentIDs = append(post.CommentIDs, commentID)
	return nil
}

func (p *PostRepository) DetachComment(postID, commentID int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	refs := p.comments[postID]
	for i, ref := range refs {
		if ref.CommentID != commentID {
			continue
		}
		p.comments[postID] = append(refs[:i:i], refs[i+1:]...)

		post := p.posts[postID]
		ids := make([]int64, 0, len(post.CommentIDs))
		for _, id := range post.CommentIDs {
			if id != commentID {
				ids = append(ids, id)
			}
		}
		post.CommentIDs = ids
		return nil
	}

	return custom_errors.ErrCommentNotFound
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
