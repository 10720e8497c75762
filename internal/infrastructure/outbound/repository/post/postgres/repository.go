package post_repository_postgres

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"devlog-post-service/internal/custom_errors"
	model "devlog-post-service/internal/domain/models"
	ports "devlog-post-service/internal/domain/ports/output"
	"devlog-post-service/internal/infrastructure/outbound/repository/postgres/db"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const postColumns = `p.id, p.author_id, p.title, p.content, p.tips, p.learnings, p.code_snippet, p.image,
	p.tags, p.is_draft, p.created_at, p.last_saved_at`

type PostRepository struct {
	log     ports.Logger
	db      db.PgDB
	metrics ports.MetricsProvider
}

func NewPostRepository(db db.PgDB, log ports.Logger, metrics ports.MetricsProvider) *PostRepository {
	return &PostRepository{db: db, log: log, metrics: metrics}
}

func (p *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	start := time.Now()
	p.log.Debug("Creating new post", slog.Int64("author_id", post.AuthorID), slog.String("title", post.Title))

	now := pgtype.Timestamptz{Time: time.Now(), Valid: true}
	tags := post.Tags
	if tags == nil {
		tags = []string{}
	}

	args := pgx.NamedArgs{
		"author_id":     post.AuthorID,
		"title":         post.Title,
		"content":       post.Content,
		"tips":          post.Tips,
		"learnings":     post.Learnings,
		"code_snippet":  post.CodeSnippet,
		"image":         post.Image,
		"tags":          tags,
		"is_draft":      post.IsDraft,
		"created_at":    now,
		"last_saved_at": now,
	}

	query := `
		INSERT INTO posts AS p (author_id, title, content, tips, learnings, code_snippet, image, tags, is_draft, created_at, last_saved_at)
		VALUES (@author_id, @title, @content, @tips, @learnings, @code_snippet, @image, @tags, @is_draft, @created_at, @last_saved_at)
		RETURNING ` + postColumns

	createdPost, err := scanPost(p.db.QueryRow(ctx, query, args))
	if err != nil {
		p.observe("post_create", start, false)
		p.log.Error("Error creating post", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	p.observe("post_create", start, true)
	p.log.Debug("Successfully created post", slog.Int64("id", createdPost.ID), slog.Int64("author_id", createdPost.AuthorID))
	return createdPost, nil
}

func (p *PostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	start := time.Now()
	p.log.Debug("Getting post by ID", slog.Int64("id", id))

	query := `SELECT ` + postColumns + ` FROM posts p WHERE p.id = @id`
	post, err := scanPost(p.db.QueryRow(ctx, query, pgx.NamedArgs{"id": id}))
	if err != nil {
		p.observe("post_get_by_id", start, false)
		if errors.Is(err, pgx.ErrNoRows) {
			p.log.Debug("Post not found by id", slog.Int64("id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		p.log.Error("Error getting post by id", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	if err := p.loadRelations(ctx, []*model.Post{post}); err != nil {
		p.observe("post_get_by_id", start, false)
		return nil, err
	}

	p.observe("post_get_by_id", start, true)
	p.log.Debug("Successfully retrieved post by ID", slog.Int64("id", post.ID), slog.Int64("author_id", post.AuthorID))
	return post, nil
}

func (p *PostRepository) Update(ctx context.Context, id int64, update *model.UpdatePostDTO) (*model.Post, error) {
	start := time.Now()
	p.log.Debug("Updating post", slog.Int64("id", id), slog.Any("update_fields", map[string]bool{
		"title":        update.Title != nil,
		"content":      update.Content != nil,
		"tips":         update.Tips != nil,
		"learnings":    update.Learnings != nil,
		"code_snippet": update.CodeSnippet != nil,
		"image":        update.Image != nil,
		"tags":         update.Tags != nil,
		"is_draft":     update.IsDraft != nil,
	}))

	setClauses := []string{}
	args := pgx.NamedArgs{"id": id}

	addString := func(column string, value *string) {
		if value != nil {
			setClauses = append(setClauses, column+" = @"+column)
			args[column] = *value
		}
	}
	addString("title", update.Title)
	addString("content", update.Content)
	addString("tips", update.Tips)
	addString("learnings", update.Learnings)
	addString("code_snippet", update.CodeSnippet)
	addString("image", update.Image)

	if update.Tags != nil {
		tags := *update.Tags
		if tags == nil {
			tags = []string{}
		}
		setClauses = append(setClauses, "tags = @tags")
		args["tags"] = tags
	}
	if update.IsDraft != nil {
		setClauses = append(setClauses, "is_draft = @is_draft")
		args["is_draft"] = *update.IsDraft
	}

	setClauses = append(setClauses, "last_saved_at = @last_saved_at")
	args["last_saved_at"] = pgtype.Timestamptz{Time: time.Now(), Valid: true}

	p.log.Debug("Building update query", slog.Int64("id", id), slog.Int("set_clauses_count", len(setClauses)))
	query := "UPDATE posts AS p SET " + strings.Join(setClauses, ", ") + " WHERE p.id = @id RETURNING " + postColumns

	updatedPost, err := scanPost(p.db.QueryRow(ctx, query, args))
	if err != nil {
		p.observe("post_update", start, false)
		if errors.Is(err, pgx.ErrNoRows) {
			p.log.Debug("Post not found by id during Update", slog.Int64("id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		p.log.Error("Error updating post", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	if err := p.loadRelations(ctx, []*model.Post{updatedPost}); err != nil {
		p.observe("post_update", start, false)
		return nil, err
	}

	p.observe("post_update", start, true)
	p.log.Debug("Successfully updated post", slog.Int64("id", updatedPost.ID),
		slog.Time("last_saved_at", updatedPost.LastSavedAt.Time))
	return updatedPost, nil
}

func (p *PostRepository) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	p.log.Debug("Deleting post", slog.Int64("id", id))

	result, err := p.db.Exec(ctx, `DELETE FROM posts WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		p.observe("post_delete", start, false)
		p.log.Error("Error deleting post", slog.Int64("id", id), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	if result.RowsAffected() == 0 {
		p.observe("post_delete", start, false)
		p.log.Debug("Post not found during deletion", slog.Int64("id", id))
		return custom_errors.ErrPostNotFound
	}

	p.observe("post_delete", start, true)
	p.log.Debug("Successfully deleted post", slog.Int64("id", id))
	return nil
}

func (p *PostRepository) List(ctx context.Context, filters model.PostFilters) ([]*model.Post, int, error) {
	start := time.Now()
	p.log.Debug("Listing posts with filters",
		slog.Any("search", filters.Search),
		slog.Any("tag", filters.Tag),
		slog.Any("limit", filters.Limit),
		slog.Any("offset", filters.Offset))

	args := pgx.NamedArgs{}
	whereClauses := []string{"p.is_draft = FALSE"}

	if filters.Search != nil && *filters.Search != "" {
		whereClauses = append(whereClauses, "(p.title ILIKE @search OR p.content ILIKE @search)")
		args["search"] = "%" + escapeLike(*filters.Search) + "%"
		p.log.Debug("Adding search filter", slog.String("search", *filters.Search))
	}
	if filters.Tag != nil && *filters.Tag != "" {
		whereClauses = append(whereClauses, "@tag = ANY(p.tags)")
		args["tag"] = *filters.Tag
		p.log.Debug("Adding tag filter", slog.String("tag", *filters.Tag))
	}

	condition := " WHERE " + strings.Join(whereClauses, " AND ")
	query := `SELECT ` + postColumns + ` FROM posts p` + condition + ` ORDER BY p.created_at DESC, p.id DESC`

	if filters.Limit != nil {
		query += " LIMIT @limit"
		args["limit"] = *filters.Limit
	}
	if filters.Offset != nil {
		query += " OFFSET @offset"
		args["offset"] = *filters.Offset
	}

	posts, err := p.queryPosts(ctx, query, args)
	if err != nil {
		p.observe("post_list", start, false)
		p.log.Error("Error listing posts", slog.String("error", err.Error()))
		return nil, 0, custom_errors.ErrDatabaseQuery
	}
	p.log.Debug("Retrieved posts in List", slog.Int("retrieved_posts_count", len(posts)))

	countArgs := make(pgx.NamedArgs)
	for k, v := range args {
		if k != "limit" && k != "offset" {
			countArgs[k] = v
		}
	}

	var total int
	if err := p.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts p`+condition, countArgs).Scan(&total); err != nil {
		p.observe("post_list", start, false)
		p.log.Error("Error counting posts", slog.String("error", err.Error()))
		return nil, 0, custom_errors.ErrDatabaseQuery
	}

	if err := p.loadRelations(ctx, posts); err != nil {
		p.observe("post_list", start, false)
		return nil, 0, err
	}

	p.observe("post_list", start, true)
	return posts, total, nil
}

// ListPopular orders published posts by upvotes minus downvotes; ties go to the
// older post so the order matches insertion order.
func (p *PostRepository) ListPopular(ctx context.Context, limit int) ([]*model.Post, error) {
	start := time.Now()
	p.log.Debug("Listing popular posts", slog.Int("limit", limit))

	query := `
		SELECT ` + postColumns + `
		FROM posts p
		LEFT JOIN (
			SELECT post_id, SUM(CASE WHEN direction = 'up' THEN 1 ELSE -1 END) AS score
			FROM post_votes
			GROUP BY post_id
		) v ON v.post_id = p.id
		WHERE p.is_draft = FALSE
		ORDER BY COALESCE(v.score, 0) DESC, p.id ASC
		LIMIT @limit`

	posts, err := p.queryPosts(ctx, query, pgx.NamedArgs{"limit": limit})
	if err != nil {
		p.observe("post_list_popular", start, false)
		p.log.Error("Error listing popular posts", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	if err := p.loadRelations(ctx, posts); err != nil {
		p.observe("post_list_popular", start, false)
		return nil, err
	}

	p.observe("post_list_popular", start, true)
	return posts, nil
}

func (p *PostRepository) ListDrafts(ctx context.Context, authorID int64) ([]*model.Post, error) {
	start := time.Now()
	p.log.Debug("Listing drafts", slog.Int64("author_id", authorID))

	query := `SELECT ` + postColumns + ` FROM posts p
		WHERE p.author_id = @author_id AND p.is_draft = TRUE
		ORDER BY p.last_saved_at DESC, p.id DESC`

	posts, err := p.queryPosts(ctx, query, pgx.NamedArgs{"author_id": authorID})
	if err != nil {
		p.observe("post_list_drafts", start, false)
		p.log.Error("Error listing drafts", slog.Int64("author_id", authorID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	if err := p.loadRelations(ctx, posts); err != nil {
		p.observe("post_list_drafts", start, false)
		return nil, err
	}

	p.observe("post_list_drafts", start, true)
	return posts, nil
}

// ApplyVote toggles the user's vote. The post row is locked for the rest of the
// surrounding transaction, so votes on one post are applied one at a time.
func (p *PostRepository) ApplyVote(ctx context.Context, postID, userID int64, direction model.VoteDirection) (model.VoteOutcome, error) {
	start := time.Now()
	p.log.Debug("Applying vote", slog.Int64("post_id", postID), slog.Int64("user_id", userID), slog.String("direction", string(direction)))

	args := pgx.NamedArgs{"post_id": postID, "user_id": userID}

	var lockedID int64
	err := p.db.QueryRow(ctx, `SELECT id FROM posts WHERE id = @post_id FOR UPDATE`, args).Scan(&lockedID)
	if err != nil {
		p.observe("post_apply_vote", start, false)
		if errors.Is(err, pgx.ErrNoRows) {
			p.log.Debug("Post not found during vote", slog.Int64("post_id", postID))
			return "", custom_errors.ErrPostNotFound
		}
		p.log.Error("Error locking post for vote", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		return "", custom_errors.ErrDatabaseQuery
	}

	var current *model.VoteDirection
	var stored string
	err = p.db.QueryRow(ctx, `SELECT direction FROM post_votes WHERE post_id = @post_id AND user_id = @user_id`, args).Scan(&stored)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
	case err != nil:
		p.observe("post_apply_vote", start, false)
		p.log.Error("Error reading current vote", slog.Int64("post_id", postID), slog.Int64("user_id", userID), slog.String("error", err.Error()))
		return "", custom_errors.ErrDatabaseQuery
	default:
		d := model.VoteDirection(stored)
		current = &d
	}

	next, outcome := model.Toggle(current, direction)
	if next == nil {
		_, err = p.db.Exec(ctx, `DELETE FROM post_votes WHERE post_id = @post_id AND user_id = @user_id`, args)
	} else {
		args["direction"] = string(*next)
		args["created_at"] = pgtype.Timestamptz{Time: time.Now(), Valid: true}
		_, err = p.db.Exec(ctx, `
			INSERT INTO post_votes (post_id, user_id, direction, created_at)
			VALUES (@post_id, @user_id, @direction, @created_at)
			ON CONFLICT (post_id, user_id) DO UPDATE
			SET direction = EXCLUDED.direction, created_at = EXCLUDED.created_at`, args)
	}
	if err != nil {
		p.observe("post_apply_vote", start, false)
		p.log.Error("Error writing vote", slog.Int64("post_id", postID), slog.Int64("user_id", userID), slog.String("error", err.Error()))
		return "", custom_errors.ErrVoteApplyFailed
	}

	p.observe("post_apply_vote", start, true)
	p.log.Debug("Vote applied", slog.Int64("post_id", postID), slog.Int64("user_id", userID), slog.String("outcome", string(outcome)))
	return outcome, nil
}

func (p *PostRepository) queryPosts(ctx context.Context, query string, args pgx.NamedArgs) ([]*model.Post, error) {
	rows, err := p.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]*model.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}

// loadRelations fills the vote ledger and the comment references of every post
// with one batched round trip.
func (p *PostRepository) loadRelations(ctx context.Context, posts []*model.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(posts))
	byID := make(map[int64]*model.Post, len(posts))
	for _, post := range posts {
		ids = append(ids, post.ID)
		byID[post.ID] = post
	}

	batch := &pgx.Batch{}
	batch.Queue(`SELECT post_id, user_id, direction FROM post_votes
		WHERE post_id = ANY(@ids) ORDER BY created_at, user_id`, pgx.NamedArgs{"ids": ids})
	batch.Queue(`SELECT post_id, comment_id FROM post_comments
		WHERE post_id = ANY(@ids) ORDER BY position`, pgx.NamedArgs{"ids": ids})

	results := p.db.SendBatch(ctx, batch)
	defer func(results pgx.BatchResults) {
		if err := results.Close(); err != nil {
			p.log.Error("Failed to close batch result in loadRelations", slog.String("error", err.Error()))
		}
	}(results)

	voteRows, err := results.Query()
	if err != nil {
		p.log.Error("Error loading votes", slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	for voteRows.Next() {
		var postID, userID int64
		var direction string
		if err := voteRows.Scan(&postID, &userID, &direction); err != nil {
			voteRows.Close()
			p.log.Error("Error scanning vote row", slog.String("error", err.Error()))
			return custom_errors.ErrDatabaseQuery
		}
		post := byID[postID]
		switch model.VoteDirection(direction) {
		case model.VoteUp:
			post.Upvotes = append(post.Upvotes, userID)
		case model.VoteDown:
			post.Downvotes = append(post.Downvotes, userID)
		}
	}
	voteRows.Close()
	if err := voteRows.Err(); err != nil {
		p.log.Error("Error iterating vote rows", slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}

	commentRows, err := results.Query()
	if err != nil {
		p.log.Error("Error loading comment references", slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	for commentRows.Next() {
		var postID, commentID int64
		if err := commentRows.Scan(&postID, &commentID); err != nil {
			commentRows.Close()
			p.log.Error("Error scanning comment reference row", slog.String("error", err.Error()))
			return custom_errors.ErrDatabaseQuery
		}
		byID[postID].CommentIDs = append(byID[postID].CommentIDs, commentID)
	}
	commentRows.Close()
	if err := commentRows.Err(); err != nil {
		p.log.Error("Error iterating comment reference rows", slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}

	return nil
}

func (p *PostRepository) observe(queryType string, start time.Time, success bool) {
	p.metrics.IncrementDatabaseQueries(queryType, success)
	p.metrics.RecordDatabaseQueryDuration(queryType, time.Since(start))
}

func scanPost(row pgx.Row) (*model.Post, error) {
	var post model.Post
	err := row.Scan(
		&post.ID,
		&post.AuthorID,
		&post.Title,
		&post.Content,
		&post.Tips,
		&post.Learnings,
		&post.CodeSnippet,
		&post.Image,
		&post.Tags,
		&post.IsDraft,
		&post.CreatedAt,
		&post.LastSavedAt,
	)
	if err != nil {
		return nil, err
	}
	post.Upvotes = []int64{}
	post.Downvotes = []int64{}
	post.CommentIDs = []int64{}
	return &post, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
