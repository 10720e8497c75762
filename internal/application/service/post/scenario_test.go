package post_service

import (
	"context"
	"fmt"
	"testing"

	"devlog-post-service/internal/custom_errors"
	model "devlog-post-service/internal/domain/models"
	"devlog-post-service/internal/infrastructure/logger"
	"devlog-post-service/internal/infrastructure/outbound/metrics/prometheus"
	comment_memory "devlog-post-service/internal/infrastructure/outbound/repository/comment/memory"
	"devlog-post-service/internal/infrastructure/outbound/repository/memory"
	post_memory "devlog-post-service/internal/infrastructure/outbound/repository/post/memory"
	user_client_mock "devlog-post-service/mocks/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	userOne int64 = 1
	userTwo int64 = 2
)

func newMemoryService(t *testing.T) *PostService {
	log := logger.New("test")
	posts := post_memory.NewPostRepository(log)
	comments := comment_memory.NewCommentRepository(posts, log)

	users := user_client_mock.NewClient(t)
	users.On("GetUser", mock.Anything, mock.Anything).Return(func(ctx context.Context, id int64) (*model.User, error) {
		return &model.User{ID: id, Username: fmt.Sprintf("user%d", id)}, nil
	}).Maybe()

	return NewPostService(posts, memory.NewUnitOfWork(posts, comments), users, log, prometheus.NewPrometheusMetricsProvider(), DefaultOptions())
}

func createTestPost(t *testing.T, svc *PostService, authorID int64, title string, draft bool) *model.PostDetailed {
	created, err := svc.CreatePost(context.Background(), &model.CreatePostDTO{
		AuthorID: authorID,
		Title:    title,
		Content:  "content of " + title,
		IsDraft:  &draft,
	})
	require.NoError(t, err)
	return created
}

func TestScenario_VoteThenDelete(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService(t)

	created, err := svc.CreatePost(ctx, &model.CreatePostDTO{AuthorID: userOne, Title: "A", Content: "B"})
	require.NoError(t, err)
	assert.False(t, created.Post.IsDraft)
	assert.Equal(t, "user1", created.Author.Username)
	id := created.Post.ID

	outcome, err := svc.Vote(ctx, userTwo, id, model.VoteUp)
	require.NoError(t, err)
	assert.Equal(t, model.VoteApplied, outcome)

	got, err := svc.GetPostByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Score)

	outcome, err = svc.Vote(ctx, userTwo, id, model.VoteDown)
	require.NoError(t, err)
	assert.Equal(t, model.VoteApplied, outcome)

	got, err = svc.GetPostByID(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, got.Post.Upvotes)
	assert.Equal(t, []int64{userTwo}, got.Post.Downvotes)
	assert.Equal(t, -1, got.Score)

	require.NoError(t, svc.DeletePost(ctx, userOne, id))

	_, err = svc.GetPostByID(ctx, id)
	assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)
}

func TestScenario_DraftVisibility(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService(t)

	published := createTestPost(t, svc, userOne, "Published", false)
	draft := createTestPost(t, svc, userOne, "Draft", true)

	listed, total, err := svc.ListPosts(ctx, &model.PostFilters{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, listed, 1)
	assert.Equal(t, published.Post.ID, listed[0].Post.ID)

	popular, err := svc.ListPopularPosts(ctx, 0)
	require.NoError(t, err)
	for _, p := range popular {
		assert.NotEqual(t, draft.Post.ID, p.Post.ID)
	}

	drafts, err := svc.ListDrafts(ctx, userOne)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, draft.Post.ID, drafts[0].Post.ID)

	otherDrafts, err := svc.ListDrafts(ctx, userTwo)
	require.NoError(t, err)
	assert.Empty(t, otherDrafts)

	got, err := svc.GetPostByID(ctx, draft.Post.ID)
	require.NoError(t, err)
	assert.True(t, got.Post.IsDraft)

	_, err = svc.UpdatePost(ctx, userOne, draft.Post.ID, &model.UpdatePostDTO{IsDraft: boolPtr(false)})
	require.NoError(t, err)

	_, total, err = svc.ListPosts(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestScenario_ToggleRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService(t)
	id := createTestPost(t, svc, userOne, "Toggle", false).Post.ID

	_, err := svc.Vote(ctx, 3, id, model.VoteDown)
	require.NoError(t, err)
	before, err := svc.GetPostByID(ctx, id)
	require.NoError(t, err)

	first, err := svc.Vote(ctx, userTwo, id, model.VoteUp)
	require.NoError(t, err)
	second, err := svc.Vote(ctx, userTwo, id, model.VoteUp)
	require.NoError(t, err)

	after, err := svc.GetPostByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.VoteApplied, first)
	assert.Equal(t, model.VoteRemoved, second)
	assert.Equal(t, before.Post.Ledger, after.Post.Ledger)
	assert.Equal(t, before.Score, after.Score)
}

func TestScenario_NonAuthorUpdateLeavesPostUnchanged(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService(t)
	created := createTestPost(t, svc, userOne, "Mine", false)

	_, err := svc.UpdatePost(ctx, userTwo, created.Post.ID, &model.UpdatePostDTO{
		Title:   strPtr("Hijacked"),
		IsDraft: boolPtr(true),
	})
	assert.ErrorIs(t, err, custom_errors.ErrForbidden)

	err = svc.DeletePost(ctx, userTwo, created.Post.ID)
	assert.ErrorIs(t, err, custom_errors.ErrForbidden)

	got, err := svc.GetPostByID(ctx, created.Post.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Post, got.Post)
}

func TestScenario_PartialUpdateCanClearFields(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService(t)

	created, err := svc.CreatePost(ctx, &model.CreatePostDTO{
		AuthorID:  userOne,
		Title:     "Title",
		Content:   "Content",
		Tips:      "tip",
		Learnings: "lesson",
		Tags:      []string{"go"},
		IsDraft:   boolPtr(true),
	})
	require.NoError(t, err)

	updated, err := svc.UpdatePost(ctx, userOne, created.Post.ID, &model.UpdatePostDTO{
		Tips:    strPtr(""),
		Tags:    &[]string{},
		IsDraft: boolPtr(false),
	})
	require.NoError(t, err)

	assert.Equal(t, "Title", updated.Post.Title)
	assert.Equal(t, "Content", updated.Post.Content)
	assert.Equal(t, "", updated.Post.Tips)
	assert.Equal(t, "lesson", updated.Post.Learnings)
	assert.Empty(t, updated.Post.Tags)
	assert.False(t, updated.Post.IsDraft)
	assert.Equal(t, created.Post.CreatedAt, updated.Post.CreatedAt)
	assert.False(t, updated.Post.LastSavedAt.Time.Before(created.Post.LastSavedAt.Time))
}

func TestScenario_PopularRanking(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService(t)

	ids := make([]int64, 0, 12)
	for i := 0; i < 12; i++ {
		ids = append(ids, createTestPost(t, svc, userOne, fmt.Sprintf("Post %d", i), false).Post.ID)
	}
	draftID := createTestPost(t, svc, userOne, "Draft", true).Post.ID

	for voter := int64(10); voter < 15; voter++ {
		_, err := svc.Vote(ctx, voter, draftID, model.VoteUp)
		require.NoError(t, err)
	}
	for voter := int64(10); voter < 13; voter++ {
		_, err := svc.Vote(ctx, voter, ids[11], model.VoteUp)
		require.NoError(t, err)
	}
	_, err := svc.Vote(ctx, 10, ids[5], model.VoteUp)
	require.NoError(t, err)
	_, err = svc.Vote(ctx, 10, ids[0], model.VoteDown)
	require.NoError(t, err)

	popular, err := svc.ListPopularPosts(ctx, 0)
	require.NoError(t, err)
	require.Len(t, popular, 10)
	assert.Equal(t, ids[11], popular[0].Post.ID)
	assert.Equal(t, 3, popular[0].Score)
	assert.Equal(t, ids[5], popular[1].Post.ID)
	assert.Equal(t, ids[1], popular[2].Post.ID)
	for i := 1; i < len(popular); i++ {
		assert.GreaterOrEqual(t, popular[i-1].Score, popular[i].Score)
		assert.NotEqual(t, draftID, popular[i].Post.ID)
	}

	top, err := svc.ListPopularPosts(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, top, 2)
}

func TestScenario_SearchAndTag(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService(t)

	_, err := svc.CreatePost(ctx, &model.CreatePostDTO{AuthorID: userOne, Title: "Goroutines", Content: "leaks", Tags: []string{"go"}})
	require.NoError(t, err)
	_, err = svc.CreatePost(ctx, &model.CreatePostDTO{AuthorID: userTwo, Title: "Postgres", Content: "GIN indexes", Tags: []string{"sql"}})
	require.NoError(t, err)

	bySearch, total, err := svc.ListPosts(ctx, &model.PostFilters{Search: strPtr("gin")})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Postgres", bySearch[0].Post.Title)

	byTag, total, err := svc.ListPosts(ctx, &model.PostFilters{Tag: strPtr("go")})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Goroutines", byTag[0].Post.Title)
}

func TestScenario_CommentReferences(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService(t)
	id := createTestPost(t, svc, userOne, "Discussed", false).Post.ID

	require.NoError(t, svc.AttachComment(ctx, id, 100))
	require.NoError(t, svc.AttachComment(ctx, id, 101))
	require.NoError(t, svc.AttachComment(ctx, id, 100))

	got, err := svc.GetPostByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []int64{100, 101}, got.Post.CommentIDs)
	assert.Equal(t, 2, got.CommentCount)

	require.NoError(t, svc.DetachComment(ctx, id, 100))
	assert.ErrorIs(t, svc.DetachComment(ctx, id, 100), custom_errors.ErrCommentNotFound)
	assert.ErrorIs(t, svc.AttachComment(ctx, 999, 1), custom_errors.ErrPostNotFound)
}
