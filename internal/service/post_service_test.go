package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forum/backend/internal/apperrors"
	"forum/backend/internal/models"
)

func TestPostCreateIgnoresUnknownCategories(t *testing.T) {
	env := newTestEnv(t)
	alice := env.member(t, "alice")
	general := env.category(t, "General")
	news := env.category(t, "News")

	post, err := env.svc.Posts.Create(env.ctx, alice.ID, PostInput{
		Title:       "Hello",
		Description: "some **bold** text",
		CategoryIDs: []uint{news, general, 404},
	})
	require.NoError(t, err)

	assert.Equal(t, "Hello", post.Title)
	assert.Equal(t, "alice", post.Username)
	assert.Equal(t, []string{"General", "News"}, post.Categories)
	assert.Contains(t, post.DescriptionHTML, "<strong>bold</strong>")
	assert.Zero(t, post.LikeCount)
	assert.Equal(t, int64(2), env.count(t, &models.Category{}, ""))
}

func TestPostCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	alice := env.member(t, "alice")

	_, err := env.svc.Posts.Create(env.ctx, alice.ID, PostInput{Title: "  "})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = env.svc.Posts.Create(env.ctx, 999, PostInput{Title: "orphan"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPostGetAll(t *testing.T) {
	env := newTestEnv(t)
	alice := env.member(t, "alice")
	bob := env.member(t, "bob")
	first := env.post(t, alice, "First steps")
	env.post(t, alice, "Second thoughts")
	third := env.post(t, alice, "Third time")

	_, err := env.svc.Likes.Create(env.ctx, first, bob.ID)
	require.NoError(t, err)
	_, err = env.svc.Comments.Create(env.ctx, third, bob.ID, "nice")
	require.NoError(t, err)

	posts, total, err := env.svc.Posts.GetAll(env.ctx, ListOptions{Limit: 2}, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, posts, 2)
	assert.Equal(t, "Third time", posts[0].Title)
	assert.Equal(t, int64(1), posts[0].CommentCount)

	posts, _, err = env.svc.Posts.GetAll(env.ctx, ListOptions{Page: 2, Limit: 2}, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, int64(1), posts[0].LikeCount)

	posts, total, err = env.svc.Posts.GetAll(env.ctx, ListOptions{Query: "time"}, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, third, posts[0].ID)
}

func TestPostGetByIDNotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.Posts.GetByID(env.ctx, 1, 0)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPostLikedByViewer(t *testing.T) {
	env := newTestEnv(t)
	alice := env.member(t, "alice")
	bob := env.member(t, "bob")
	liked := env.post(t, alice, "liked")
	env.post(t, alice, "ignored")
	_, err := env.svc.Likes.Create(env.ctx, liked, bob.ID)
	require.NoError(t, err)

	anonymous, err := env.svc.Posts.GetByID(env.ctx, liked, 0)
	require.NoError(t, err)
	assert.Nil(t, anonymous.LikedByMe)

	asBob, err := env.svc.Posts.GetByID(env.ctx, liked, bob.ID)
	require.NoError(t, err)
	require.NotNil(t, asBob.LikedByMe)
	assert.True(t, *asBob.LikedByMe)

	page, _, err := env.svc.Posts.GetAll(env.ctx, ListOptions{}, bob.ID)
	require.NoError(t, err)
	require.Len(t, page, 2)
	for _, p := range page {
		require.NotNil(t, p.LikedByMe)
		assert.Equal(t, p.ID == liked, *p.LikedByMe, p.Title)
	}
}

func TestPostDeletePermissions(t *testing.T) {
	env := newTestEnv(t)
	alice := env.member(t, "alice")
	bob := env.member(t, "bob")
	moderator := env.user(t, "mod", models.RoleModerator)

	postID := env.post(t, alice, "mine")
	assert.ErrorIs(t, env.svc.Posts.Delete(env.ctx, bob, postID), apperrors.ErrForbidden)
	assert.NoError(t, env.svc.Posts.Delete(env.ctx, alice, postID))
	assert.ErrorIs(t, env.svc.Posts.Delete(env.ctx, alice, postID), apperrors.ErrNotFound)

	other := env.post(t, alice, "moderated")
	assert.NoError(t, env.svc.Posts.Delete(env.ctx, moderator, other))
}

func TestPostDeleteRemovesCommentsAndLikesButNotCategories(t *testing.T) {
	env := newTestEnv(t)
	alice := env.member(t, "alice")
	bob := env.member(t, "bob")
	general := env.category(t, "General")
	postID := env.post(t, alice, "doomed", general)
	keep := env.post(t, alice, "kept", general)

	_, err := env.svc.Comments.Create(env.ctx, postID, bob.ID, "bye")
	require.NoError(t, err)
	_, err = env.svc.Likes.Create(env.ctx, postID, bob.ID)
	require.NoError(t, err)
	_, err = env.svc.Likes.Create(env.ctx, keep, bob.ID)
	require.NoError(t, err)

	require.NoError(t, env.svc.Posts.Delete(env.ctx, alice, postID))

	assert.Zero(t, env.count(t, &models.Comment{}, "post_id = ?", postID))
	assert.Zero(t, env.count(t, &models.Like{}, "post_id = ?", postID))
	assert.Equal(t, int64(1), env.count(t, &models.Like{}, "post_id = ?", keep))
	assert.Equal(t, int64(1), env.count(t, &models.Category{}, "id = ?", general))

	kept, err := env.svc.Posts.GetByID(env.ctx, keep, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"General"}, kept.Categories)
}

func TestPostCommentsAndLikes(t *testing.T) {
	env := newTestEnv(t)
	alice := env.member(t, "alice")
	bob := env.member(t, "bob")
	postID := env.post(t, alice, "thread")

	_, err := env.svc.Comments.Create(env.ctx, postID, bob.ID, "one")
	require.NoError(t, err)
	_, err = env.svc.Comments.Create(env.ctx, postID, alice.ID, "two")
	require.NoError(t, err)
	_, err = env.svc.Likes.Create(env.ctx, postID, bob.ID)
	require.NoError(t, err)

	comments, err := env.svc.Posts.Comments(env.ctx, postID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "one", comments[0].Content)
	assert.Equal(t, "bob", comments[0].Username)

	likes, err := env.svc.Posts.Likes(env.ctx, postID)
	require.NoError(t, err)
	require.Len(t, likes, 1)
	assert.Equal(t, "thread", likes[0].PostTitle)

	_, err = env.svc.Posts.Comments(env.ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = env.svc.Posts.Likes(env.ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
