package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forum/backend/internal/apperrors"
	"forum/backend/internal/hub"
	"forum/backend/internal/models"
)

func TestCommentCreate(t *testing.T) {
	env := newTestEnv(t)
	alice := env.member(t, "alice")
	bob := env.member(t, "bob")
	postID := env.post(t, alice, "thread")

	c, err := env.svc.Comments.Create(env.ctx, postID, bob.ID, "  hello  ")
	require.NoError(t, err)
	assert.Equal(t, "hello", c.Content)
	assert.Equal(t, "thread", c.PostTitle)
	assert.Equal(t, "bob", c.Username)

	events := env.notifier.all()
	require.Len(t, events, 1)
	assert.Equal(t, alice.ID, events[0].UserID)
	assert.Equal(t, hub.EventCommentCreated, events[0].Event.Type)

	_, err = env.svc.Comments.Create(env.ctx, postID, alice.ID, "own post")
	require.NoError(t, err)
	assert.Len(t, env.notifier.all(), 1, "commenting on your own post notifies nobody")
}

func TestCommentCreateFailures(t *testing.T) {
	env := newTestEnv(t)
	alice := env.member(t, "alice")
	postID := env.post(t, alice, "thread")

	_, err := env.svc.Comments.Create(env.ctx, 999, alice.ID, "x")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = env.svc.Comments.Create(env.ctx, postID, 999, "x")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = env.svc.Comments.Create(env.ctx, postID, alice.ID, " ")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	assert.Zero(t, env.count(t, &models.Comment{}, ""))
}

func TestCommentReads(t *testing.T) {
	env := newTestEnv(t)
	alice := env.member(t, "alice")
	postID := env.post(t, alice, "thread")
	first, err := env.svc.Comments.Create(env.ctx, postID, alice.ID, "first")
	require.NoError(t, err)
	_, err = env.svc.Comments.Create(env.ctx, postID, alice.ID, "second")
	require.NoError(t, err)

	all, total, err := env.svc.Comments.GetAll(env.ctx, ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, "second", all[0].Content)

	filtered, total, err := env.svc.Comments.GetAll(env.ctx, ListOptions{Query: "FIR"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, first.ID, filtered[0].ID)

	got, err := env.svc.Comments.GetByID(env.ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	_, err = env.svc.Comments.GetByID(env.ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCommentDeletePolicy(t *testing.T) {
	env := newTestEnv(t)
	alice := env.member(t, "alice")
	bob := env.member(t, "bob")
	moderator := env.user(t, "mod", models.RoleModerator)
	admin := env.user(t, "root", models.RoleAdmin)
	postID := env.post(t, alice, "thread")

	newComment := func() uint {
		c, err := env.svc.Comments.Create(env.ctx, postID, alice.ID, "text")
		require.NoError(t, err)
		return c.ID
	}

	id := newComment()
	assert.ErrorIs(t, env.svc.Comments.Delete(env.ctx, bob, id), apperrors.ErrForbidden)
	assert.NoError(t, env.svc.Comments.Delete(env.ctx, alice, id))
	assert.ErrorIs(t, env.svc.Comments.Delete(env.ctx, alice, id), apperrors.ErrNotFound)

	assert.NoError(t, env.svc.Comments.Delete(env.ctx, moderator, newComment()))
	assert.NoError(t, env.svc.Comments.Delete(env.ctx, admin, newComment()))
}
