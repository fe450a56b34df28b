package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forum/backend/internal/apperrors"
	"forum/backend/internal/models"
)

func TestUserListWithFriendCounts(t *testing.T) {
	env := newTestEnv(t)
	alice := env.member(t, "alice")
	bob := env.member(t, "bob")
	carol := env.member(t, "carol")
	require.NoError(t, env.db.Create(&models.Friendship{UserID: alice.ID, FriendID: bob.ID}).Error)
	require.NoError(t, env.db.Create(&models.Friendship{UserID: carol.ID, FriendID: alice.ID}).Error)

	users, total, err := env.svc.Users.List(env.ctx, ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, users, 3)

	counts := map[string]int64{}
	for _, u := range users {
		counts[u.Username] = u.FriendsCount
	}
	assert.Equal(t, map[string]int64{"alice": 2, "bob": 1, "carol": 1}, counts)
}

func TestUserListFilterAndPaging(t *testing.T) {
	env := newTestEnv(t)
	for _, name := range []string{"Alpha", "alphabet", "beta", "gamma_ray"} {
		env.member(t, name)
	}

	users, total, err := env.svc.Users.List(env.ctx, ListOptions{Query: "ALPHA"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, users, 2)

	users, total, err = env.svc.Users.List(env.ctx, ListOptions{Query: "_"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "gamma_ray", users[0].Username)

	users, total, err = env.svc.Users.List(env.ctx, ListOptions{Page: 2, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	require.Len(t, users, 1)
	assert.Equal(t, "gamma_ray", users[0].Username)
}

func TestUserGetByID(t *testing.T) {
	env := newTestEnv(t)
	alice := env.member(t, "alice")

	got, err := env.svc.Users.GetByID(env.ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Zero(t, got.FriendsCount)

	_, err = env.svc.Users.GetByID(env.ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUserDeleteCleansSocialGraphAndCascades(t *testing.T) {
	env := newTestEnv(t)
	alice := env.member(t, "alice")
	bob := env.member(t, "bob")
	carol := env.member(t, "carol")
	general := env.category(t, "General")

	postID := env.post(t, alice, "mine", general)
	bobsPost := env.post(t, bob, "bob's")
	_, err := env.svc.Comments.Create(env.ctx, bobsPost, alice.ID, "hi bob")
	require.NoError(t, err)
	_, err = env.svc.Likes.Create(env.ctx, bobsPost, alice.ID)
	require.NoError(t, err)
	_, err = env.svc.Likes.Create(env.ctx, postID, bob.ID)
	require.NoError(t, err)

	require.NoError(t, env.db.Create(&models.Friendship{UserID: alice.ID, FriendID: bob.ID}).Error)
	_, err = env.svc.Friends.SendRequest(env.ctx, carol.ID, alice.ID)
	require.NoError(t, err)

	require.NoError(t, env.svc.Users.Delete(env.ctx, alice, alice.ID))

	assert.Zero(t, env.count(t, &models.User{}, "id = ?", alice.ID))
	assert.Zero(t, env.count(t, &models.FriendRequest{}, ""))
	assert.Zero(t, env.count(t, &models.Friendship{}, ""))
	assert.Zero(t, env.count(t, &models.Post{}, "user_id = ?", alice.ID))
	assert.Zero(t, env.count(t, &models.Comment{}, "user_id = ?", alice.ID))
	assert.Zero(t, env.count(t, &models.Like{}, ""))
	assert.Equal(t, int64(1), env.count(t, &models.Post{}, "id = ?", bobsPost))
	assert.Equal(t, int64(1), env.count(t, &models.Category{}, ""))
}

func TestUserDeletePermissions(t *testing.T) {
	env := newTestEnv(t)
	admin := env.user(t, "root", models.RoleAdmin)
	moderator := env.user(t, "mod", models.RoleModerator)
	alice := env.member(t, "alice")
	bob := env.member(t, "bob")

	assert.ErrorIs(t, env.svc.Users.Delete(env.ctx, bob, alice.ID), apperrors.ErrForbidden)
	assert.ErrorIs(t, env.svc.Users.Delete(env.ctx, moderator, alice.ID), apperrors.ErrForbidden)
	assert.NoError(t, env.svc.Users.Delete(env.ctx, admin, alice.ID))
	assert.ErrorIs(t, env.svc.Users.Delete(env.ctx, admin, alice.ID), apperrors.ErrNotFound)
}

func TestUserOwnedContent(t *testing.T) {
	env := newTestEnv(t)
	alice := env.member(t, "alice")
	bob := env.member(t, "bob")
	postID := env.post(t, bob, "hello")
	_, err := env.svc.Comments.Create(env.ctx, postID, alice.ID, "first")
	require.NoError(t, err)
	_, err = env.svc.Likes.Create(env.ctx, postID, alice.ID)
	require.NoError(t, err)

	posts, err := env.svc.Users.Posts(env.ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, int64(1), posts[0].LikeCount)
	assert.Equal(t, int64(1), posts[0].CommentCount)

	comments, err := env.svc.Users.Comments(env.ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "hello", comments[0].PostTitle)

	likes, err := env.svc.Users.Likes(env.ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, likes, 1)
	assert.Equal(t, "alice", likes[0].Username)

	_, err = env.svc.Users.Posts(env.ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUserSetRole(t *testing.T) {
	env := newTestEnv(t)
	alice := env.member(t, "alice")

	got, err := env.svc.Users.SetRole(env.ctx, alice.ID, models.RoleModerator)
	require.NoError(t, err)
	assert.Equal(t, "Moderator", got.Role)

	_, err = env.svc.Users.SetRole(env.ctx, alice.ID, models.Role("Owner"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = env.svc.Users.SetRole(env.ctx, 999, models.RoleAdmin)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	id, err := env.svc.Users.FindByUsername(env.ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, id)
}
