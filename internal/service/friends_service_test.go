package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forum/backend/internal/apperrors"
	"forum/backend/internal/auth"
	"forum/backend/internal/dto"
	"forum/backend/internal/hub"
	"forum/backend/internal/models"
)

func TestSendRequest(t *testing.T) {
	env := newTestEnv(t)
	alice := env.member(t, "alice")
	bob := env.member(t, "bob")

	req, err := env.svc.Friends.SendRequest(env.ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", req.SenderUsername)
	assert.Equal(t, "bob", req.ReceiverUsername)
	assert.Equal(t, string(models.FriendRequestPending), req.Status)

	events := env.notifier.all()
	require.Len(t, events, 1)
	assert.Equal(t, bob.ID, events[0].UserID)
	assert.Equal(t, hub.EventFriendRequestReceived, events[0].Event.Type)
}

func TestSendRequestFailures(t *testing.T) {
	env := newTestEnv(t)
	alice := env.member(t, "alice")

	_, err := env.svc.Friends.SendRequest(env.ctx, alice.ID, alice.ID)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = env.svc.Friends.SendRequest(env.ctx, alice.ID, 999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = env.svc.Friends.SendRequest(env.ctx, 999, alice.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPendingRequestBlocksBothDirections(t *testing.T) {
	for _, tc := range []struct {
		name        string
		first, then string
	}{
		{"alice asks first", "alice", "bob"},
		{"bob asks first", "bob", "alice"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			users := map[string]auth.Caller{"alice": env.member(t, "alice"), "bob": env.member(t, "bob")}
			sender, receiver := users[tc.first], users[tc.then]

			_, err := env.svc.Friends.SendRequest(env.ctx, sender.ID, receiver.ID)
			require.NoError(t, err)

			_, err = env.svc.Friends.SendRequest(env.ctx, sender.ID, receiver.ID)
			assert.ErrorIs(t, err, apperrors.ErrConflict)

			_, err = env.svc.Friends.SendRequest(env.ctx, receiver.ID, sender.ID)
			assert.ErrorIs(t, err, apperrors.ErrConflict)

			assert.Equal(t, int64(1), env.count(t, &models.FriendRequest{}, ""))
			assert.Equal(t, int64(1), env.count(t, &models.FriendRequest{}, "sender_id = ?", sender.ID))
		})
	}
}

// Two requests that crossed before either was answered must still yield one friendship.
func TestAcceptCrossedRequests(t *testing.T) {
	env := newTestEnv(t)
	alice := env.member(t, "alice")
	bob := env.member(t, "bob")

	toBob := models.FriendRequest{SenderID: alice.ID, ReceiverID: bob.ID, Status: models.FriendRequestPending, SentAt: time.Now()}
	toAlice := models.FriendRequest{SenderID: bob.ID, ReceiverID: alice.ID, Status: models.FriendRequestPending, SentAt: time.Now()}
	require.NoError(t, env.db.Create(&toBob).Error)
	require.NoError(t, env.db.Create(&toAlice).Error)

	res, err := env.svc.Friends.AnswerRequest(env.ctx, bob, toBob.ID, models.FriendRequestAccepted)
	require.NoError(t, err)
	assert.Equal(t, dto.OutcomeFriendshipStarted, res.Outcome)

	_, err = env.svc.Friends.AnswerRequest(env.ctx, alice, toAlice.ID, models.FriendRequestAccepted)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	assert.Equal(t, int64(1), env.count(t, &models.Friendship{}, ""))
	friends, err := env.svc.Friends.ListFriends(env.ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, bob.ID, friends[0].UserID)

	// The losing request stays pending so its sender can still cancel it.
	assert.NoError(t, env.svc.Friends.CancelRequest(env.ctx, bob, toAlice.ID))
}

func TestFriendshipPairIsUnordered(t *testing.T) {
	env := newTestEnv(t)
	alice := env.member(t, "alice")
	bob := env.member(t, "bob")

	reversed := models.Friendship{UserID: bob.ID, FriendID: alice.ID}
	require.NoError(t, env.db.Create(&reversed).Error)
	assert.Equal(t, alice.ID, reversed.UserID)
	assert.Equal(t, bob.ID, reversed.FriendID)

	err := env.db.Create(&models.Friendship{UserID: alice.ID, FriendID: bob.ID}).Error
	require.Error(t, err)
	assert.True(t, isDuplicate(err))

	assert.Equal(t, models.Friendship{UserID: alice.ID, FriendID: bob.ID}, models.NewFriendship(bob.ID, alice.ID))
}

func TestAcceptCreatesOneFriendship(t *testing.T) {
	env := newTestEnv(t)
	alice := env.member(t, "alice")
	bob := env.member(t, "bob")

	req, err := env.svc.Friends.SendRequest(env.ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	res, err := env.svc.Friends.AnswerRequest(env.ctx, bob, req.ID, models.FriendRequestAccepted)
	require.NoError(t, err)
	assert.Equal(t, dto.OutcomeFriendshipStarted, res.Outcome)

	assert.Zero(t, env.count(t, &models.FriendRequest{}, ""))
	assert.Equal(t, int64(1), env.count(t, &models.Friendship{}, ""))

	// Friends cannot request each other again in either direction until they unfriend.
	_, err = env.svc.Friends.SendRequest(env.ctx, alice.ID, bob.ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	_, err = env.svc.Friends.SendRequest(env.ctx, bob.ID, alice.ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	require.NoError(t, env.svc.Friends.Unfriend(env.ctx, bob.ID, alice.ID))
	_, err = env.svc.Friends.SendRequest(env.ctx, bob.ID, alice.ID)
	assert.NoError(t, err)

	answered := env.notifier.all()[1]
	assert.Equal(t, alice.ID, answered.UserID)
	assert.Equal(t, hub.EventFriendRequestAnswered, answered.Event.Type)
}

func TestRejectCreatesNoFriendship(t *testing.T) {
	env := newTestEnv(t)
	alice := env.member(t, "alice")
	bob := env.member(t, "bob")

	req, err := env.svc.Friends.SendRequest(env.ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	res, err := env.svc.Friends.AnswerRequest(env.ctx, bob, req.ID, models.FriendRequestRejected)
	require.NoError(t, err)
	assert.Equal(t, dto.OutcomeFriendshipRejected, res.Outcome)

	assert.Zero(t, env.count(t, &models.FriendRequest{}, ""))
	assert.Zero(t, env.count(t, &models.Friendship{}, ""))
}

func TestAnswerRequestFailures(t *testing.T) {
	env := newTestEnv(t)
	alice := env.member(t, "alice")
	bob := env.member(t, "bob")
	carol := env.member(t, "carol")
	admin := env.user(t, "root", models.RoleAdmin)

	req, err := env.svc.Friends.SendRequest(env.ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = env.svc.Friends.AnswerRequest(env.ctx, bob, req.ID, models.FriendRequestPending)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = env.svc.Friends.AnswerRequest(env.ctx, bob, 999, models.FriendRequestAccepted)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	for _, tc := range []struct {
		name   string
		caller auth.Caller
	}{{"third party", carol}, {"sender", alice}, {"admin", admin}} {
		_, err = env.svc.Friends.AnswerRequest(env.ctx, tc.caller, req.ID, models.FriendRequestAccepted)
		assert.ErrorIs(t, err, apperrors.ErrForbidden, tc.name)
	}

	assert.Equal(t, int64(1), env.count(t, &models.FriendRequest{}, "status = ?", models.FriendRequestPending))
	assert.Zero(t, env.count(t, &models.Friendship{}, ""))
}

func TestAnswerAlreadyHandledRequest(t *testing.T) {
	env := newTestEnv(t)
	alice := env.member(t, "alice")
	bob := env.member(t, "bob")

	stale := models.FriendRequest{SenderID: alice.ID, ReceiverID: bob.ID, Status: models.FriendRequestRejected, SentAt: time.Now()}
	require.NoError(t, env.db.Create(&stale).Error)

	res, err := env.svc.Friends.AnswerRequest(env.ctx, bob, stale.ID, models.FriendRequestAccepted)
	require.NoError(t, err)
	assert.Equal(t, dto.OutcomeAlreadyHandled, res.Outcome)
	assert.Zero(t, env.count(t, &models.Friendship{}, ""))
	assert.Empty(t, env.notifier.all())
}

func TestCancelRequest(t *testing.T) {
	env := newTestEnv(t)
	alice := env.member(t, "alice")
	bob := env.member(t, "bob")

	req, err := env.svc.Friends.SendRequest(env.ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, env.svc.Friends.CancelRequest(env.ctx, bob, req.ID), apperrors.ErrForbidden)
	assert.NoError(t, env.svc.Friends.CancelRequest(env.ctx, alice, req.ID))
	assert.ErrorIs(t, env.svc.Friends.CancelRequest(env.ctx, alice, req.ID), apperrors.ErrNotFound)
}

func TestListFriendsAndRequests(t *testing.T) {
	env := newTestEnv(t)
	alice := env.member(t, "alice")
	bob := env.member(t, "bob")
	carol := env.member(t, "carol")
	dave := env.member(t, "dave")

	toBob, err := env.svc.Friends.SendRequest(env.ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = env.svc.Friends.AnswerRequest(env.ctx, bob, toBob.ID, models.FriendRequestAccepted)
	require.NoError(t, err)
	toAlice, err := env.svc.Friends.SendRequest(env.ctx, carol.ID, alice.ID)
	require.NoError(t, err)
	_, err = env.svc.Friends.AnswerRequest(env.ctx, alice, toAlice.ID, models.FriendRequestAccepted)
	require.NoError(t, err)
	_, err = env.svc.Friends.SendRequest(env.ctx, dave.ID, alice.ID)
	require.NoError(t, err)
	_, err = env.svc.Friends.SendRequest(env.ctx, alice.ID, dave.ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	friends, err := env.svc.Friends.ListFriends(env.ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, friends, 2)
	assert.Equal(t, "bob", friends[0].Username)
	assert.Equal(t, "carol", friends[1].Username)

	bobsFriends, err := env.svc.Friends.ListFriends(env.ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, bobsFriends, 1)
	assert.Equal(t, alice.ID, bobsFriends[0].UserID)

	received, err := env.svc.Friends.ListReceived(env.ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "dave", received[0].SenderUsername)
	assert.Equal(t, "alice", received[0].ReceiverUsername)

	sent, err := env.svc.Friends.ListSent(env.ctx, dave.ID)
	require.NoError(t, err)
	require.Len(t, sent, 1)

	none, err := env.svc.Friends.ListSent(env.ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUnfriend(t *testing.T) {
	env := newTestEnv(t)
	alice := env.member(t, "alice")
	bob := env.member(t, "bob")
	require.NoError(t, env.db.Create(&models.Friendship{UserID: alice.ID, FriendID: bob.ID}).Error)

	assert.ErrorIs(t, env.svc.Friends.Unfriend(env.ctx, alice.ID, 999), apperrors.ErrNotFound)
	assert.NoError(t, env.svc.Friends.Unfriend(env.ctx, bob.ID, alice.ID))
	assert.ErrorIs(t, env.svc.Friends.Unfriend(env.ctx, alice.ID, bob.ID), apperrors.ErrNotFound)
}
