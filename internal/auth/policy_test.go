package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"forum/backend/internal/models"
)

func TestRoleCapabilities(t *testing.T) {
	tests := []struct {
		role models.Role
		want map[Capability]bool
	}{
		{models.RoleAdmin, map[Capability]bool{ModerateContent: true, ManageCategories: true, ManageUsers: true}},
		{models.RoleModerator, map[Capability]bool{ModerateContent: true, ManageCategories: true, ManageUsers: false}},
		{models.RoleMember, map[Capability]bool{ModerateContent: false, ManageCategories: false, ManageUsers: false}},
		{models.Role("Owner"), map[Capability]bool{ModerateContent: false, ManageCategories: false, ManageUsers: false}},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			for capability, want := range tt.want {
				assert.Equal(t, want, HasCapability(tt.role, capability), capability)
			}
		})
	}
}

func TestCanDeletePostAndComment(t *testing.T) {
	author := Caller{ID: 3, Role: models.RoleMember}
	stranger := Caller{ID: 4, Role: models.RoleMember}
	moderator := Caller{ID: 2, Role: models.RoleModerator}
	admin := Caller{ID: 1, Role: models.RoleAdmin}

	for _, check := range []func(Caller, uint) bool{CanDeletePost, CanDeleteComment} {
		assert.True(t, check(author, 3))
		assert.False(t, check(stranger, 3))
		assert.True(t, check(moderator, 3))
		assert.True(t, check(admin, 3))
	}
}

func TestCanDeleteUser(t *testing.T) {
	assert.True(t, CanDeleteUser(Caller{ID: 5, Role: models.RoleMember}, 5))
	assert.False(t, CanDeleteUser(Caller{ID: 5, Role: models.RoleMember}, 6))
	assert.False(t, CanDeleteUser(Caller{ID: 2, Role: models.RoleModerator}, 6))
	assert.True(t, CanDeleteUser(Caller{ID: 1, Role: models.RoleAdmin}, 6))
}

func TestFriendRequestPolicy(t *testing.T) {
	req := models.FriendRequest{SenderID: 10, ReceiverID: 11}
	admin := Caller{ID: 1, Role: models.RoleAdmin}

	assert.True(t, CanAnswerFriendRequest(Caller{ID: 11}, req))
	assert.False(t, CanAnswerFriendRequest(Caller{ID: 10}, req))
	assert.False(t, CanAnswerFriendRequest(admin, req))

	assert.True(t, CanCancelFriendRequest(Caller{ID: 10}, req))
	assert.False(t, CanCancelFriendRequest(Caller{ID: 11}, req))
	assert.False(t, CanCancelFriendRequest(admin, req))
}
