package auth

import "forum/backend/internal/models"

// Capability is a named permission derived from a role.
type Capability string

const (
	// ModerateContent allows deleting other users' posts and comments and reading all comments.
	ModerateContent Capability = "moderate_content"
	// ManageCategories allows creating and deleting categories.
	ManageCategories Capability = "manage_categories"
	// ManageUsers allows deleting other users and changing roles.
	ManageUsers Capability = "manage_users"
)

var roleCapabilities = map[models.Role][]Capability{
	models.RoleAdmin:     {ModerateContent, ManageCategories, ManageUsers},
	models.RoleModerator: {ModerateContent, ManageCategories},
	models.RoleMember:    {},
}

// HasCapability reports whether role grants capability. Unknown roles grant nothing.
func HasCapability(role models.Role, capability Capability) bool {
	for _, c := range roleCapabilities[role] {
		if c == capability {
			return true
		}
	}
	return false
}

// CanDeletePost allows the author and moderators.
func CanDeletePost(caller Caller, authorID uint) bool {
	return caller.ID == authorID || caller.Can(ModerateContent)
}

// CanDeleteComment allows the author and moderators.
func CanDeleteComment(caller Caller, authorID uint) bool {
	return caller.ID == authorID || caller.Can(ModerateContent)
}

// CanDeleteUser allows users to delete themselves and admins to delete anyone.
func CanDeleteUser(caller Caller, targetID uint) bool {
	return caller.ID == targetID || caller.Can(ManageUsers)
}

// CanAnswerFriendRequest allows only the receiver.
func CanAnswerFriendRequest(caller Caller, req models.FriendRequest) bool {
	return caller.ID == req.ReceiverID
}

// CanCancelFriendRequest allows only the sender.
func CanCancelFriendRequest(caller Caller, req models.FriendRequest) bool {
	return caller.ID == req.SenderID
}
