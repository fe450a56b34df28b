package auth

import (
	"github.com/gin-gonic/gin"

	"forum/backend/internal/models"
)

const callerKey = "caller"

// Caller is the authenticated identity decoded from a bearer token.
type Caller struct {
	ID       uint
	Username string
	Email    string
	Role     models.Role
}

// Can reports whether the caller's role grants capability.
func (c Caller) Can(capability Capability) bool {
	return HasCapability(c.Role, capability)
}

// SetCaller stores the caller on the request context.
func SetCaller(c *gin.Context, caller Caller) {
	c.Set(callerKey, caller)
}

// CallerFrom returns the caller stored by AuthMiddleware or OptionalAuthMiddleware.
func CallerFrom(c *gin.Context) (Caller, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return Caller{}, false
	}
	caller, ok := v.(Caller)
	return caller, ok
}
