package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"forum/backend/internal/models"
	"forum/backend/pkg/jwt"
)

// TokenParser turns a bearer token into an identity.
type TokenParser interface {
	ParseToken(token string) (jwt.Identity, error)
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func callerFromIdentity(id jwt.Identity) Caller {
	return Caller{
		ID:       id.UserID,
		Username: id.Username,
		Email:    id.Email,
		Role:     models.Role(id.Role),
	}
}

// AuthMiddleware rejects requests without a valid bearer token.
func AuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing or malformed"})
			return
		}

		identity, err := tokens.ParseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		SetCaller(c, callerFromIdentity(identity))
		c.Next()
	}
}
