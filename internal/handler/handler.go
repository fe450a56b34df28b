package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"forum/backend/internal/auth"
	"forum/backend/internal/hub"
	"forum/backend/internal/service"
	"forum/backend/pkg/jwt"
)

// TokenIssuer signs tokens for authenticated users.
type TokenIssuer interface {
	GenerateToken(id jwt.Identity) (string, time.Time, error)
}

// Handler serves the forum API on top of the domain services.
type Handler struct {
	services            *service.Services
	tokens              TokenIssuer
	hub                 *hub.Hub
	ping                func(ctx context.Context) error
	registerIssuesToken bool
}

// New creates a Handler. ping is the database health check used by /ping.
func New(services *service.Services, tokens TokenIssuer, events *hub.Hub, ping func(ctx context.Context) error, registerIssuesToken bool) *Handler {
	return &Handler{
		services:            services,
		tokens:              tokens,
		hub:                 events,
		ping:                ping,
		registerIssuesToken: registerIssuesToken,
	}
}

// parseID reads a positive numeric path parameter, answering 400 when it is malformed.
func parseID(c *gin.Context, name, label string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + label + " ID"})
		return 0, false
	}
	return uint(id), true
}

// viewerID returns the caller's id on routes behind OptionalAuthMiddleware, or 0.
func viewerID(c *gin.Context) uint {
	if cl, ok := auth.CallerFrom(c); ok {
		return cl.ID
	}
	return 0
}

// caller returns the identity set by AuthMiddleware.
func caller(c *gin.Context) auth.Caller {
	cl, _ := auth.CallerFrom(c)
	return cl
}
