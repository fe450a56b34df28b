package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"forum/backend/internal/logger"
)

// Ping godoc
// @Summary      Health check
// @Description  Answers pong when the database is reachable.
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string "{"message": "pong"}"
// @Failure      503  {object}  map[string]string
// @Router       /ping [get]
func (h *Handler) Ping(c *gin.Context) {
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := h.ping(ctx); err != nil {
			logger.Error().Err(err).Msg("health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"message": "database unavailable"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
