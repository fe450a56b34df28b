package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"forum/backend/internal/apperrors"
	"forum/backend/internal/logger"
)

// ErrorResponse is the body of every error answer.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// respondError maps a service error onto its HTTP status.
func respondError(c *gin.Context, err error) {
	var status int
	switch apperrors.Kind(err) {
	case apperrors.ErrValidation:
		status = http.StatusBadRequest
	case apperrors.ErrUnauthorized:
		status = http.StatusUnauthorized
	case apperrors.ErrForbidden:
		status = http.StatusForbidden
	case apperrors.ErrNotFound:
		status = http.StatusNotFound
	case apperrors.ErrConflict:
		status = http.StatusConflict
	default:
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
