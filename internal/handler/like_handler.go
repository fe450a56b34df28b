package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetLikes godoc
// @Summary      List all likes
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "Page number" default(1)
// @Param        limit query     int  false  "Items per page" default(20)
// @Success      200   {object}  PaginatedResponse[dto.LikeResponse]
// @Router       /likes [get]
func (h *Handler) GetLikes(c *gin.Context) {
	opts := listOptions(c)
	likes, total, err := h.services.Likes.GetAll(c.Request.Context(), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	paginated(c, opts, likes, total)
}

// GetLikeByID godoc
// @Summary      Get a like
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Like ID"
// @Success      200  {object}  dto.LikeResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /likes/{id} [get]
func (h *Handler) GetLikeByID(c *gin.Context) {
	id, ok := parseID(c, "id", "like")
	if !ok {
		return
	}
	like, err := h.services.Likes.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, like)
}
