package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetComments godoc
// @Summary      List all comments
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        q     query     string  false  "Search query for content"
// @Param        page  query     int     false  "Page number" default(1)
// @Param        limit query     int     false  "Items per page" default(20)
// @Success      200   {object}  PaginatedResponse[dto.CommentResponse]
// @Failure      403   {object}  ErrorResponse "Moderator access required"
// @Router       /comments [get]
func (h *Handler) GetComments(c *gin.Context) {
	opts := listOptions(c)
	comments, total, err := h.services.Comments.GetAll(c.Request.Context(), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	paginated(c, opts, comments, total)
}

// GetCommentByID godoc
// @Summary      Get a comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Comment ID"
// @Success      200  {object}  dto.CommentResponse
// @Failure      403  {object}  ErrorResponse "Moderator access required"
// @Failure      404  {object}  ErrorResponse
// @Router       /comments/{id} [get]
func (h *Handler) GetCommentByID(c *gin.Context) {
	id, ok := parseID(c, "id", "comment")
	if !ok {
		return
	}
	comment, err := h.services.Comments.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Description  The author, moderators and admins may delete a comment.
// @Tags         comments
// @Security     BearerAuth
// @Param        id   path      int  true  "Comment ID"
// @Success      204
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /comments/{id} [delete]
func (h *Handler) DeleteComment(c *gin.Context) {
	id, ok := parseID(c, "id", "comment")
	if !ok {
		return
	}
	if err := h.services.Comments.Delete(c.Request.Context(), caller(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
