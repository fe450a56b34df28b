package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"forum/backend/internal/service"
)

// region --- DTOs ---

// PostInput defines the structure for creating a post.
type PostInput struct {
	Title       string `json:"title" binding:"required,max=255" example:"Hello world"`
	Description string `json:"description" example:"My **first** post"`
	CategoryIDs []uint `json:"category_ids" example:"1,2"`
}

// CommentInput defines the structure for commenting on a post.
type CommentInput struct {
	Content string `json:"content" binding:"required" example:"Nice post!"`
}

// UnlikeResponse reports whether a like was removed.
type UnlikeResponse struct {
	Removed bool `json:"removed" example:"true"`
}

// endregion

// region --- Post Handlers ---

// GetPosts godoc
// @Summary      List posts
// @Description  Lists posts newest first with author, categories, like and comment counts.
// @Tags         posts
// @Produce      json
// @Param        q     query     string  false  "Search query for title"
// @Param        page  query     int     false  "Page number" default(1)
// @Param        limit query     int     false  "Items per page" default(20)
// @Success      200   {object}  PaginatedResponse[dto.PostResponse]
// @Router       /posts [get]
func (h *Handler) GetPosts(c *gin.Context) {
	opts := listOptions(c)
	posts, total, err := h.services.Posts.GetAll(c.Request.Context(), opts, viewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	paginated(c, opts, posts, total)
}

// GetPostByID godoc
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Param        id   path      int  true  "Post ID"
// @Success      200  {object}  dto.PostResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id} [get]
func (h *Handler) GetPostByID(c *gin.Context) {
	id, ok := parseID(c, "id", "post")
	if !ok {
		return
	}
	post, err := h.services.Posts.GetByID(c.Request.Context(), id, viewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// CreatePost godoc
// @Summary      Create a post
// @Description  Creates a post by the caller. Unknown category ids are ignored.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body PostInput true "Post Info"
// @Success      201  {object}  dto.PostResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var input PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.services.Posts.Create(c.Request.Context(), caller(c).ID, service.PostInput{
		Title:       input.Title,
		Description: input.Description,
		CategoryIDs: input.CategoryIDs,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  The author, moderators and admins may delete a post. Its comments and likes are removed with it.
// @Tags         posts
// @Security     BearerAuth
// @Param        id   path      int  true  "Post ID"
// @Success      204
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	id, ok := parseID(c, "id", "post")
	if !ok {
		return
	}
	if err := h.services.Posts.Delete(c.Request.Context(), caller(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetPostComments godoc
// @Summary      List comments on a post
// @Tags         posts
// @Produce      json
// @Param        id   path      int  true  "Post ID"
// @Success      200  {array}   dto.CommentResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id}/comments [get]
func (h *Handler) GetPostComments(c *gin.Context) {
	id, ok := parseID(c, "id", "post")
	if !ok {
		return
	}
	comments, err := h.services.Posts.Comments(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// GetPostLikes godoc
// @Summary      List likes on a post
// @Tags         posts
// @Produce      json
// @Param        id   path      int  true  "Post ID"
// @Success      200  {array}   dto.LikeResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id}/likes [get]
func (h *Handler) GetPostLikes(c *gin.Context) {
	id, ok := parseID(c, "id", "post")
	if !ok {
		return
	}
	likes, err := h.services.Posts.Likes(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, likes)
}

// CreateComment godoc
// @Summary      Comment on a post
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int           true  "Post ID"
// @Param        input body      CommentInput  true  "Comment"
// @Success      201   {object}  dto.CommentResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /posts/{id}/comments [post]
func (h *Handler) CreateComment(c *gin.Context) {
	id, ok := parseID(c, "id", "post")
	if !ok {
		return
	}

	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.services.Comments.Create(c.Request.Context(), id, caller(c).ID, input.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// LikePost godoc
// @Summary      Like a post
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Post ID"
// @Success      201  {object}  dto.LikeResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Already liked"
// @Router       /posts/{id}/like [post]
func (h *Handler) LikePost(c *gin.Context) {
	id, ok := parseID(c, "id", "post")
	if !ok {
		return
	}
	like, err := h.services.Likes.Create(c.Request.Context(), id, caller(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, like)
}

// UnlikePost godoc
// @Summary      Remove a like
// @Description  Removing a like that does not exist is not an error; removed is false.
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Post ID"
// @Success      200  {object}  UnlikeResponse
// @Router       /posts/{id}/like [delete]
func (h *Handler) UnlikePost(c *gin.Context) {
	id, ok := parseID(c, "id", "post")
	if !ok {
		return
	}
	removed, err := h.services.Likes.Delete(c.Request.Context(), id, caller(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, UnlikeResponse{Removed: removed})
}

// endregion
