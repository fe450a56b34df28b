package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"forum/backend/internal/dto"
	"forum/backend/internal/models"
	"forum/backend/internal/service"
	"forum/backend/pkg/jwt"
)

// region --- DTOs ---

// RegisterInput defines the structure for user registration.
type RegisterInput struct {
	Username        string `json:"username" binding:"required,max=255" example:"testuser"`
	Email           string `json:"email" binding:"required,email" example:"test@example.com"`
	Password        string `json:"password" binding:"required" example:"password123"`
	ConfirmPassword string `json:"confirm_password" binding:"required" example:"password123"`
}

// LoginInput defines the structure for user login.
type LoginInput struct {
	Login    string `json:"login" binding:"required" example:"testuser"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// RoleInput defines the structure for changing a user's role.
type RoleInput struct {
	Role string `json:"role" binding:"required" example:"Moderator"`
}

// endregion

// region --- Auth Handlers ---

func (h *Handler) issueToken(user dto.UserResponse) (dto.AuthResponse, error) {
	token, expiresAt, err := h.tokens.GenerateToken(jwt.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	})
	if err != nil {
		return dto.AuthResponse{}, err
	}
	return dto.AuthResponse{Token: token, ExpiresAt: &expiresAt, User: user}, nil
}

// RegisterUser godoc
// @Summary      Register a new user
// @Description  Creates a new Member account. Returns a token too unless token-on-register is disabled.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body RegisterInput true "Registration Info"
// @Success      201  {object}  dto.AuthResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Failure      429  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/register [post]
func (h *Handler) RegisterUser(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.services.Auth.Register(c.Request.Context(), service.RegisterInput{
		Username:        input.Username,
		Email:           input.Email,
		Password:        input.Password,
		ConfirmPassword: input.ConfirmPassword,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if !h.registerIssuesToken {
		c.JSON(http.StatusCreated, dto.AuthResponse{User: *user})
		return
	}

	resp, err := h.issueToken(*user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// LoginUser godoc
// @Summary      Log in a user
// @Description  Authenticates a user with username/email and password, and returns a new token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Login Info"
// @Success      200  {object}  dto.AuthResponse
// @Failure      400  {object}  ErrorResponse "Invalid input"
// @Failure      401  {object}  ErrorResponse "Invalid credentials"
// @Failure      404  {object}  ErrorResponse "User not found"
// @Failure      429  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse "Internal server error"
// @Router       /auth/login [post]
func (h *Handler) LoginUser(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.services.Auth.Login(c.Request.Context(), input.Login, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	resp, err := h.issueToken(*user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// endregion

// region --- User Handlers ---

// SearchUsers godoc
// @Summary      Search for users
// @Description  Lists users with their friend count, optionally filtered by username.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        q     query     string  false  "Search query for username"
// @Param        page  query     int     false  "Page number" default(1)
// @Param        limit query     int     false  "Items per page" default(20)
// @Success      200   {object}  PaginatedResponse[dto.UserResponse]
// @Failure      401   {object}  ErrorResponse
// @Router       /users [get]
func (h *Handler) SearchUsers(c *gin.Context) {
	opts := listOptions(c)
	users, total, err := h.services.Users.List(c.Request.Context(), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	paginated(c, opts, users, total)
}

// GetMe godoc
// @Summary      Get current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/me [get]
func (h *Handler) GetMe(c *gin.Context) {
	user, err := h.services.Users.GetByID(c.Request.Context(), caller(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetUserByID godoc
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  dto.UserResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [get]
func (h *Handler) GetUserByID(c *gin.Context) {
	id, ok := parseID(c, "id", "user")
	if !ok {
		return
	}
	user, err := h.services.Users.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetUserPosts godoc
// @Summary      List a user's posts
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {array}   dto.PostResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id}/posts [get]
func (h *Handler) GetUserPosts(c *gin.Context) {
	id, ok := parseID(c, "id", "user")
	if !ok {
		return
	}
	posts, err := h.services.Users.Posts(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// GetUserComments godoc
// @Summary      List a user's comments
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {array}   dto.CommentResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id}/comments [get]
func (h *Handler) GetUserComments(c *gin.Context) {
	id, ok := parseID(c, "id", "user")
	if !ok {
		return
	}
	comments, err := h.services.Users.Comments(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// GetUserLikes godoc
// @Summary      List a user's likes
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {array}   dto.LikeResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id}/likes [get]
func (h *Handler) GetUserLikes(c *gin.Context) {
	id, ok := parseID(c, "id", "user")
	if !ok {
		return
	}
	likes, err := h.services.Users.Likes(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, likes)
}

// DeleteUser godoc
// @Summary      Delete a user
// @Description  Users may delete themselves; admins may delete anyone. Posts, comments, likes and friend relations go with the account.
// @Tags         users
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      204
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [delete]
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id", "user")
	if !ok {
		return
	}
	if err := h.services.Users.Delete(c.Request.Context(), caller(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetUserRole godoc
// @Summary      Change a user's role
// @Tags         admin-users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int        true  "User ID"
// @Param        input body      RoleInput  true  "New role"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse "Admin access required"
// @Failure      404   {object}  ErrorResponse
// @Router       /users/{id}/role [put]
func (h *Handler) SetUserRole(c *gin.Context) {
	id, ok := parseID(c, "id", "user")
	if !ok {
		return
	}

	var input RoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.services.Users.SetRole(c.Request.Context(), id, models.Role(input.Role))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// endregion
