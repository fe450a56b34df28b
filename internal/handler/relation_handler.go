package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"forum/backend/internal/models"
)

// AnswerInput defines the structure for answering a friend request.
type AnswerInput struct {
	Decision string `json:"decision" binding:"required" example:"Accepted" enums:"Accepted,Rejected"`
}

// GetFriends godoc
// @Summary      List friends
// @Description  Lists the caller's friends, whichever side sent the original request.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.FriendResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /friends [get]
func (h *Handler) GetFriends(c *gin.Context) {
	friends, err := h.services.Friends.ListFriends(c.Request.Context(), caller(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, friends)
}

// GetReceivedRequests godoc
// @Summary      List received friend requests
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.FriendRequestResponse
// @Router       /friends/requests/received [get]
func (h *Handler) GetReceivedRequests(c *gin.Context) {
	reqs, err := h.services.Friends.ListReceived(c.Request.Context(), caller(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reqs)
}

// GetSentRequests godoc
// @Summary      List sent friend requests
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.FriendRequestResponse
// @Router       /friends/requests/sent [get]
func (h *Handler) GetSentRequests(c *gin.Context) {
	reqs, err := h.services.Friends.ListSent(c.Request.Context(), caller(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reqs)
}

// SendRequest godoc
// @Summary      Send friend request
// @Description  Sends a friend request to another user.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Target User ID"
// @Success      201  {object}  dto.FriendRequestResponse
// @Failure      400  {object}  ErrorResponse "Cannot send request to yourself"
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Failure      409  {object}  ErrorResponse "Already friends or request pending"
// @Router       /friends/requests/{id} [post]
func (h *Handler) SendRequest(c *gin.Context) {
	targetID, ok := parseID(c, "id", "target user")
	if !ok {
		return
	}
	req, err := h.services.Friends.SendRequest(c.Request.Context(), caller(c).ID, targetID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

// AnswerRequest godoc
// @Summary      Answer a friend request
// @Description  Accepts or rejects a pending request. Only its receiver may answer.
// @Tags         friendship
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int          true  "Friend request ID"
// @Param        input body      AnswerInput  true  "Decision"
// @Success      200   {object}  dto.AnswerResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse "Not the receiver"
// @Failure      404   {object}  ErrorResponse
// @Router       /friends/requests/{id}/answer [post]
func (h *Handler) AnswerRequest(c *gin.Context) {
	requestID, ok := parseID(c, "id", "friend request")
	if !ok {
		return
	}

	var input AnswerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.services.Friends.AnswerRequest(c.Request.Context(), caller(c), requestID, models.FriendRequestStatus(input.Decision))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// CancelRequest godoc
// @Summary      Cancel a sent friend request
// @Tags         friendship
// @Security     BearerAuth
// @Param        id   path      int  true  "Friend request ID"
// @Success      204
// @Failure      403  {object}  ErrorResponse "Not the sender"
// @Failure      404  {object}  ErrorResponse
// @Router       /friends/requests/{id} [delete]
func (h *Handler) CancelRequest(c *gin.Context) {
	requestID, ok := parseID(c, "id", "friend request")
	if !ok {
		return
	}
	if err := h.services.Friends.CancelRequest(c.Request.Context(), caller(c), requestID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Unfriend godoc
// @Summary      Remove a friend
// @Tags         friendship
// @Security     BearerAuth
// @Param        id   path      int  true  "Friend's User ID"
// @Success      204
// @Failure      404  {object}  ErrorResponse "Not friends"
// @Router       /friends/{id} [delete]
func (h *Handler) Unfriend(c *gin.Context) {
	friendID, ok := parseID(c, "id", "user")
	if !ok {
		return
	}
	if err := h.services.Friends.Unfriend(c.Request.Context(), caller(c).ID, friendID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
