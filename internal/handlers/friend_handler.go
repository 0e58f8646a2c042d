package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nikitavr/sociable/internal/middleware"
	"github.com/nikitavr/sociable/internal/models"
	"github.com/nikitavr/sociable/pkg/logger"
)

// targetUser resolves the :username route parameter
func (h *HandlerManager) targetUser(c *gin.Context) (*models.User, bool) {
	user, err := h.UserRepo.GetUserByUsername(c.Param("username"))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return user, true
}

// RequestFriend sends a friend request to the named user
func (h *HandlerManager) RequestFriend(c *gin.Context) {
	target, ok := h.targetUser(c)
	if !ok {
		return
	}

	callerID := middleware.CallerID(c)
	if err := h.FriendRepo.SendFriendRequest(callerID, target.ID); err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Friend request sent", "requester_id", callerID, "receiver_id", target.ID)
	c.JSON(http.StatusCreated, gin.H{"requested": target.Username})
}

// AcceptFriend accepts a pending request from the named user
func (h *HandlerManager) AcceptFriend(c *gin.Context) {
	target, ok := h.targetUser(c)
	if !ok {
		return
	}

	callerID := middleware.CallerID(c)
	if err := h.FriendRepo.AcceptFriendRequest(callerID, target.ID); err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Friend request accepted", "receiver_id", callerID, "requester_id", target.ID)
	c.JSON(http.StatusOK, gin.H{"friend": target.Username})
}

// RefuseFriend refuses a pending request from the named user
func (h *HandlerManager) RefuseFriend(c *gin.Context) {
	target, ok := h.targetUser(c)
	if !ok {
		return
	}

	if err := h.FriendRepo.RefuseFriendRequest(middleware.CallerID(c), target.ID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"refused": target.Username})
}

// RemoveFriend deletes an existing friendship with the named user
func (h *HandlerManager) RemoveFriend(c *gin.Context) {
	target, ok := h.targetUser(c)
	if !ok {
		return
	}

	if err := h.FriendRepo.RemoveFriend(middleware.CallerID(c), target.ID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": target.Username})
}

// ListFriends lists the caller's friends
func (h *HandlerManager) ListFriends(c *gin.Context) {
	friends, err := h.FriendRepo.GetFriends(middleware.CallerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"friends": toUserResponses(friends)})
}

// ListIncomingRequests lists users waiting on the caller's answer
func (h *HandlerManager) ListIncomingRequests(c *gin.Context) {
	users, err := h.FriendRepo.GetIncomingRequesters(middleware.CallerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": toUserResponses(users)})
}

// ListOutgoingRequests lists users the caller is waiting on
func (h *HandlerManager) ListOutgoingRequests(c *gin.Context) {
	users, err := h.FriendRepo.GetOutgoingReceivers(middleware.CallerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": toUserResponses(users)})
}
