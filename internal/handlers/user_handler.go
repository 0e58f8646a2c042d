package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nikitavr/sociable/internal/middleware"
	"github.com/nikitavr/sociable/internal/security"
	"github.com/nikitavr/sociable/pkg/errors"
)

const usersPerPage = 10

type updateAboutRequest struct {
	About string `json:"about" binding:"max=140"`
}

// Profile returns another user's public profile, with the relationship state
// the caller needs to render action buttons
func (h *HandlerManager) Profile(c *gin.Context) {
	user, err := h.UserRepo.GetUserByUsername(c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}

	callerID := middleware.CallerID(c)
	areFriends := false
	if user.ID != callerID {
		areFriends, err = h.FriendRepo.AreFriends(callerID, user.ID)
		if err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     toUserResponse(user),
		"isFriend": areFriends,
		"isSelf":   user.ID == callerID,
		"online":   h.Hub.IsOnline(user.ID),
	})
}

// ListUsers lists all other users, with optional substring search, 10 per page
func (h *HandlerManager) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	query := c.Query("username")

	users, total, err := h.UserRepo.SearchUsers(middleware.CallerID(c), query, page, usersPerPage)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": toUserResponses(users),
		"page":  page,
		"total": total,
	})
}

// UpdateAbout updates the caller's profile text
func (h *HandlerManager) UpdateAbout(c *gin.Context) {
	var req updateAboutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.New(errors.ErrCodeValidation, "invalid about payload"))
		return
	}

	about := security.SanitizeString(security.SanitizeHTML(req.About))
	if err := h.UserRepo.UpdateAbout(middleware.CallerID(c), about); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"about": about})
}
