package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nikitavr/sociable/internal/middleware"
	"github.com/nikitavr/sociable/pkg/errors"
	"github.com/nikitavr/sociable/pkg/logger"
)

// UploadAvatar stores a new avatar for the caller and replaces the old one
func (h *HandlerManager) UploadAvatar(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		respondError(c, errors.New(errors.ErrCodeValidation, "image file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, errors.Wrap(err, errors.ErrCodeInternalError, "failed to read upload"))
		return
	}
	defer file.Close()

	stored, err := h.Avatars.Save(fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		respondError(c, err)
		return
	}

	callerID := middleware.CallerID(c)
	user, err := h.UserRepo.GetUserByID(callerID)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.UserRepo.UpdateImage(callerID, stored); err != nil {
		respondError(c, err)
		return
	}

	// The previous file is orphaned once the reference moves
	if user.HasAvatar() {
		if err := h.Avatars.Remove(user.Image); err != nil {
			logger.Warn("Failed to remove old avatar", "user_id", callerID, "error", err)
		}
	}

	user.Image = stored
	c.JSON(http.StatusOK, gin.H{"avatarUrl": "/avatars/" + user.Username})
}

// ServeAvatar serves the named user's avatar file, or the default avatar
// when none was uploaded
func (h *HandlerManager) ServeAvatar(c *gin.Context) {
	user, ok := h.targetUser(c)
	if !ok {
		return
	}

	c.File(h.Avatars.Path(user))
}
