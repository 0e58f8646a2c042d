package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nikitavr/sociable/internal/middleware"
	"github.com/nikitavr/sociable/internal/models"
	"github.com/nikitavr/sociable/pkg/errors"
)

type sendMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

type messageResponse struct {
	ID          uint   `json:"id"`
	SenderID    uint   `json:"sender_id"`
	RecipientID uint   `json:"recipient_id"`
	Body        string `json:"body"`
	CreatedAt   string `json:"createdAt"`
}

func toMessageResponse(m *models.Message) messageResponse {
	return messageResponse{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Body:        m.Body,
		CreatedAt:   m.FormattedCreatedAt(),
	}
}

// GetConversation returns the caller's thread with the named user
func (h *HandlerManager) GetConversation(c *gin.Context) {
	target, ok := h.targetUser(c)
	if !ok {
		return
	}

	messages, err := h.Messaging.Conversation(middleware.CallerID(c), target.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]messageResponse, 0, len(messages))
	for i := range messages {
		out = append(out, toMessageResponse(&messages[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"with":     toUserResponse(target),
		"messages": out,
	})
}

// SendMessage posts a message to the named user
func (h *HandlerManager) SendMessage(c *gin.Context) {
	target, ok := h.targetUser(c)
	if !ok {
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.New(errors.ErrCodeValidation, "invalid message payload"))
		return
	}

	message, err := h.Messaging.Send(middleware.CallerID(c), target.ID, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toMessageResponse(message))
}

// DeleteMessage deletes a message the caller is a party to
func (h *HandlerManager) DeleteMessage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, errors.New(errors.ErrCodeValidation, "invalid message id"))
		return
	}

	if err := h.Messaging.Delete(middleware.CallerID(c), uint(id)); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
