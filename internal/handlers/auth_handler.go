package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nikitavr/sociable/internal/middleware"
	"github.com/nikitavr/sociable/internal/models"
	"github.com/nikitavr/sociable/internal/security"
	"github.com/nikitavr/sociable/pkg/errors"
	"github.com/nikitavr/sociable/pkg/logger"
)

type registerRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new account
func (h *HandlerManager) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.New(errors.ErrCodeValidation, "invalid registration payload"))
		return
	}

	// Sanitizing can shrink the value below the binding minimum
	username := security.SanitizeString(req.Username)
	if len(username) < models.UsernameMinLength || len(username) > models.UsernameMaxLength {
		respondError(c, errors.New(errors.ErrCodeValidation, "username must be 3-64 characters"))
		return
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		respondError(c, errors.Wrap(err, errors.ErrCodeInternalError, "failed to hash password"))
		return
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := h.UserRepo.CreateUser(user); err != nil {
		respondError(c, err)
		return
	}

	logger.Info("User registered", "user_id", user.ID, "username", user.Username)
	c.JSON(http.StatusCreated, toUserResponse(user))
}

// Login verifies credentials and issues a session token. Unknown username
// and wrong password produce the same response.
func (h *HandlerManager) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.New(errors.ErrCodeValidation, "invalid login payload"))
		return
	}

	invalid := errors.New(errors.ErrCodeUnauthorized, "invalid username or password")

	user, err := h.UserRepo.GetUserByUsername(req.Username)
	if err != nil {
		respondError(c, invalid)
		return
	}
	if !security.CheckPassword(user.PasswordHash, req.Password) {
		respondError(c, invalid)
		return
	}

	token, err := security.GenerateJWT(user.ID, user.Username, h.Config.JWTSecret)
	if err != nil {
		respondError(c, errors.Wrap(err, errors.ErrCodeInternalError, "failed to issue token"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  toUserResponse(user),
	})
}

// CheckUnique probes username availability for registration forms
func (h *HandlerManager) CheckUnique(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		respondError(c, errors.New(errors.ErrCodeValidation, "username query parameter is required"))
		return
	}

	taken, err := h.UserRepo.UsernameTaken(username)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"username": !taken})
}

// Me returns the authenticated caller's profile
func (h *HandlerManager) Me(c *gin.Context) {
	user, err := h.UserRepo.GetUserByID(middleware.CallerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}
