package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/nikitavr/sociable/internal/config"
	"github.com/nikitavr/sociable/internal/middleware"
	"github.com/nikitavr/sociable/internal/models"
	"github.com/nikitavr/sociable/internal/realtime"
	"github.com/nikitavr/sociable/internal/repositories"
	"github.com/nikitavr/sociable/internal/services"
	"github.com/nikitavr/sociable/internal/storage"
	"github.com/nikitavr/sociable/pkg/errors"
	"github.com/nikitavr/sociable/pkg/logger"
)

// HandlerManager wires repositories, services and the realtime hub into the
// HTTP boundary
type HandlerManager struct {
	Config      *config.Config
	UserRepo    *repositories.UserRepository
	FriendRepo  *repositories.FriendRepository
	MessageRepo *repositories.MessageRepository
	Messaging   *services.MessagingService
	Hub         *realtime.Hub
	Avatars     *storage.AvatarStore
}

func NewHandlerManager(
	cfg *config.Config,
	userRepo *repositories.UserRepository,
	friendRepo *repositories.FriendRepository,
	messageRepo *repositories.MessageRepository,
	messaging *services.MessagingService,
	hub *realtime.Hub,
	avatars *storage.AvatarStore,
) *HandlerManager {
	return &HandlerManager{
		Config:      cfg,
		UserRepo:    userRepo,
		FriendRepo:  friendRepo,
		MessageRepo: messageRepo,
		Messaging:   messaging,
		Hub:         hub,
		Avatars:     avatars,
	}
}

// RegisterRoutes mounts all routes on the engine
func (h *HandlerManager) RegisterRoutes(r *gin.Engine) {
	limiter := middleware.NewRateLimiter(
		h.Config.RateLimitPerUser,
		h.Config.RateLimitPerIP,
		h.Config.RateLimitWindow,
	)
	auth := middleware.Auth(h.Config.JWTSecret)

	r.Static("/static", "./static")

	public := r.Group("/", limiter.LimitByIP())
	{
		public.POST("/api/register", h.Register)
		public.POST("/api/login", h.Login)
		public.GET("/api/check-unique", h.CheckUnique)
	}

	private := r.Group("/", auth, limiter.LimitByUser())
	{
		private.GET("/api/me", h.Me)
		private.PUT("/api/me/about", h.UpdateAbout)
		private.POST("/api/me/avatar", h.UploadAvatar)

		private.GET("/api/users", h.ListUsers)
		private.GET("/api/users/:username", h.Profile)

		private.POST("/api/users/:username/request", h.RequestFriend)
		private.POST("/api/users/:username/accept", h.AcceptFriend)
		private.POST("/api/users/:username/refuse", h.RefuseFriend)
		private.DELETE("/api/users/:username/friend", h.RemoveFriend)
		private.GET("/api/friends", h.ListFriends)
		private.GET("/api/friends/requests/incoming", h.ListIncomingRequests)
		private.GET("/api/friends/requests/outgoing", h.ListOutgoingRequests)

		private.GET("/api/chats/:username", h.GetConversation)
		private.POST("/api/chats/:username", h.SendMessage)
		private.DELETE("/api/messages/:id", h.DeleteMessage)

		private.GET("/avatars/:username", h.ServeAvatar)
		private.GET("/ws", h.ServeWS)
	}
}

// userResponse is the public view of a user
type userResponse struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	About     string `json:"about"`
	AvatarURL string `json:"avatarUrl"`
	CreatedAt string `json:"createdAt"`
}

func toUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Username:  user.Username,
		About:     user.About,
		AvatarURL: services.AvatarURL(user),
		CreatedAt: user.CreatedAt.Format("2006-01-02"),
	}
}

func toUserResponses(users []models.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out
}

func respondError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	if status >= 500 {
		logger.Error("Request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{
		"error": err.Error(),
		"code":  errors.Code(err),
	})
}
