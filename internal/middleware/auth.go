package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nikitavr/sociable/internal/security"
	"github.com/nikitavr/sociable/pkg/errors"
)

const (
	// ContextUserID is the gin context key holding the authenticated caller id
	ContextUserID = "user_id"
	// ContextUsername is the gin context key holding the caller username
	ContextUsername = "username"
)

// Auth validates the bearer token and stores the caller identity on the
// context. The token may also arrive as a query parameter for the WebSocket
// handshake, where browsers cannot set headers.
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			token = c.Query("token")
		}
		if token == "" {
			abortWithError(c, errors.New(errors.ErrCodeUnauthorized, "missing credentials"))
			return
		}

		claims, err := security.ValidateJWT(token, jwtSecret)
		if err != nil {
			abortWithError(c, errors.New(errors.ErrCodeUnauthorized, "invalid or expired token"))
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Next()
	}
}

// CallerID returns the authenticated user id stored by Auth
func CallerID(c *gin.Context) uint {
	id, _ := c.Get(ContextUserID)
	userID, _ := id.(uint)
	return userID
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(errors.HTTPStatus(err), gin.H{
		"error": err.Error(),
		"code":  errors.Code(err),
	})
}
