package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mealy-app/backend/internal/common"
	"github.com/mealy-app/backend/internal/logging"
	"github.com/mealy-app/backend/internal/server/models"
)

const (
	ctxUserKey      = "api.user"
	requestIDHeader = "X-Request-Id"
	ctxRequestIDKey = "api.requestID"
)

// extractToken reads the bearer token. The bare "token" header wins over
// Authorization; the Authorization value is used with or without a
// case-insensitive "Bearer " prefix.
func extractToken(c *gin.Context) string {
	if t := c.GetHeader("token"); strings.TrimSpace(t) != "" {
		return t
	}
	a := strings.TrimSpace(c.GetHeader("Authorization"))
	if a == "" {
		return ""
	}
	if len(a) >= 7 && strings.EqualFold(a[:7], "Bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return a
}

// requireIdentity resolves the caller before any protected handler runs.
// Failures keep the original wire contract: 400 with a reason string.
func (s *Server) requireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"reason": "Missing token"})
			return
		}

		user, err := s.users.ResolveToken(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, common.ErrInvalidToken):
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"reason": "Wrong token"})
			case errors.Is(err, common.ErrNotFound):
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"reason": "User not found"})
			default:
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"reason": "Internal error"})
			}
			return
		}

		c.Set(ctxUserKey, user)
		c.Next()
	}
}

// currentUser returns the identity stored by requireIdentity.
func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// requestID tags every request with an id, honoring a caller-supplied
// X-Request-Id. Handlers pick it up through Server.log so every log line of
// the request carries the same id.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxRequestIDKey, id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// log returns the server logger tagged with the current request id.
func (s *Server) log(c *gin.Context) logging.Logger {
	if id := c.GetString(ctxRequestIDKey); id != "" {
		return s.logger.With("requestID", id)
	}
	return s.logger
}
