package server

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bancalarisantiago/workfolio/pkg/repoerr"
)

const (
	// HeaderUser carries the authenticated user id resolved by the edge
	// gateway. This service trusts it; authentication happens upstream.
	HeaderUser = "X-User-ID"

	contextUserIDKey = "user_id"
)

func (s *Server) UserRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(HeaderUser))
		if userID == "" {
			AbortWithError(c, repoerr.Invalid("A user identifier is required for this operation."))
			return
		}
		c.Set(contextUserIDKey, userID)
		c.Next()
	}
}

func currentUserID(c *gin.Context) string {
	return c.GetString(contextUserIDKey)
}
