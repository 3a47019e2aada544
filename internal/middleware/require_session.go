package middleware

import (
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/common"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/session"

	"github.com/gin-gonic/gin"
)

// RequireSession answers 401 for requests without a session. It relies on
// RouteGuard having stored the session in the request context.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := session.FromContext(c.Request.Context()); !ok {
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Please sign in to continue."))
			return
		}
		c.Next()
	}
}
