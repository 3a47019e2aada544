package middleware

import (
	"context"
	"net/http"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/access"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/auth"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/platform/metrics"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionResolver turns request cookies into a session.
type SessionResolver interface {
	Resolve(ctx context.Context, creds auth.Credentials) auth.Resolution
}

// RoleSource reads the role of the profile behind a session.
type RoleSource interface {
	RoleOf(ctx context.Context, s *session.Session) (access.Role, error)
}

// RouteGuard is the edge check run before every handler. It resolves the
// session, writes any refreshed or cleared cookies, stores the session in
// the request context and then allows the request or redirects it with
// 303 See Other.
func RouteGuard(resolver SessionResolver, cookies *auth.CookieHelper, roles RoleSource, logger *zap.Logger) gin.HandlerFunc {
	logger = logger.Named("RouteGuard")
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		res := resolver.Resolve(ctx, cookies.Credentials(c))
		metrics.SessionResolutionsTotal.WithLabelValues(string(res.Source)).Inc()

		// Cookies go out before the decision so redirects carry them too.
		switch {
		case res.Refreshed != nil:
			cookies.SetAuthCookies(c, res.Refreshed)
		case res.Stale:
			cookies.ClearAuthCookies(c)
		}

		sess := res.Session
		if sess != nil {
			c.Request = c.Request.WithContext(session.NewContext(ctx, sess))
		}

		class := access.Classify(c.Request.URL.Path)
		decision := access.Evaluate(class, sess != nil, func() (access.Role, error) {
			role, err := roles.RoleOf(ctx, sess)
			if err != nil {
				metrics.RoleLookupsTotal.WithLabelValues("error").Inc()
				logger.Warn("Role lookup failed; treating session as non-admin",
					zap.Error(err),
					zap.String("path", c.Request.URL.Path),
				)
				return access.RoleCustomer, err
			}
			metrics.RoleLookupsTotal.WithLabelValues("ok").Inc()
			return role, nil
		})

		if decision.Allowed() {
			metrics.GuardDecisionsTotal.WithLabelValues(class.String(), "allow").Inc()
			c.Next()
			return
		}

		metrics.GuardDecisionsTotal.WithLabelValues(class.String(), decision.Location).Inc()
		logger.Debug("Redirecting request",
			zap.String("path", c.Request.URL.Path),
			zap.Stringer("class", class),
			zap.String("location", decision.Location),
		)
		c.Redirect(http.StatusSeeOther, decision.Location)
		c.Abort()
	}
}
