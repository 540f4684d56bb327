package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/monikajha100/prime-admin-gateway/internal/models"
	"github.com/monikajha100/prime-admin-gateway/internal/session"
	appErrors "github.com/monikajha100/prime-admin-gateway/pkg/errors"
	"github.com/monikajha100/prime-admin-gateway/pkg/response"
)

// RequireRoles enforces role-based access for routes. The effective role is
// the impersonated user's role while impersonation is active.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		sess := SessionFromContext(c)
		if sess == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if _, ok := allowed[sess.User.Role]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// SessionFromContext returns the session attached by Auth, or nil.
func SessionFromContext(c *gin.Context) *session.Session {
	value, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil
	}
	sess, ok := value.(*session.Session)
	if !ok {
		return nil
	}
	return sess
}
