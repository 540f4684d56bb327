package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/monikajha100/prime-admin-gateway/internal/session"
	appErrors "github.com/monikajha100/prime-admin-gateway/pkg/errors"
	"github.com/monikajha100/prime-admin-gateway/pkg/response"
)

// ContextSessionKey is the gin context key storing the resolved session.
const ContextSessionKey = "currentSession"

// Auth protects routes by requiring a valid gateway session. The browser
// sends the session id as a bearer token; the upstream JWT never leaves the
// gateway.
func Auth(resolve func(c *gin.Context, sessionID string) (*session.Session, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		sess, err := resolve(c, parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextSessionKey, sess)
		c.Next()
	}
}
