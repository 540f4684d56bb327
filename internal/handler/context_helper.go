package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/monikajha100/prime-admin-gateway/internal/middleware"
	"github.com/monikajha100/prime-admin-gateway/internal/session"
)

func sessionFromContext(c *gin.Context) *session.Session {
	return middleware.SessionFromContext(c)
}

// tokenFromContext returns the upstream JWT for the current session, empty
// when the route is unauthenticated.
func tokenFromContext(c *gin.Context) string {
	sess := sessionFromContext(c)
	if sess == nil {
		return ""
	}
	return sess.Token
}
