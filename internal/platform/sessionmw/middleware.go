// Package sessionmw gates routes behind the gateway's session lifecycle.
package sessionmw

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wealthwise_gateway/internal/feature/session/domain/entity"
)

// SessionChecker is the slice of the lifecycle manager the middleware needs.
type SessionChecker interface {
	State() entity.State
}

// SessionRequired returns a Gin middleware function that rejects requests
// while no session is active. A session inside its expiry warning window
// still passes; callers see the warning via the session status endpoint.
func SessionRequired(sessions SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessions.State() == entity.StateUnauthenticated {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		}
		c.Next()
	}
}
