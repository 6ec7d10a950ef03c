package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"soko_market/internal/authz"
)

// RequireAction is the authorization gate: it denies the request unless the
// caller's role is on the action's allow-list. Runs after RequireAuth.
func RequireAction(action authz.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := CallerIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing identity"})
			return
		}
		if !authz.Allowed(action, id.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}
