package middleware

import (
	"net/http"

	"courtflow/internal/access"
	"courtflow/internal/database"
	"courtflow/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		userID := sess.Get("user_id")
		if userID == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

// RequirePermission gates a route on the evaluator's verdict for the current
// user. Authorization always runs before the handler touches storage.
func RequirePermission(module string, action access.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		uVal, ok := c.Get("CurrentUser")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		user, ok := uVal.(models.User)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		ev := access.NewEvaluator(database.DB)
		if !ev.Authorize(user, module, action) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}
		c.Next()
	}
}
