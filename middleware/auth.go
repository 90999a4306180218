package middleware

import (
	"net/http"
	"strings"

	"github.com/Bumblebig/UniSupport/logic"

	"github.com/gin-gonic/gin"
)

// Auth validates the bearer token against the session store and puts the
// owner id and raw token on the context for handlers downstream
func Auth(sessions *logic.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		uid, err := sessions.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}

		c.Set("uid", uid)
		c.Set("token", token)
		c.Next()
	}
}
