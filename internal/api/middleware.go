package api

import (
	"net/http"

	"recipebox/internal/session"

	"github.com/gin-gonic/gin"
)

// RequireSession rejects requests that do not carry a valid session cookie
// and stores the authenticated user id in the request context.
func RequireSession(sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(session.CookieName)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		sess, err := sessions.Get(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		c.Set("user_id", sess.UserID)
		c.Next()
	}
}
