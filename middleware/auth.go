package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sn0wstorm20202/blinkit-clone/models"
)

// RequireSession resolves the bearer token to a session row and puts the
// owning user's id on the context. Absent, unknown or expired tokens all
// end the request with 401; there is no retry path.
func RequireSession(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "code": "UNAUTHORIZED"})
			c.Abort()
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		var session models.Session
		if err := db.Where("token = ?", token).First(&session).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "code": "UNAUTHORIZED"})
			c.Abort()
			return
		}

		if session.ExpiresAt.Before(time.Now()) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "code": "UNAUTHORIZED"})
			c.Abort()
			return
		}

		c.Set("user_id", session.UserID)
		c.Set("session_id", session.ID)
		c.Next()
	}
}
