package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sn0wstorm20202/blinkit-clone/auth"
	"github.com/sn0wstorm20202/blinkit-clone/middleware"
)

// SetupAuthRoutes registers all "/api/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", auth.Register(db)) // POST /api/auth/register
		authGroup.POST("/login", auth.Login(db))       // POST /api/auth/login

		// Logout needs a valid session to revoke.
		authGroup.POST("/logout", middleware.RequireSession(db), auth.Logout(db))
	}
}
