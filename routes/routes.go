package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sn0wstorm20202/blinkit-clone/voice"
)

// SetupRoutes is the single entry-point that wires up the public catalog,
// auth, account, and admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, agent *voice.Agent, dispatcher *voice.Dispatcher, limiter voice.Limiter) {
	// Public catalog routes (no middleware)
	SetupCatalogRoutes(r, db)

	// Auth routes (register/login/logout)
	SetupAuthRoutes(r, db)

	// Account routes (session-protected)
	SetupAccountRoutes(r, db, agent, dispatcher, limiter)

	// Admin routes (API-key-protected)
	SetupAdminRoutes(r, db)
}
