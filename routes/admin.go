package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productControllers "github.com/sn0wstorm20202/blinkit-clone/controllers/product"
	"github.com/sn0wstorm20202/blinkit-clone/middleware"
)

// SetupAdminRoutes registers all "/api/admin/*" endpoints. Requires
// API-key middleware.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productControllers.CreateProduct(db))
			productAdmin.PUT("/:id", productControllers.UpdateProduct(db))
			productAdmin.DELETE("/:id", productControllers.DeleteProduct(db))
			productAdmin.GET("/export", productControllers.ExportProductsToExcel(db))
		}

		// ─────────── Category Management ───────────
		adminGroup.POST("/categories", productControllers.CreateCategory(db))
	}
}
