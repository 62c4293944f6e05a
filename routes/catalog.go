package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productControllers "github.com/sn0wstorm20202/blinkit-clone/controllers/product"
)

// SetupCatalogRoutes registers the public product and category endpoints.
// Browsing needs no session.
func SetupCatalogRoutes(r *gin.Engine, db *gorm.DB) {
	api := r.Group("/api")
	{
		api.GET("/products", productControllers.ListProducts(db))       // GET /api/products
		api.GET("/products/:id", productControllers.GetProductByID(db)) // GET /api/products/:id
		api.GET("/categories", productControllers.ListCategories(db))   // GET /api/categories
	}
}
