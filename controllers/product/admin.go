package productControllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sn0wstorm20202/blinkit-clone/models"
)

type ProductInput struct {
	Name         string  `json:"name"`
	CategoryID   uint    `json:"category_id"`
	ImageURL     string  `json:"image_url"`
	Quantity     string  `json:"quantity"`
	Price        float64 `json:"price"`
	DeliveryTime string  `json:"delivery_time"`
}

type CategoryInput struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

// POST /api/admin/products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "code": "INVALID_BODY"})
			return
		}

		input.Name = strings.TrimSpace(input.Name)
		if input.Name == "" || input.CategoryID == 0 || input.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name, category_id and a positive price are required", "code": "MISSING_FIELDS"})
			return
		}

		var category models.Category
		if err := db.First(&category, "id = ?", input.CategoryID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found", "code": "CATEGORY_NOT_FOUND"})
			return
		}

		product := models.Product{
			Name:       input.Name,
			CategoryID: input.CategoryID,
			ImageURL:   input.ImageURL,
			Quantity:   input.Quantity,
			Price:      input.Price,
		}
		if input.DeliveryTime != "" {
			product.DeliveryTime = input.DeliveryTime
		} else {
			product.DeliveryTime = "8 mins"
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

// PUT /api/admin/products/:id
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Valid ID is required", "code": "INVALID_ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found", "code": "NOT_FOUND"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}

		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "code": "INVALID_BODY"})
			return
		}

		updates := map[string]any{}
		if name := strings.TrimSpace(input.Name); name != "" {
			updates["name"] = name
		}
		if input.CategoryID != 0 {
			updates["category_id"] = input.CategoryID
		}
		if input.ImageURL != "" {
			updates["image_url"] = input.ImageURL
		}
		if input.Quantity != "" {
			updates["quantity"] = input.Quantity
		}
		if input.Price > 0 {
			updates["price"] = input.Price
		}
		if input.DeliveryTime != "" {
			updates["delivery_time"] = input.DeliveryTime
		}

		if len(updates) > 0 {
			if err := db.Model(&product).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
				return
			}
		}
		c.JSON(http.StatusOK, product)
	}
}

// DELETE /api/admin/products/:id
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Valid ID is required", "code": "INVALID_ID"})
			return
		}

		result := db.Where("id = ?", id).Delete(&models.Product{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found", "code": "NOT_FOUND"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}

// POST /api/admin/categories
func CreateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "code": "INVALID_BODY"})
			return
		}

		input.Name = strings.TrimSpace(input.Name)
		if input.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required", "code": "MISSING_FIELDS"})
			return
		}

		category := models.Category{Name: input.Name, ImageURL: input.ImageURL}
		if err := db.Create(&category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}
