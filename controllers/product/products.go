package productControllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sn0wstorm20202/blinkit-clone/models"
)

var ErrNotFound = errors.New("product not found")

// ProductView is a product row joined with its category name, the shape
// every catalog endpoint returns.
type ProductView struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	CategoryID   uint      `json:"categoryId"`
	CategoryName string    `json:"categoryName,omitempty"`
	ImageURL     string    `json:"imageUrl"`
	Quantity     string    `json:"quantity"`
	Price        float64   `json:"price"`
	DeliveryTime string    `json:"deliveryTime"`
	CreatedAt    time.Time `json:"createdAt"`
}

type SearchParams struct {
	CategoryID uint
	Search     string
	Limit      int
	Offset     int
}

// SearchProducts runs the catalog query shared by the public listing
// endpoint and the voice dispatcher. Search matches a case-insensitive
// substring of the product name; results come back newest first.
func SearchProducts(db *gorm.DB, params SearchParams) ([]ProductView, error) {
	if params.Limit <= 0 {
		params.Limit = 50
	}

	query := db.Table("products").
		Select("products.id, products.name, products.category_id, categories.name AS category_name, products.image_url, products.quantity, products.price, products.delivery_time, products.created_at").
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Order("products.created_at DESC")

	if params.CategoryID > 0 {
		query = query.Where("products.category_id = ?", params.CategoryID)
	}
	if params.Search != "" {
		query = query.Where("LOWER(products.name) LIKE ?", "%"+strings.ToLower(params.Search)+"%")
	}

	views := []ProductView{}
	if err := query.Limit(params.Limit).Offset(params.Offset).Scan(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

// GetProduct fetches a single product joined with its category name.
func GetProduct(db *gorm.DB, id uint) (*ProductView, error) {
	var view ProductView
	result := db.Table("products").
		Select("products.id, products.name, products.category_id, categories.name AS category_name, products.image_url, products.quantity, products.price, products.delivery_time, products.created_at").
		Joins("INNER JOIN categories ON categories.id = products.category_id").
		Where("products.id = ?", id).
		Limit(1).
		Scan(&view)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 || view.ID == 0 {
		return nil, ErrNotFound
	}
	return &view, nil
}

// GET /api/products
func ListProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := SearchParams{Limit: 50, Search: c.Query("search")}

		if limitStr := c.Query("limit"); limitStr != "" {
			limit, err := strconv.Atoi(limitStr)
			if err != nil || limit < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter. Must be a positive integer.", "code": "INVALID_LIMIT"})
				return
			}
			if limit > 100 {
				limit = 100
			}
			params.Limit = limit
		}

		if offsetStr := c.Query("offset"); offsetStr != "" {
			offset, err := strconv.Atoi(offsetStr)
			if err != nil || offset < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid offset parameter. Must be a non-negative integer.", "code": "INVALID_OFFSET"})
				return
			}
			params.Offset = offset
		}

		if categoryStr := c.Query("category_id"); categoryStr != "" {
			categoryID, err := strconv.Atoi(categoryStr)
			if err != nil || categoryID < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id parameter. Must be a positive integer.", "code": "INVALID_CATEGORY_ID"})
				return
			}
			params.CategoryID = uint(categoryID)
		}

		products, err := SearchProducts(db, params)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GET /api/products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Valid ID is required", "code": "INVALID_ID"})
			return
		}

		view, err := GetProduct(db, uint(id))
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found", "code": "NOT_FOUND"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// GET /api/categories
func ListCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Order("name ASC").Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}
