package cartControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	eventControllers "github.com/sn0wstorm20202/blinkit-clone/controllers/events"
)

type AddItemInput struct {
	ProductID uint `json:"product_id"`
	Quantity  *int `json:"quantity"`
}

type UpdateQuantityInput struct {
	Quantity *int `json:"quantity"`
}

// GET /api/cart
func GetCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		view, err := GetCart(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// DELETE /api/cart
func ClearCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		deleted, err := ClearCart(db, userID)
		if errors.Is(err, ErrCartNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found", "code": "CART_NOT_FOUND"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}

		eventControllers.DefaultHub.NotifyCartUpdated(userID)
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared successfully", "deletedCount": deleted})
	}
}

// POST /api/cart/items
func AddItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "code": "INVALID_BODY"})
			return
		}
		if input.ProductID == 0 || input.Quantity == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID and quantity are required", "code": "MISSING_FIELDS"})
			return
		}
		if *input.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be greater than 0", "code": "INVALID_QUANTITY"})
			return
		}

		item, created, err := AddItem(db, userID, input.ProductID, *input.Quantity)
		if errors.Is(err, ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found", "code": "PRODUCT_NOT_FOUND"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}

		eventControllers.DefaultHub.NotifyCartUpdated(userID)

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		c.JSON(status, item)
	}
}

// PUT /api/cart/items/:id
func UpdateItemQuantityHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Valid ID is required", "code": "INVALID_ID"})
			return
		}

		var input UpdateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "code": "INVALID_BODY"})
			return
		}
		if input.Quantity == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity is required", "code": "MISSING_QUANTITY"})
			return
		}
		if *input.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be greater than 0", "code": "INVALID_QUANTITY"})
			return
		}

		item, err := UpdateItemQuantity(db, userID, uint(id), *input.Quantity)
		if errors.Is(err, ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found", "code": "NOT_FOUND"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}

		eventControllers.DefaultHub.NotifyCartUpdated(userID)
		c.JSON(http.StatusOK, item)
	}
}

// DELETE /api/cart/items/:id
func RemoveItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Valid ID is required", "code": "INVALID_ID"})
			return
		}

		if err := RemoveItem(db, userID, uint(id)); err != nil {
			if errors.Is(err, ErrItemNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found", "code": "NOT_FOUND"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item"})
			return
		}

		eventControllers.DefaultHub.NotifyCartUpdated(userID)
		c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart successfully", "cartItemId": id})
	}
}
