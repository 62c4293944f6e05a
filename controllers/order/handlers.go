package orderControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sn0wstorm20202/blinkit-clone/models"
)

type PlaceOrderInput struct {
	AddressID *uint `json:"address_id"`
}

func orderResponse(order *models.Order) gin.H {
	return gin.H{
		"id":             order.ID,
		"userId":         order.UserID,
		"addressId":      order.AddressID,
		"address":        order.Address,
		"items":          order.Items,
		"totalAmount":    order.TotalAmount,
		"deliveryCharge": order.DeliveryCharge,
		"handlingCharge": order.HandlingCharge,
		"status":         order.Status,
		"createdAt":      order.CreatedAt,
		"updatedAt":      order.UpdatedAt,
	}
}

// GET /api/orders
func ListOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		limit := 20
		if limitStr := c.Query("limit"); limitStr != "" {
			parsed, err := strconv.Atoi(limitStr)
			if err != nil || parsed < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter. Must be a positive integer.", "code": "INVALID_LIMIT"})
				return
			}
			limit = parsed
		}

		offset := 0
		if offsetStr := c.Query("offset"); offsetStr != "" {
			parsed, err := strconv.Atoi(offsetStr)
			if err != nil || parsed < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid offset parameter. Must be a non-negative integer.", "code": "INVALID_OFFSET"})
				return
			}
			offset = parsed
		}

		orders, err := ListOrders(db, userID, limit, offset)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// POST /api/orders
func PlaceOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input PlaceOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "code": "INVALID_BODY"})
			return
		}
		if input.AddressID == nil || *input.AddressID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Address ID is required", "code": "MISSING_ADDRESS"})
			return
		}

		order, err := PlaceOrder(db, userID, *input.AddressID)
		switch {
		case errors.Is(err, ErrAddressNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Address not found", "code": "ADDRESS_NOT_FOUND"})
			return
		case errors.Is(err, ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty", "code": "EMPTY_CART"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			return
		}

		c.JSON(http.StatusCreated, orderResponse(order))
	}
}

// GET /api/orders/:id
func GetOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Valid order ID is required", "code": "INVALID_ID"})
			return
		}

		order, err := GetOrder(db, userID, uint(id))
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found", "code": "NOT_FOUND"})
			return
		case errors.Is(err, ErrAddressMissing):
			c.JSON(http.StatusNotFound, gin.H{"error": "Address not found for this order", "code": "ADDRESS_NOT_FOUND"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		c.JSON(http.StatusOK, orderResponse(order))
	}
}
