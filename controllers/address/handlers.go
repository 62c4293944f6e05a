package addressControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type addressBody struct {
	FullName     *string `json:"full_name"`
	PhoneNumber  *string `json:"phone_number"`
	AddressLine1 *string `json:"address_line1"`
	AddressLine2 *string `json:"address_line2"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	PostalCode   *string `json:"postal_code"`
	IsDefault    *bool   `json:"is_default"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// GET /api/addresses
func ListHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		addresses, err := List(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch addresses"})
			return
		}
		c.JSON(http.StatusOK, addresses)
	}
}

// POST /api/addresses
func CreateHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var body addressBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "code": "INVALID_BODY"})
			return
		}

		input := CreateInput{
			FullName:     deref(body.FullName),
			PhoneNumber:  deref(body.PhoneNumber),
			AddressLine1: deref(body.AddressLine1),
			AddressLine2: deref(body.AddressLine2),
			City:         deref(body.City),
			State:        deref(body.State),
			PostalCode:   deref(body.PostalCode),
		}
		if body.IsDefault != nil {
			input.IsDefault = *body.IsDefault
		}

		if missing := input.MissingFields(); len(missing) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Required fields missing", "code": "MISSING_FIELDS"})
			return
		}

		address, err := Create(db, userID, input)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create address"})
			return
		}
		c.JSON(http.StatusCreated, address)
	}
}

// PUT /api/addresses/:id
func UpdateHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Valid ID is required", "code": "INVALID_ID"})
			return
		}

		var body addressBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "code": "INVALID_BODY"})
			return
		}

		input := UpdateInput{
			FullName:     body.FullName,
			PhoneNumber:  body.PhoneNumber,
			AddressLine1: body.AddressLine1,
			AddressLine2: body.AddressLine2,
			City:         body.City,
			State:        body.State,
			PostalCode:   body.PostalCode,
			IsDefault:    body.IsDefault,
		}

		address, err := Update(db, userID, uint(id), input)
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Address not found", "code": "NOT_FOUND"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update address"})
			return
		}
		c.JSON(http.StatusOK, address)
	}
}

// DELETE /api/addresses/:id
func DeleteHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Valid ID is required", "code": "INVALID_ID"})
			return
		}

		if err := Delete(db, userID, uint(id)); err != nil {
			if errors.Is(err, ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Address not found", "code": "NOT_FOUND"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete address"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Address deleted successfully", "addressId": id})
	}
}

// PUT /api/addresses/:id/set-default
func SetDefaultHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Valid ID is required", "code": "INVALID_ID"})
			return
		}

		address, err := SetDefault(db, userID, uint(id))
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Address not found", "code": "NOT_FOUND"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set default address"})
			return
		}
		c.JSON(http.StatusOK, address)
	}
}
