package cartControllers

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/sn0wstorm20202/blinkit-clone/models"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrCartNotFound    = errors.New("cart not found")
	ErrItemNotFound    = errors.New("cart item not found")
)

// View is a cart with its items joined to product details plus the derived
// totals. TotalAmount and ItemCount are recomputed on every read, never
// stored.
type View struct {
	CartID      uint              `json:"cartId"`
	UserID      string            `json:"userId"`
	Items       []models.CartItem `json:"items"`
	TotalAmount float64           `json:"totalAmount"`
	ItemCount   int               `json:"itemCount"`
}

// GetOrCreateCart returns the user's cart, creating it lazily on first use.
func GetOrCreateCart(db *gorm.DB, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := db.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		if err := db.Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetCart assembles the cart view for a user.
func GetCart(db *gorm.DB, userID string) (*View, error) {
	cart, err := GetOrCreateCart(db, userID)
	if err != nil {
		return nil, err
	}

	items := []models.CartItem{}
	if err := db.Preload("Product").Where("cart_id = ?", cart.ID).Find(&items).Error; err != nil {
		return nil, err
	}

	view := &View{CartID: cart.ID, UserID: userID, Items: items}
	for _, item := range items {
		view.TotalAmount += item.Product.Price * float64(item.Quantity)
		view.ItemCount += item.Quantity
	}
	return view, nil
}

// AddItem adds a product to the user's cart. Adding a product already in
// the cart increments the existing row's quantity instead of inserting a
// duplicate. The returned bool reports whether a new row was created.
func AddItem(db *gorm.DB, userID string, productID uint, quantity int) (*models.CartItem, bool, error) {
	var product models.Product
	if err := db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrProductNotFound
		}
		return nil, false, err
	}

	cart, err := GetOrCreateCart(db, userID)
	if err != nil {
		return nil, false, err
	}

	var item models.CartItem
	err = db.Where("cart_id = ? AND product_id = ?", cart.ID, productID).First(&item).Error

	created := false
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{CartID: cart.ID, ProductID: productID, Quantity: quantity}
		if err := db.Create(&item).Error; err != nil {
			return nil, false, err
		}
		created = true
	case err != nil:
		return nil, false, err
	default:
		item.Quantity += quantity
		item.UpdatedAt = time.Now()
		if err := db.Save(&item).Error; err != nil {
			return nil, false, err
		}
	}

	if err := touchCart(db, cart.ID); err != nil {
		return nil, false, err
	}

	item.Product = product
	return &item, created, nil
}

// UpdateItemQuantity sets a cart item's quantity. Ownership is enforced
// through the parent cart; an item in another user's cart reports
// ErrItemNotFound, never a distinguishable "not yours".
func UpdateItemQuantity(db *gorm.DB, userID string, itemID uint, quantity int) (*models.CartItem, error) {
	item, err := ownedItem(db, userID, itemID)
	if err != nil {
		return nil, err
	}

	item.Quantity = quantity
	item.UpdatedAt = time.Now()
	if err := db.Save(item).Error; err != nil {
		return nil, err
	}
	if err := touchCart(db, item.CartID); err != nil {
		return nil, err
	}

	if err := db.Preload("Product").First(item, item.ID).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem deletes a cart item after the same ownership check.
func RemoveItem(db *gorm.DB, userID string, itemID uint) error {
	item, err := ownedItem(db, userID, itemID)
	if err != nil {
		return err
	}
	if err := db.Delete(&models.CartItem{}, item.ID).Error; err != nil {
		return err
	}
	return touchCart(db, item.CartID)
}

// ClearCart removes every item from the user's cart and reports how many
// rows were deleted. A cart with no items is not an error; a user with no
// cart row at all is ErrCartNotFound.
func ClearCart(db *gorm.DB, userID string) (int64, error) {
	var cart models.Cart
	if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrCartNotFound
		}
		return 0, err
	}

	result := db.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{})
	if result.Error != nil {
		return 0, result.Error
	}
	if err := touchCart(db, cart.ID); err != nil {
		return 0, err
	}
	return result.RowsAffected, nil
}

func ownedItem(db *gorm.DB, userID string, itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := db.First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	var cart models.Cart
	err := db.Where("id = ? AND user_id = ?", item.CartID, userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func touchCart(db *gorm.DB, cartID uint) error {
	return db.Model(&models.Cart{}).Where("id = ?", cartID).Update("updated_at", time.Now()).Error
}
