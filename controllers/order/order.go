package orderControllers

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sn0wstorm20202/blinkit-clone/models"
)

var (
	ErrAddressNotFound = errors.New("address not found")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrNotFound        = errors.New("order not found")
	// ErrAddressMissing means the address row backing an existing order is
	// gone. That is a data-integrity failure, not a normal miss.
	ErrAddressMissing = errors.New("address missing for order")
)

// Flat per-order charges. Stored on the order row so history stays stable
// if the constants ever change.
const (
	DeliveryCharge = 15
	HandlingCharge = 5
)

// Summary is one row of the order-history listing.
type Summary struct {
	ID             uint               `json:"id"`
	UserID         string             `json:"userId"`
	AddressID      uint               `json:"addressId"`
	TotalAmount    float64            `json:"totalAmount"`
	DeliveryCharge float64            `json:"deliveryCharge"`
	HandlingCharge float64            `json:"handlingCharge"`
	Status         models.OrderStatus `json:"status"`
	ItemCount      int64              `json:"itemCount"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

// ListOrders returns the user's orders newest first, each with a
// correlated item count.
func ListOrders(db *gorm.DB, userID string, limit, offset int) ([]Summary, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	summaries := []Summary{}
	err := db.Table("orders").
		Select("orders.id, orders.user_id, orders.address_id, orders.total_amount, orders.delivery_charge, orders.handling_charge, orders.status, orders.created_at, orders.updated_at, (SELECT COUNT(*) FROM order_items WHERE order_items.order_id = orders.id) AS item_count").
		Where("orders.user_id = ?", userID).
		Order("orders.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&summaries).Error
	return summaries, err
}

// lockForUpdate takes a row lock on the selected rows. sqlite rejects
// FOR UPDATE and serializes writers itself, so the clause is only added
// on engines that support it.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// PlaceOrder snapshots the user's cart into an order. The address check,
// the cart read and every write run in one transaction with the cart row
// locked, so two concurrent checkouts cannot both consume the same cart
// snapshot: either the whole checkout lands or none of it does.
func PlaceOrder(db *gorm.DB, userID string, addressID uint) (*models.Order, error) {
	var order models.Order
	var address models.Address

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND user_id = ?", addressID, userID).First(&address).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAddressNotFound
		}
		if err != nil {
			return err
		}

		var cart models.Cart
		err = lockForUpdate(tx).Where("user_id = ?", userID).First(&cart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmptyCart
		}
		if err != nil {
			return err
		}

		var items []models.CartItem
		if err := tx.Preload("Product").Where("cart_id = ?", cart.ID).Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		var subtotal float64
		for _, item := range items {
			subtotal += item.Product.Price * float64(item.Quantity)
		}

		order = models.Order{
			UserID:         userID,
			AddressID:      addressID,
			TotalAmount:    subtotal + DeliveryCharge + HandlingCharge,
			DeliveryCharge: DeliveryCharge,
			HandlingCharge: HandlingCharge,
			Status:         models.OrderStatusPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		orderItems := make([]models.OrderItem, 0, len(items))
		for _, item := range items {
			orderItems = append(orderItems, models.OrderItem{
				OrderID:         order.ID,
				ProductID:       item.ProductID,
				Quantity:        item.Quantity,
				PriceAtPurchase: item.Product.Price,
			})
		}
		if err := tx.Create(&orderItems).Error; err != nil {
			return err
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Cart{}).Where("id = ?", cart.ID).Update("updated_at", time.Now()).Error
	})
	if err != nil {
		return nil, err
	}

	if err := db.Preload("Items.Product").First(&order, order.ID).Error; err != nil {
		return nil, err
	}
	order.Address = address
	return &order, nil
}

// GetOrder fetches an owned order with its items and address.
func GetOrder(db *gorm.DB, userID string, orderID uint) (*models.Order, error) {
	var order models.Order
	err := db.Preload("Items.Product").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var address models.Address
	err = db.First(&address, "id = ?", order.AddressID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAddressMissing
	}
	if err != nil {
		return nil, err
	}

	order.Address = address
	return &order, nil
}
